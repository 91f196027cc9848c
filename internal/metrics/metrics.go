// Package metrics declares the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPC metrics
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securechat_rpc_requests_total",
			Help: "Total gRPC requests",
		},
		[]string{"method", "code"},
	)

	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "securechat_rpc_request_duration_seconds",
			Help:    "gRPC unary request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method"},
	)

	// Subscription metrics
	ActiveSubscriptions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "securechat_active_subscriptions",
			Help: "Live snapshot subscriptions",
		},
		[]string{"stream"},
	)

	SnapshotReloadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "securechat_snapshot_reload_failures_total",
			Help: "Snapshot reloads that failed and were skipped",
		},
	)

	// Business metrics
	MessagesAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securechat_messages_appended_total",
			Help: "Total messages appended",
		},
		[]string{"kind"},
	)

	MessagesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "securechat_messages_removed_total",
			Help: "Total messages removed by their sender",
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securechat_logins_total",
			Help: "Completed login attempts",
		},
		[]string{"result"},
	)
)
