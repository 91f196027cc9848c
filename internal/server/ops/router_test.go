package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz_AllPass(t *testing.T) {
	r := NewRouter(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
	})

	rec := get(t, r, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "pass", resp.Checks["database"].Status)
}

func TestHealthz_Degraded(t *testing.T) {
	r := NewRouter(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
		"notifier": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	rec := get(t, r, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "fail", resp.Checks["notifier"].Status)
	assert.Equal(t, "unreachable", resp.Checks["notifier"].Message)
}

func TestMetrics_Exposed(t *testing.T) {
	metrics.MessagesRemoved.Inc()

	rec := get(t, NewRouter(nil), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "securechat_messages_removed_total")
}

func TestServer_StopsOnContextCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", nil, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ops server did not stop")
	}
}
