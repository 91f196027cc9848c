package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/securechat/internal/logging"
	"github.com/dmitrijs2005/securechat/internal/metrics"
)

// Feed pairs a Notifier with the logger used for background delivery.
type Feed struct {
	notifier Notifier
	log      logging.Logger
}

func New(n Notifier, log logging.Logger) *Feed {
	return &Feed{notifier: n, log: log.With("module", "feed")}
}

// Publish signals every topic. The write that triggered it has already
// happened, so failures are logged and not returned.
func (f *Feed) Publish(ctx context.Context, topics ...string) {
	for _, t := range topics {
		if err := f.notifier.Publish(ctx, t); err != nil {
			f.log.Warn(ctx, "publish failed", "topic", t, "error", err)
		}
	}
}

// Loader produces a full snapshot of a view.
type Loader[T any] func(ctx context.Context) (T, error)

// Subscription delivers full-replace snapshots on C until cancelled.
// C is closed when delivery stops.
type Subscription[T any] struct {
	C <-chan T

	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops delivery and returns once nothing more will be sent on C.
func (s *Subscription[T]) Cancel() {
	s.cancel()
	<-s.done
}

// Done is closed when delivery has stopped.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Watch subscribes to topics, loads the initial snapshot and then reloads
// after every change signal. An initial load failure is returned to the
// caller. Later failures are logged and the subscription keeps running.
// stream labels the subscription in logs and metrics.
func Watch[T any](ctx context.Context, f *Feed, stream string, topics []string, load Loader[T]) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	signal := make(chan struct{}, 1)
	var wg sync.WaitGroup
	for _, t := range topics {
		src, err := f.notifier.Subscribe(ctx, t)
		if err != nil {
			cancel()
			wg.Wait()
			return nil, fmt.Errorf("subscribe %s: %w", t, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			forward(ctx, src, signal)
		}()
	}

	// Subscribed before the first load, so no change can fall between them.
	initial, err := load(ctx)
	if err != nil {
		cancel()
		wg.Wait()
		return nil, err
	}

	out := make(chan T)
	sub := &Subscription[T]{C: out, cancel: cancel, done: make(chan struct{})}
	log := f.log.With("stream", stream)
	gauge := metrics.ActiveSubscriptions.WithLabelValues(stream)
	gauge.Inc()

	go func() {
		defer close(sub.done)
		defer close(out)
		defer gauge.Dec()
		defer wg.Wait()

		snap := initial
		for {
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}

			for {
				select {
				case <-signal:
				case <-ctx.Done():
					return
				}
				next, err := load(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					metrics.SnapshotReloadFailures.Inc()
					log.Warn(ctx, "snapshot reload failed", "error", err)
					continue
				}
				snap = next
				break
			}
		}
	}()

	return sub, nil
}

func forward(ctx context.Context, src <-chan struct{}, dst chan<- struct{}) {
	for {
		select {
		case _, ok := <-src:
			if !ok {
				return
			}
			select {
			case dst <- struct{}{}:
			default:
			}
		case <-ctx.Done():
			return
		}
	}
}
