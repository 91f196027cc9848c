package client

import (
	"context"
	"errors"
	"io"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Subscription delivers snapshots of a live view on C. C is closed when the
// stream ends; Err then tells why.
type Subscription[T any] struct {
	C <-chan T

	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Close ends the subscription and waits for delivery to stop.
func (s *Subscription[T]) Close() {
	s.cancel()
	<-s.done
}

// Err is nil while the stream runs and after Close.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func subscribe[S, T any](ctx context.Context, open func(context.Context) (grpc.ServerStreamingClient[S], error), convert func(*S) T) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := open(ctx)
	if err != nil {
		cancel()
		return nil, mapError(err)
	}

	out := make(chan T)
	sub := &Subscription[T]{C: out, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		defer close(out)

		for {
			snap, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) && status.Code(err) != codes.Canceled {
					sub.setErr(mapError(err))
				}
				return
			}
			select {
			case out <- convert(snap):
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}

// FromChannel wraps a channel of snapshots as a Subscription. It ends when
// src is closed or Close is called.
func FromChannel[T any](ctx context.Context, src <-chan T) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan T)
	sub := &Subscription[T]{C: out, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		defer close(out)

		for {
			select {
			case snap, ok := <-src:
				if !ok {
					return
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub
}
