package service

import (
	"context"

	"go.uber.org/zap"

	"attendance-backend/errs"
	"attendance-backend/events"
	"attendance-backend/log"
)

// Subscription delivers a fresh snapshot on C when it starts and after every
// change, until Close is called or its context ends. C is closed afterwards.
// A reader that falls behind only sees the latest snapshot.
type Subscription[T any] struct {
	C <-chan T

	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops the subscription and waits for its goroutine to exit.
func (s *Subscription[T]) Close() {
	s.cancel()
	<-s.done
}

func subscribe[T any](ctx context.Context, bus events.Bus, kind events.Kind, studentID string, load func(context.Context) (T, error)) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	evs, err := bus.Subscribe(ctx, kind, studentID)
	if err != nil {
		cancel()
		log.Logger.Error("failed subscribing", zap.Stringer("kind", kind), zap.String("studentID", studentID), zap.Error(err))
		return nil, errs.ErrQueue
	}

	first, err := load(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan T, 1)
	out <- first
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-evs:
				if !ok {
					return
				}

				snap, err := load(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.Logger.Warn("failed reloading snapshot", zap.String("studentID", studentID), zap.Error(err))
					}
					continue
				}

				select {
				case <-out:
				default:
				}
				out <- snap
			}
		}
	}()

	return &Subscription[T]{C: out, cancel: cancel, done: done}, nil
}
