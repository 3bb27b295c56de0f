package client

import (
	"context"
	"io"

	pb "attendance-backend/proto"
)

// Feed delivers the latest list on C until Close is called, its context
// ends or the stream fails. C is closed afterwards.
type Feed[T any] struct {
	C <-chan T

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func (f *Feed[T]) Close() {
	f.cancel()
	<-f.done
}

// Err waits for the feed to end and returns the stream error, if any.
func (f *Feed[T]) Err() error {
	<-f.done
	return f.err
}

func follow[Res, T any](ctx context.Context, open func(context.Context) (pb.Receiver[Res], error), unwrap func(*Res) T) (*Feed[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	stream, err := open(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan T, 1)
	f := &Feed[T]{C: out, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer close(out)

		for {
			m, err := stream.Recv()
			if err != nil {
				if err != io.EOF && ctx.Err() == nil {
					f.err = err
				}
				return
			}

			select {
			case <-out:
			default:
			}
			out <- unwrap(m)
		}
	}()

	return f, nil
}

// SubscribeNotifications follows a student's notifications, newest first.
func (c *Client) SubscribeNotifications(ctx context.Context, studentID string) (*Feed[[]*pb.Notification], error) {
	return follow(ctx, func(ctx context.Context) (pb.Receiver[pb.ListNotificationsResponse], error) {
		return c.notifications.Subscribe(c.Context(ctx), &pb.SubscribeRequest{StudentId: studentID})
	}, func(m *pb.ListNotificationsResponse) []*pb.Notification {
		return m.Notifications
	})
}

// SubscribeAttendance follows a student's attendance, newest first.
func (c *Client) SubscribeAttendance(ctx context.Context, studentID string) (*Feed[[]*pb.AttendanceRecord], error) {
	return follow(ctx, func(ctx context.Context) (pb.Receiver[pb.ListAttendanceResponse], error) {
		return c.attendance.Subscribe(c.Context(ctx), &pb.SubscribeRequest{StudentId: studentID})
	}, func(m *pb.ListAttendanceResponse) []*pb.AttendanceRecord {
		return m.Records
	})
}
