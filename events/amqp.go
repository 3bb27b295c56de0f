package events

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"attendance-backend/log"
)

const (
	NotificationsExchange = "notifications"
	AttendanceExchange    = "attendance"
)

func exchangeFor(kind Kind) string {
	if kind == AttendanceChanged {
		return AttendanceExchange
	}
	return NotificationsExchange
}

// AMQP fans events out through topic exchanges keyed by student ID.
type AMQP struct {
	conn *amqp.Connection
}

var _ Bus = (*AMQP)(nil)

// Dial connects with a doubling backoff and declares the exchanges.
func Dial(url string, attempts int) (*AMQP, error) {
	log.Logger.Info("Trying to connect to rabbitmq...")

	var conn *amqp.Connection
	t := time.Second
	for i := 0; ; i++ {
		var err error
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		if i >= attempts-1 {
			return nil, err
		}
		log.Logger.Warn("rabbitmq not ready", zap.Error(err), zap.Duration("retryIn", t))
		time.Sleep(t)
		t *= 2
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	for _, name := range []string{NotificationsExchange, AttendanceExchange} {
		err = ch.ExchangeDeclare(
			name,
			"topic",
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			conn.Close()
			return nil, err
		}
	}

	return &AMQP{conn: conn}, nil
}

func (a *AMQP) Publish(_ context.Context, e *Event) error {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(e); err != nil {
		return err
	}

	rch, err := a.conn.Channel()
	if err != nil {
		return err
	}
	defer rch.Close()

	return rch.Publish(exchangeFor(e.Kind), e.StudentID, false, false, amqp.Publishing{
		ContentType: "application/x-gob",
		Body:        b.Bytes(),
	})
}

func (a *AMQP) Subscribe(ctx context.Context, kind Kind, studentID string) (<-chan *Event, error) {
	rch, err := a.conn.Channel()
	if err != nil {
		return nil, err
	}

	q, err := rch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		rch.Close()
		return nil, err
	}

	err = rch.QueueBind(
		q.Name,
		studentID,
		exchangeFor(kind),
		false,
		nil,
	)
	if err != nil {
		rch.Close()
		return nil, err
	}

	msgs, err := rch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		rch.Close()
		return nil, err
	}

	ch := make(chan *Event)
	go func() {
		defer close(ch)
		defer func() {
			if err := rch.Close(); err != nil && err != amqp.ErrClosed {
				log.Logger.Error("unable to close channel", zap.Error(err))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}

				e := &Event{}
				if err := gob.NewDecoder(bytes.NewReader(d.Body)).Decode(e); err != nil {
					log.Logger.Error("unable to decode event", zap.Error(err))
					continue
				}

				select {
				case ch <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func (a *AMQP) Close() error {
	return a.conn.Close()
}
