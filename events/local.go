package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attendance-backend/log"
)

const subscriberBuffer = 16

type subscriber struct {
	id        uuid.UUID
	kind      Kind
	studentID string
	ch        chan *Event
}

func (s *subscriber) matches(e *Event) bool {
	return s.kind == e.Kind && (s.studentID == Everyone || s.studentID == e.StudentID)
}

// Local is an in-process Bus for a single server.
type Local struct {
	lock        sync.Mutex
	subscribers []*subscriber
}

var _ Bus = (*Local)(nil)

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Subscribe(ctx context.Context, kind Kind, studentID string) (<-chan *Event, error) {
	s := &subscriber{
		id:        uuid.New(),
		kind:      kind,
		studentID: studentID,
		ch:        make(chan *Event, subscriberBuffer),
	}

	l.lock.Lock()
	l.subscribers = append(l.subscribers, s)
	l.lock.Unlock()

	go func() {
		<-ctx.Done()
		l.remove(s.id)
	}()

	return s.ch, nil
}

func (l *Local) remove(id uuid.UUID) {
	l.lock.Lock()
	defer l.lock.Unlock()

	for k, v := range l.subscribers {
		if v.id == id {
			a := l.subscribers
			a[k] = a[len(a)-1]
			a[len(a)-1] = nil
			l.subscribers = a[:len(a)-1]
			close(v.ch)
			return
		}
	}
}

// Publish never blocks. A subscriber whose buffer is full already has a
// pending event and reloads on it, so the event is dropped.
func (l *Local) Publish(_ context.Context, e *Event) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	for _, s := range l.subscribers {
		if !s.matches(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			log.Logger.Debug("subscriber lagging, event dropped", zap.String("studentID", e.StudentID))
		}
	}

	return nil
}

func (l *Local) Close() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	for _, s := range l.subscribers {
		close(s.ch)
	}
	l.subscribers = nil

	return nil
}
