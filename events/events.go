package events

import "context"

type Kind uint32

const (
	NotificationsChanged Kind = iota
	AttendanceChanged
)

func (k Kind) String() string {
	if k == AttendanceChanged {
		return "attendance"
	}
	return "notifications"
}

// Everyone subscribes to the events of every student.
const Everyone = "#"

// Event tells subscribers that a student's data changed. It carries no
// payload; subscribers reload what they show.
type Event struct {
	Kind      Kind
	StudentID string
	RecordID  string
}

type Bus interface {
	Publish(ctx context.Context, e *Event) error
	// Subscribe delivers events of kind for studentID (or Everyone) until ctx
	// ends, then closes the channel.
	Subscribe(ctx context.Context, kind Kind, studentID string) (<-chan *Event, error)
	Close() error
}
