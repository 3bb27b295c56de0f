package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/events"
	"attendance-backend/log"
	"attendance-backend/metrics"
)

const (
	attendanceTitle = "Attendance Marked"
	generalTitle    = "Notice"

	markerFallback  = "Your teacher"
	studentFallback = "Student"
)

var statusPhrases = map[entity.Status]string{
	entity.StatusPresent: "marked as Present",
	entity.StatusAbsent:  "marked as Absent",
	entity.StatusLate:    "marked as Late",
}

type NotifyInput struct {
	StudentID string
	Status    entity.Status
	MarkedBy  string
	Date      string
}

// FanOut writes the notifications students see and announces them on the
// bus.
type FanOut struct {
	deps Deps
}

var _ Notifier = (*FanOut)(nil)

func NewFanOut(deps Deps) *FanOut {
	return &FanOut{deps: deps}
}

// notificationID is unique per student and instant. The random suffix
// separates notifications created in the same nanosecond.
func notificationID(studentID string, n int64) string {
	return fmt.Sprintf("%s_%d_%s", studentID, n, uuid.NewString()[:8])
}

func (f *FanOut) displayName(ctx context.Context, id, fallback string) string {
	if id == "" {
		return fallback
	}
	u, err := f.deps.lookupUser(ctx, id)
	if err != nil || strings.TrimSpace(u.Name) == "" {
		return fallback
	}
	return u.Name
}

// Notify creates the attendance notification for a mark.
func (f *FanOut) Notify(ctx context.Context, in NotifyInput) error {
	phrase, ok := statusPhrases[in.Status]
	if !ok {
		return errs.ErrInvalidStatus
	}

	now := f.deps.now()
	day := "today"
	if in.Date != "" && in.Date != f.deps.today() {
		day = in.Date
	}
	marker := f.displayName(ctx, in.MarkedBy, markerFallback)

	n := &entity.Notification{
		ID:        notificationID(in.StudentID, now.UnixNano()),
		StudentID: in.StudentID,
		Title:     attendanceTitle,
		Message:   fmt.Sprintf("%s has %s for %s", marker, phrase, day),
		Type:      entity.NotificationAttendance,
		Status:    in.Status,
		Date:      in.Date,
		MarkedBy:  in.MarkedBy,
		Timestamp: now,
	}
	if err := f.deps.Store.Notifications().Insert(ctx, n); err != nil {
		return err
	}

	metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	log.Logger.Debug("attendance notification",
		zap.String("student", f.displayName(ctx, in.StudentID, studentFallback)),
		zap.String("id", n.ID),
	)
	f.deps.publish(ctx, events.NotificationsChanged, in.StudentID, n.ID)
	return nil
}

// Send creates a general notification for a student.
func (f *FanOut) Send(ctx context.Context, studentID, message, senderID string) (*entity.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errs.ErrMessageRequired
	}
	if studentID == "" {
		return nil, errs.ErrUserIDRequired
	}

	student, err := f.deps.lookupUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != entity.RoleStudent {
		return nil, errs.ErrNotStudent
	}

	now := f.deps.now()
	n := &entity.Notification{
		ID:        notificationID(studentID, now.UnixNano()),
		StudentID: studentID,
		Title:     generalTitle,
		Message:   message,
		Type:      entity.NotificationGeneral,
		Date:      f.deps.today(),
		MarkedBy:  senderID,
		Timestamp: now,
	}
	if err := f.deps.Store.Notifications().Insert(ctx, n); err != nil {
		return nil, err
	}

	metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	f.deps.publish(ctx, events.NotificationsChanged, studentID, n.ID)
	return n, nil
}

func (f *FanOut) Get(ctx context.Context, id string) (*entity.Notification, error) {
	if id == "" {
		return nil, errs.ErrInvalidID
	}
	return f.deps.Store.Notifications().FindByID(ctx, id)
}

// List returns the student's notifications, newest first.
func (f *FanOut) List(ctx context.Context, studentID string) ([]*entity.Notification, error) {
	if studentID == "" {
		return nil, errs.ErrUserIDRequired
	}
	return f.deps.Store.Notifications().ListByStudent(ctx, studentID)
}

// MarkRead sets read on the notification. Marking it again is a no-op.
func (f *FanOut) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	if id == "" {
		return nil, errs.ErrInvalidID
	}

	n, err := f.deps.Store.Notifications().MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	f.deps.publish(ctx, events.NotificationsChanged, n.StudentID, n.ID)
	return n, nil
}

// Subscribe follows a student's notification list.
func (f *FanOut) Subscribe(ctx context.Context, studentID string) (*Subscription[[]*entity.Notification], error) {
	if studentID == "" {
		return nil, errs.ErrUserIDRequired
	}
	if f.deps.Bus == nil {
		return nil, errs.ErrQueue
	}
	return subscribe(ctx, f.deps.Bus, events.NotificationsChanged, studentID, func(ctx context.Context) ([]*entity.Notification, error) {
		return f.deps.Store.Notifications().ListByStudent(ctx, studentID)
	})
}
