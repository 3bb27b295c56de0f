package service

import (
	"context"

	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/events"
	"attendance-backend/log"
	"attendance-backend/metrics"
	"attendance-backend/store"
)

// Notifier is told about every attendance mark.
type Notifier interface {
	Notify(ctx context.Context, in NotifyInput) error
}

type Recorder struct {
	deps     Deps
	notifier Notifier
}

func NewRecorder(deps Deps, notifier Notifier) *Recorder {
	return &Recorder{deps: deps, notifier: notifier}
}

type MarkInput struct {
	StudentID string
	Status    entity.Status
	MarkedBy  string
	Notes     string
}

// MarkAttendance records the student's status for today, replacing an
// earlier mark of the same day, and notifies the student. A failed
// notification does not fail the mark.
func (r *Recorder) MarkAttendance(ctx context.Context, in MarkInput) (*entity.AttendanceRecord, error) {
	if in.StudentID == "" {
		return nil, errs.ErrUserIDRequired
	}
	if !in.Status.Valid() {
		return nil, errs.ErrInvalidStatus
	}

	student, err := r.deps.Store.Users().FindByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != entity.RoleStudent {
		return nil, errs.ErrNotStudent
	}

	date := r.deps.today()
	rec := &entity.AttendanceRecord{
		ID:        entity.AttendanceID(in.StudentID, date),
		StudentID: in.StudentID,
		Date:      date,
		Status:    in.Status,
		MarkedBy:  in.MarkedBy,
		Notes:     in.Notes,
		Timestamp: r.deps.now(),
	}
	if err := r.deps.Store.Attendance().Upsert(ctx, rec); err != nil {
		return nil, err
	}
	metrics.AttendanceMarked.WithLabelValues(string(in.Status)).Inc()

	err = r.notifier.Notify(ctx, NotifyInput{
		StudentID: in.StudentID,
		Status:    in.Status,
		MarkedBy:  in.MarkedBy,
		Date:      date,
	})
	if err != nil {
		metrics.NotificationFailures.Inc()
		log.Logger.Warn("attendance notification failed", zap.String("recordID", rec.ID), zap.Error(err))
	}

	r.deps.publish(ctx, events.AttendanceChanged, in.StudentID, rec.ID)
	return rec, nil
}

// DateRange bounds a query by inclusive date keys. Empty ends are open.
type DateRange struct {
	From string
	To   string
}

func (d DateRange) check() error {
	if d.From != "" && !validDate(d.From) {
		return errs.ErrInvalidDate.WithDetail(d.From)
	}
	if d.To != "" && !validDate(d.To) {
		return errs.ErrInvalidDate.WithDetail(d.To)
	}
	if d.From != "" && d.To != "" && d.From > d.To {
		return errs.ErrInvalidDate.WithDetail("start date is after end date")
	}
	return nil
}

// ListAttendance returns records newest first. An empty studentID lists every
// student.
func (r *Recorder) ListAttendance(ctx context.Context, studentID string, rng DateRange) ([]*entity.AttendanceRecord, error) {
	if err := rng.check(); err != nil {
		return nil, err
	}

	q := store.AttendanceQuery{From: rng.From, To: rng.To}
	if studentID != "" {
		q.StudentIDs = []string{studentID}
	}
	return r.deps.Store.Attendance().Find(ctx, q)
}

// ListForTeacher returns the attendance of the teacher's students.
func (r *Recorder) ListForTeacher(ctx context.Context, teacherID string, rng DateRange) ([]*entity.AttendanceRecord, error) {
	if teacherID == "" {
		return nil, errs.ErrUserIDRequired
	}
	if err := rng.check(); err != nil {
		return nil, err
	}

	students, err := studentsOf(ctx, r.deps.Store.Users(), teacherID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return []*entity.AttendanceRecord{}, nil
	}

	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return r.deps.Store.Attendance().Find(ctx, store.AttendanceQuery{StudentIDs: ids, From: rng.From, To: rng.To})
}

// roster returns the students a day is summarized over, with their records on
// date.
func (r *Recorder) roster(ctx context.Context, date, teacherID string) ([]*entity.User, []*entity.AttendanceRecord, error) {
	var (
		students []*entity.User
		err      error
	)
	if teacherID == "" {
		students, err = r.deps.Store.Users().List(ctx, store.UserQuery{Role: entity.RoleStudent})
	} else {
		students, err = studentsOf(ctx, r.deps.Store.Users(), teacherID)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(students) == 0 {
		return students, []*entity.AttendanceRecord{}, nil
	}

	q := store.AttendanceQuery{From: date, To: date}
	if teacherID != "" {
		for _, s := range students {
			q.StudentIDs = append(q.StudentIDs, s.ID)
		}
	}
	records, err := r.deps.Store.Attendance().Find(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	enrolled := make(map[string]struct{}, len(students))
	for _, s := range students {
		enrolled[s.ID] = struct{}{}
	}
	kept := records[:0]
	for _, rec := range records {
		if _, ok := enrolled[rec.StudentID]; ok {
			kept = append(kept, rec)
		}
	}
	return students, kept, nil
}

func (r *Recorder) dateOrToday(date string) (string, error) {
	if date == "" {
		return r.deps.today(), nil
	}
	if !validDate(date) {
		return "", errs.ErrInvalidDate.WithDetail(date)
	}
	return date, nil
}

// DailySummary counts the roster's marks on date, today when empty. The
// roster is every student, or the teacher's students when teacherID is set.
func (r *Recorder) DailySummary(ctx context.Context, date, teacherID string) (*DailySummary, error) {
	date, err := r.dateOrToday(date)
	if err != nil {
		return nil, err
	}

	students, records, err := r.roster(ctx, date, teacherID)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(records)
	return &DailySummary{
		Date:     date,
		Total:    len(students),
		Present:  stats.Present,
		Absent:   stats.Absent,
		Late:     stats.Late,
		Unmarked: len(students) - stats.Total,
	}, nil
}

// AbsentOn lists the absent and late marks of date.
func (r *Recorder) AbsentOn(ctx context.Context, date, teacherID string) ([]*entity.AttendanceRecord, error) {
	date, err := r.dateOrToday(date)
	if err != nil {
		return nil, err
	}

	_, records, err := r.roster(ctx, date, teacherID)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status != entity.StatusPresent {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Subscribe follows a student's attendance list.
func (r *Recorder) Subscribe(ctx context.Context, studentID string) (*Subscription[[]*entity.AttendanceRecord], error) {
	if studentID == "" {
		return nil, errs.ErrUserIDRequired
	}
	if r.deps.Bus == nil {
		return nil, errs.ErrQueue
	}
	return subscribe(ctx, r.deps.Bus, events.AttendanceChanged, studentID, func(ctx context.Context) ([]*entity.AttendanceRecord, error) {
		return r.deps.Store.Attendance().Find(ctx, store.AttendanceQuery{StudentIDs: []string{studentID}})
	})
}
