package memstore

import (
	"context"
	"sort"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/store"
)

type attendanceRepo struct{ db *DB }

func (r attendanceRepo) Upsert(_ context.Context, rec *entity.AttendanceRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.t.attendance[rec.ID] = *rec
	return nil
}

func (r attendanceRepo) Find(_ context.Context, q store.AttendanceQuery) ([]*entity.AttendanceRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	students := make(map[string]struct{}, len(q.StudentIDs))
	for _, id := range q.StudentIDs {
		students[id] = struct{}{}
	}

	records := make([]*entity.AttendanceRecord, 0)
	for _, rec := range r.db.t.attendance {
		if len(students) > 0 {
			if _, ok := students[rec.StudentID]; !ok {
				continue
			}
		}
		if q.From != "" && rec.Date < q.From {
			continue
		}
		if q.To != "" && rec.Date > q.To {
			continue
		}
		rec := rec
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].StudentID < records[j].StudentID
	})
	return records, nil
}

func (r attendanceRepo) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for id, rec := range r.db.t.attendance {
		if rec.StudentID == studentID {
			delete(r.db.t.attendance, id)
			n++
		}
	}
	return n, nil
}

type notificationRepo struct{ db *DB }

func (r notificationRepo) Insert(_ context.Context, n *entity.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.notifications[n.ID]; ok {
		return errs.ErrAlreadyExists
	}
	r.db.t.notifications[n.ID] = *n
	return nil
}

func (r notificationRepo) FindByID(_ context.Context, id string) (*entity.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if n, ok := r.db.t.notifications[id]; ok {
		return &n, nil
	}
	return nil, errs.ErrNotFound
}

func (r notificationRepo) ListByStudent(_ context.Context, studentID string) ([]*entity.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	list := make([]*entity.Notification, 0)
	for _, n := range r.db.t.notifications {
		if n.StudentID == studentID {
			n := n
			list = append(list, &n)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r notificationRepo) MarkRead(_ context.Context, id string) (*entity.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n, ok := r.db.t.notifications[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	n.Read = true
	r.db.t.notifications[id] = n
	return &n, nil
}

func (r notificationRepo) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var c int64
	for id, n := range r.db.t.notifications {
		if n.StudentID == studentID {
			delete(r.db.t.notifications, id)
			c++
		}
	}
	return c, nil
}

type departmentRepo struct{ db *DB }

func (r departmentRepo) Insert(_ context.Context, d *entity.Department) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.departments[d.ID]; ok {
		return errs.ErrAlreadyExists
	}
	c := *d
	c.TeacherIDs = append([]string{}, d.TeacherIDs...)
	r.db.t.departments[d.ID] = c
	return nil
}

func (r departmentRepo) FindByID(_ context.Context, id string) (*entity.Department, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	d, ok := r.db.t.departments[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	d.TeacherIDs = append([]string{}, d.TeacherIDs...)
	return &d, nil
}

func (r departmentRepo) List(_ context.Context) ([]*entity.Department, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	list := make([]*entity.Department, 0, len(r.db.t.departments))
	for _, d := range r.db.t.departments {
		d := d
		d.TeacherIDs = append([]string{}, d.TeacherIDs...)
		list = append(list, &d)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r departmentRepo) Update(_ context.Context, id string, patch store.DepartmentPatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.t.departments[id]
	if !ok {
		return errs.ErrNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.TeacherIDs != nil {
		d.TeacherIDs = append([]string{}, (*patch.TeacherIDs)...)
	}
	d.UpdatedAt = patch.UpdatedAt
	r.db.t.departments[id] = d
	return nil
}

func (r departmentRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.departments[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.db.t.departments, id)
	return nil
}

type resetRepo struct{ db *DB }

func (r resetRepo) Insert(_ context.Context, reset *entity.PasswordReset) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, v := range r.db.t.resets {
		if v.Token == reset.Token {
			return errs.ErrAlreadyExists
		}
	}
	r.db.t.resets[reset.ID] = *reset
	return nil
}

func (r resetRepo) FindByToken(_ context.Context, token string) (*entity.PasswordReset, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, v := range r.db.t.resets {
		if v.Token == token {
			return &v, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r resetRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for id, v := range r.db.t.resets {
		if v.UserID == userID {
			delete(r.db.t.resets, id)
			n++
		}
	}
	return n, nil
}

type auditRepo struct{ db *DB }

func (r auditRepo) Insert(_ context.Context, e *entity.CredentialEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.t.audit = append(r.db.t.audit, *e)
	return nil
}

func (r auditRepo) ListByUser(_ context.Context, userID string) ([]*entity.CredentialEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	list := make([]*entity.CredentialEvent, 0)
	for _, e := range r.db.t.audit {
		if e.UserID == userID {
			e := e
			list = append(list, &e)
		}
	}
	return list, nil
}
