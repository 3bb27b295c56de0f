// Package memstore keeps every collection in process memory. It backs the
// test suites and single node development runs.
package memstore

import (
	"context"
	"sync"

	"attendance-backend/entity"
	"attendance-backend/store"
)

type tables struct {
	identities    map[string]entity.Identity
	users         map[string]entity.User
	attendance    map[string]entity.AttendanceRecord
	notifications map[string]entity.Notification
	departments   map[string]entity.Department
	resets        map[string]entity.PasswordReset
	audit         []entity.CredentialEvent
}

func newTables() *tables {
	return &tables{
		identities:    make(map[string]entity.Identity),
		users:         make(map[string]entity.User),
		attendance:    make(map[string]entity.AttendanceRecord),
		notifications: make(map[string]entity.Notification),
		departments:   make(map[string]entity.Department),
		resets:        make(map[string]entity.PasswordReset),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.identities {
		c.identities[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.attendance {
		c.attendance[k] = v
	}
	for k, v := range t.notifications {
		c.notifications[k] = v
	}
	for k, v := range t.departments {
		v.TeacherIDs = append([]string(nil), v.TeacherIDs...)
		c.departments[k] = v
	}
	for k, v := range t.resets {
		c.resets[k] = v
	}
	c.audit = append(c.audit, t.audit...)
	return c
}

// DB is an in-memory store.Store.
type DB struct {
	mu *sync.RWMutex
	t  *tables
}

var _ store.Store = (*DB)(nil)

func New() *DB {
	return &DB{mu: &sync.RWMutex{}, t: newTables()}
}

func (db *DB) Identities() store.IdentityRepository       { return identityRepo{db} }
func (db *DB) Users() store.UserRepository                 { return userRepo{db} }
func (db *DB) Attendance() store.AttendanceRepository      { return attendanceRepo{db} }
func (db *DB) Notifications() store.NotificationRepository { return notificationRepo{db} }
func (db *DB) Departments() store.DepartmentRepository     { return departmentRepo{db} }
func (db *DB) Resets() store.ResetRepository               { return resetRepo{db} }
func (db *DB) Audit() store.AuditRepository                { return auditRepo{db} }

func (db *DB) Ping(context.Context) error { return nil }

// WithTransaction runs fn against a private copy of the tables and swaps the
// copy in when fn succeeds. Every other operation on db waits until then, so
// fn must only use tx.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	staged := db.t.clone()
	if err := fn(ctx, &DB{mu: &sync.RWMutex{}, t: staged}); err != nil {
		return err
	}
	db.t = staged

	return nil
}
