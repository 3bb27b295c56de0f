// Package store defines the persistence contracts shared by the MongoDB and
// in-memory backends. Missing documents are reported as errs.ErrNotFound and
// unique key clashes as errs.ErrAlreadyExists.
package store

import (
	"context"
	"time"

	"attendance-backend/entity"
)

type Store interface {
	Identities() IdentityRepository
	Users() UserRepository
	Attendance() AttendanceRepository
	Notifications() NotificationRepository
	Departments() DepartmentRepository
	Resets() ResetRepository
	Audit() AuditRepository

	// WithTransaction runs fn atomically. fn must use the store and context it
	// is given; the work is committed only if fn returns nil.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
}

type IdentityRepository interface {
	Insert(ctx context.Context, id *entity.Identity) error
	FindByID(ctx context.Context, id string) (*entity.Identity, error)
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)
	SetPassword(ctx context.Context, id, hash string, at time.Time) error
	BumpTokenVersion(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type UserQuery struct {
	Role            entity.Role
	CreatedBy       string
	AssignedTeacher string
}

type UserPatch struct {
	Name            *string
	ProfilePicture  *string
	AssignedTeacher *string
	UpdatedAt       time.Time
}

type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, q UserQuery) ([]*entity.User, error)
	Update(ctx context.Context, id string, patch UserPatch) error
	Delete(ctx context.Context, id string) error
}

// AttendanceQuery filters records. From and To are inclusive date keys and an
// empty StudentIDs means every student.
type AttendanceQuery struct {
	StudentIDs []string
	From       string
	To         string
}

type AttendanceRepository interface {
	// Upsert writes the record under its ID, replacing the mutable fields of an
	// existing record.
	Upsert(ctx context.Context, rec *entity.AttendanceRecord) error
	// Find returns matching records ordered by date descending.
	Find(ctx context.Context, q AttendanceQuery) ([]*entity.AttendanceRecord, error)
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *entity.Notification) error
	FindByID(ctx context.Context, id string) (*entity.Notification, error)
	// ListByStudent returns the student's notifications, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

type DepartmentPatch struct {
	Name        *string
	Description *string
	TeacherIDs  *[]string
	UpdatedAt   time.Time
}

type DepartmentRepository interface {
	Insert(ctx context.Context, d *entity.Department) error
	FindByID(ctx context.Context, id string) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
	Update(ctx context.Context, id string, patch DepartmentPatch) error
	Delete(ctx context.Context, id string) error
}

type ResetRepository interface {
	Insert(ctx context.Context, r *entity.PasswordReset) error
	FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, e *entity.CredentialEvent) error
	ListByUser(ctx context.Context, userID string) ([]*entity.CredentialEvent, error)
}
