// Package service implements the attendance workflow: identity, directory,
// attendance recording, notification fan-out, departments and the privileged
// callables. Every component is built from an explicit Deps value.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/events"
	"attendance-backend/log"
	"attendance-backend/store"
)

const minPasswordLength = 6

// PasswordCost is the bcrypt cost for new password hashes.
var PasswordCost = bcrypt.DefaultCost

// ProfileCache is a read-through cache for profile documents.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	Set(ctx context.Context, u *entity.User) error
	Invalidate(ctx context.Context, id string) error
}

type Deps struct {
	Store store.Store
	Bus   events.Bus
	// Cache is optional.
	Cache ProfileCache
	// Now and Location default to time.Now and UTC.
	Now      func() time.Time
	Location *time.Location
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// today is the attendance date key for the current instant.
func (d Deps) today() string {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return d.now().In(loc).Format(entity.DateLayout)
}

func (d Deps) publish(ctx context.Context, kind events.Kind, studentID, recordID string) {
	if d.Bus == nil {
		return
	}
	err := d.Bus.Publish(ctx, &events.Event{Kind: kind, StudentID: studentID, RecordID: recordID})
	if err != nil {
		log.Logger.Error("failed publishing event", zap.Error(err), zap.Stringer("kind", kind), zap.String("studentID", studentID))
	}
}

func (d Deps) lookupUser(ctx context.Context, id string) (*entity.User, error) {
	if d.Cache != nil {
		if u, err := d.Cache.Get(ctx, id); err == nil {
			return u, nil
		}
	}

	u, err := d.Store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.Cache != nil {
		if err := d.Cache.Set(ctx, u); err != nil {
			log.Logger.Warn("failed caching profile", zap.String("id", id), zap.Error(err))
		}
	}
	return u, nil
}

func (d Deps) forget(ctx context.Context, id string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Invalidate(ctx, id); err != nil {
		log.Logger.Warn("failed invalidating profile", zap.String("id", id), zap.Error(err))
	}
}

// studentsOf is the union of the students a teacher created and the students
// assigned to them, without duplicates.
func studentsOf(ctx context.Context, users store.UserRepository, teacherID string) ([]*entity.User, error) {
	created, err := users.List(ctx, store.UserQuery{Role: entity.RoleStudent, CreatedBy: teacherID})
	if err != nil {
		return nil, err
	}
	assigned, err := users.List(ctx, store.UserQuery{Role: entity.RoleStudent, AssignedTeacher: teacherID})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(created)+len(assigned))
	students := make([]*entity.User, 0, len(created)+len(assigned))
	for _, list := range [][]*entity.User{created, assigned} {
		for _, u := range list {
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			students = append(students, u)
		}
	}
	return students, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		log.Logger.Error("failed to generate bcrypt hash", zap.Error(err))
		return "", errs.ErrCryptographic
	}
	return string(hash), nil
}

var validate = validator.New()

// validateInput runs the struct tags of v and reports the first failure as a
// backend error.
func validateInput(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errs.ErrValidation
	}

	fe := ve[0]
	switch fe.Field() + "." + fe.Tag() {
	case "Email.required":
		return errs.ErrEmailRequired
	case "Email.email":
		return errs.ErrEmailAddressFormat
	case "Password.required":
		return errs.ErrPasswordRequired
	case "Password.min":
		return errs.ErrWeakPassword
	case "Name.required":
		return errs.ErrNameRequired
	case "Role.required", "Role.oneof":
		return errs.ErrInvalidRole
	}
	return errs.ErrValidation.WithDetail(fe.Field() + " " + fe.Tag())
}

func validDate(s string) bool {
	_, err := time.Parse(entity.DateLayout, s)
	return err == nil
}
