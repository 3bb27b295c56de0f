package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/events"
	"attendance-backend/log"
	"attendance-backend/metrics"
	"attendance-backend/store"
)

type Directory struct {
	deps Deps
}

func NewDirectory(deps Deps) *Directory {
	return &Directory{deps: deps}
}

func (d *Directory) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, errs.ErrUserIDRequired
	}
	return d.deps.lookupUser(ctx, id)
}

// ListAll lists every profile, or only those with role when it is set.
func (d *Directory) ListAll(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	if role != "" && !role.Valid() {
		return nil, errs.ErrInvalidRole
	}
	return d.deps.Store.Users().List(ctx, store.UserQuery{Role: role})
}

func (d *Directory) ListStudentsForTeacher(ctx context.Context, teacherID string) ([]*entity.User, error) {
	if teacherID == "" {
		return nil, errs.ErrUserIDRequired
	}
	return studentsOf(ctx, d.deps.Store.Users(), teacherID)
}

type CreateUserInput struct {
	Email           string      `validate:"required,email"`
	Password        string      `validate:"required,min=6"`
	Name            string      `validate:"required"`
	Role            entity.Role `validate:"required,oneof=admin teacher student"`
	CreatedBy       string
	AssignedTeacher string
	// ActorID is recorded in the credential audit log.
	ActorID string
}

type CreateUserResult struct {
	ID      string
	Message string
}

// CreateUser creates the identity and the profile together. Either both exist
// afterwards or neither does.
func (d *Directory) CreateUser(ctx context.Context, in CreateUserInput) (*CreateUserResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Role != entity.RoleStudent {
		in.CreatedBy = ""
		in.AssignedTeacher = ""
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := d.deps.now()
	id := uuid.NewString()
	actor := in.ActorID
	if actor == "" {
		actor = id
	}

	err = d.deps.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		if in.AssignedTeacher != "" {
			teacher, err := tx.Users().FindByID(ctx, in.AssignedTeacher)
			if errors.Is(err, errs.ErrNotFound) {
				return errs.ErrNotTeacher.WithDetail("assigned teacher not found")
			}
			if err != nil {
				return err
			}
			if teacher.Role != entity.RoleTeacher {
				return errs.ErrNotTeacher
			}
		}

		err := tx.Identities().Insert(ctx, &entity.Identity{
			ID:                id,
			Email:             in.Email,
			PasswordHash:      hash,
			CreatedAt:         now,
			UpdatedAt:         now,
			PasswordChangedAt: now,
		})
		if err != nil {
			return err
		}

		err = tx.Users().Insert(ctx, &entity.User{
			ID:              id,
			Email:           in.Email,
			Name:            in.Name,
			Role:            in.Role,
			CreatedBy:       in.CreatedBy,
			AssignedTeacher: in.AssignedTeacher,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}

		return tx.Audit().Insert(ctx, &entity.CredentialEvent{
			ID:      uuid.NewString(),
			UserID:  id,
			ActorID: actor,
			Kind:    entity.CredentialCreated,
			At:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreated.WithLabelValues(string(in.Role)).Inc()
	log.Logger.Info("user created", zap.String("userID", id), zap.String("role", string(in.Role)), zap.String("actor", actor))

	return &CreateUserResult{ID: id, Message: in.Role.Title() + " created successfully"}, nil
}

type ProfileUpdate struct {
	Name           *string
	ProfilePicture *string
}

func (d *Directory) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	if id == "" {
		return errs.ErrUserIDRequired
	}

	patch := store.UserPatch{ProfilePicture: upd.ProfilePicture, UpdatedAt: d.deps.now()}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return errs.ErrNameRequired
		}
		patch.Name = &name
	}

	if err := d.deps.Store.Users().Update(ctx, id, patch); err != nil {
		return err
	}
	d.deps.forget(ctx, id)
	return nil
}

// AssignTeacher sets the student's teacher. An empty teacherID clears it.
func (d *Directory) AssignTeacher(ctx context.Context, studentID, teacherID string) error {
	if studentID == "" {
		return errs.ErrUserIDRequired
	}

	student, err := d.deps.Store.Users().FindByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.Role != entity.RoleStudent {
		return errs.ErrNotStudent
	}

	if teacherID != "" {
		teacher, err := d.deps.Store.Users().FindByID(ctx, teacherID)
		if err != nil {
			return err
		}
		if teacher.Role != entity.RoleTeacher {
			return errs.ErrNotTeacher
		}
	}

	err = d.deps.Store.Users().Update(ctx, studentID, store.UserPatch{
		AssignedTeacher: &teacherID,
		UpdatedAt:       d.deps.now(),
	})
	if err != nil {
		return err
	}
	d.deps.forget(ctx, studentID)
	return nil
}

// CredentialEvents returns the credential audit trail of a user, oldest first.
func (d *Directory) CredentialEvents(ctx context.Context, userID string) ([]*entity.CredentialEvent, error) {
	if userID == "" {
		return nil, errs.ErrUserIDRequired
	}
	return d.deps.Store.Audit().ListByUser(ctx, userID)
}

type DeleteResult struct {
	Message string
}

// DeleteUserCascade removes the user with their identity, attendance,
// notifications and pending password resets in one transaction. Admins
// cannot be deleted.
func (d *Directory) DeleteUserCascade(ctx context.Context, id, actorID string) (*DeleteResult, error) {
	if id == "" {
		return nil, errs.ErrUserIDRequired
	}

	var (
		deleted       *entity.User
		attendance    int64
		notifications int64
	)
	now := d.deps.now()

	err := d.deps.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u.Role == entity.RoleAdmin {
			return errs.ErrAdminUndeletable
		}

		if attendance, err = tx.Attendance().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		if notifications, err = tx.Notifications().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		if _, err = tx.Resets().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err = tx.Identities().Delete(ctx, id); err != nil && !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if err = tx.Users().Delete(ctx, id); err != nil {
			return err
		}

		deleted = u
		return tx.Audit().Insert(ctx, &entity.CredentialEvent{
			ID:      uuid.NewString(),
			UserID:  id,
			ActorID: actorID,
			Kind:    entity.CredentialDeleted,
			At:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	d.deps.forget(ctx, id)
	d.deps.publish(ctx, events.NotificationsChanged, id, "")
	d.deps.publish(ctx, events.AttendanceChanged, id, "")

	metrics.UsersDeleted.WithLabelValues(string(deleted.Role)).Inc()
	log.Logger.Info("user deleted",
		zap.String("userID", id),
		zap.String("actor", actorID),
		zap.Int64("attendance", attendance),
		zap.Int64("notifications", notifications),
	)

	return &DeleteResult{Message: deleted.Role.Title() + ` "` + deleted.Name + `" deleted successfully.`}, nil
}
