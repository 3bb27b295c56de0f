package service

import (
	"context"
	"errors"

	"attendance-backend/entity"
	"attendance-backend/errs"
)

// Functions are the privileged account operations. The caller is always the
// authenticated user making the request.
type Functions struct {
	directory *Directory
}

func NewFunctions(directory *Directory) *Functions {
	return &Functions{directory: directory}
}

func (f *Functions) caller(ctx context.Context, callerID string) (*entity.User, error) {
	if callerID == "" {
		return nil, errs.ErrUnauthorized
	}
	u, err := f.directory.GetByID(ctx, callerID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrCallerNotFound
	}
	return u, err
}

// CreateUser lets admins create anyone and teachers create students.
func (f *Functions) CreateUser(ctx context.Context, callerID string, in CreateUserInput) (*CreateUserResult, error) {
	caller, err := f.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if in.Email == "" || in.Password == "" || in.Name == "" || in.Role == "" {
		return nil, errs.ErrValidation.WithDetail("email, password, name and role are required")
	}
	if !in.Role.Valid() {
		return nil, errs.ErrInvalidRole
	}

	switch caller.Role {
	case entity.RoleAdmin:
		in.CreatedBy = ""
	case entity.RoleTeacher:
		if in.Role != entity.RoleStudent {
			return nil, errs.ErrTeacherCreatesStudents
		}
		in.CreatedBy = caller.ID
	default:
		return nil, errs.ErrStudentCannotCreate
	}

	in.ActorID = caller.ID
	return f.directory.CreateUser(ctx, in)
}

// DeleteUser is admin only.
func (f *Functions) DeleteUser(ctx context.Context, callerID, userID string) (*DeleteResult, error) {
	caller, err := f.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Role != entity.RoleAdmin {
		return nil, errs.ErrNotAdmin
	}
	if userID == "" {
		return nil, errs.ErrUserIDRequired
	}

	return f.directory.DeleteUserCascade(ctx, userID, caller.ID)
}
