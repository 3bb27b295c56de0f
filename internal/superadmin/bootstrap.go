// Package superadmin bootstraps the first administrator account. Every other
// account is created by an administrator or a teacher through the API.
package superadmin

import (
	"context"
	"errors"
	"strings"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/service"
	"attendance-backend/store"
)

// EnsureAdmin creates an admin with the given credentials unless an account
// with the email already exists. An existing account that is not an admin is
// reported as errs.ErrAlreadyExists.
func EnsureAdmin(ctx context.Context, s store.Store, dir *service.Directory, email, password, name string) (id string, created bool, err error) {
	identity, err := s.Identities().FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	switch {
	case err == nil:
		user, err := dir.GetByID(ctx, identity.ID)
		if err != nil {
			return "", false, err
		}
		if user.Role != entity.RoleAdmin {
			return "", false, errs.ErrAlreadyExists.WithDetail("account exists with role " + string(user.Role))
		}
		return user.ID, false, nil
	case !errors.Is(err, errs.ErrNotFound):
		return "", false, err
	}

	res, err := dir.CreateUser(ctx, service.CreateUserInput{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return "", false, err
	}
	return res.ID, true, nil
}
