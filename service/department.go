package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/store"
)

type Departments struct {
	deps Deps
}

func NewDepartments(deps Deps) *Departments {
	return &Departments{deps: deps}
}

type DepartmentInput struct {
	Name        string `validate:"required"`
	Description string
	TeacherIDs  []string
}

type DepartmentUpdate struct {
	Name        *string
	Description *string
	TeacherIDs  *[]string
}

func uniq(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *Departments) Create(ctx context.Context, in DepartmentInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return "", err
	}

	now := s.deps.now()
	d := &entity.Department{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		TeacherIDs:  uniq(in.TeacherIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deps.Store.Departments().Insert(ctx, d); err != nil {
		return "", err
	}
	return d.ID, nil
}

func (s *Departments) Update(ctx context.Context, id string, upd DepartmentUpdate) error {
	if id == "" {
		return errs.ErrInvalidID
	}

	patch := store.DepartmentPatch{Description: upd.Description, UpdatedAt: s.deps.now()}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return errs.ErrNameRequired
		}
		patch.Name = &name
	}
	if upd.TeacherIDs != nil {
		ids := uniq(*upd.TeacherIDs)
		patch.TeacherIDs = &ids
	}

	return s.deps.Store.Departments().Update(ctx, id, patch)
}

// Delete removes the department only. Its teachers are left untouched.
func (s *Departments) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrInvalidID
	}
	return s.deps.Store.Departments().Delete(ctx, id)
}

func (s *Departments) Get(ctx context.Context, id string) (*entity.Department, error) {
	if id == "" {
		return nil, errs.ErrInvalidID
	}
	return s.deps.Store.Departments().FindByID(ctx, id)
}

func (s *Departments) List(ctx context.Context) ([]*entity.Department, error) {
	return s.deps.Store.Departments().List(ctx)
}
