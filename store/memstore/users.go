package memstore

import (
	"context"
	"sort"
	"time"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/store"
)

type identityRepo struct{ db *DB }

func (r identityRepo) Insert(_ context.Context, id *entity.Identity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.identities[id.ID]; ok {
		return errs.ErrAlreadyExists
	}
	for _, v := range r.db.t.identities {
		if v.Email == id.Email {
			return errs.ErrAlreadyExists
		}
	}
	r.db.t.identities[id.ID] = *id
	return nil
}

func (r identityRepo) FindByID(_ context.Context, id string) (*entity.Identity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if v, ok := r.db.t.identities[id]; ok {
		return &v, nil
	}
	return nil, errs.ErrNotFound
}

func (r identityRepo) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, v := range r.db.t.identities {
		if v.Email == email {
			return &v, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r identityRepo) SetPassword(_ context.Context, id, hash string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	v, ok := r.db.t.identities[id]
	if !ok {
		return errs.ErrNotFound
	}
	v.PasswordHash = hash
	v.PasswordChangedAt = at
	v.UpdatedAt = at
	r.db.t.identities[id] = v
	return nil
}

func (r identityRepo) BumpTokenVersion(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	v, ok := r.db.t.identities[id]
	if !ok {
		return errs.ErrNotFound
	}
	v.TokenVersion++
	r.db.t.identities[id] = v
	return nil
}

func (r identityRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.identities[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.db.t.identities, id)
	return nil
}

type userRepo struct{ db *DB }

func (r userRepo) Insert(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.users[u.ID]; ok {
		return errs.ErrAlreadyExists
	}
	r.db.t.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if u, ok := r.db.t.users[id]; ok {
		return &u, nil
	}
	return nil, errs.ErrNotFound
}

func (r userRepo) List(_ context.Context, q store.UserQuery) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]*entity.User, 0)
	for _, u := range r.db.t.users {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		if q.CreatedBy != "" && u.CreatedBy != q.CreatedBy {
			continue
		}
		if q.AssignedTeacher != "" && u.AssignedTeacher != q.AssignedTeacher {
			continue
		}
		u := u
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r userRepo) Update(_ context.Context, id string, patch store.UserPatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.t.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.ProfilePicture != nil {
		u.ProfilePicture = *patch.ProfilePicture
	}
	if patch.AssignedTeacher != nil {
		u.AssignedTeacher = *patch.AssignedTeacher
	}
	u.UpdatedAt = patch.UpdatedAt
	r.db.t.users[id] = u
	return nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.db.t.users, id)
	return nil
}
