// Package cache holds a redis read-through cache for profile documents.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"attendance-backend/entity"
)

var ErrMiss = errors.New("cache miss")

const profilePrefix = "profile:"

// tombstone marks an invalidated profile. Profiles are stored as JSON objects
// so it never collides with a real entry.
const tombstone = "-"

// Profiles caches profile documents. Invalidate leaves a tombstone for one
// TTL and Set never overwrites an existing key, so a read that started before
// an update or delete cannot put the old profile back.
type Profiles struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfiles(client *redis.Client, ttl time.Duration) *Profiles {
	return &Profiles{client: client, ttl: ttl}
}

func (p *Profiles) key(id string) string {
	return profilePrefix + id
}

func (p *Profiles) Get(ctx context.Context, id string) (*entity.User, error) {
	data, err := p.client.Get(ctx, p.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if string(data) == tombstone {
		return nil, ErrMiss
	}

	u := &entity.User{}
	if err := json.Unmarshal(data, u); err != nil {
		return nil, fmt.Errorf("cache unmarshal: %w", err)
	}
	return u, nil
}

func (p *Profiles) Set(ctx context.Context, u *entity.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return p.client.SetNX(ctx, p.key(u.ID), data, p.ttl).Err()
}

func (p *Profiles) Invalidate(ctx context.Context, id string) error {
	return p.client.Set(ctx, p.key(id), tombstone, p.ttl).Err()
}

func (p *Profiles) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
