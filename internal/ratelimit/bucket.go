// Package ratelimit keeps one token bucket per caller key on top of
// golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const globalKey = "*"

type TokenBucket struct {
	limit    rate.Limit
	capacity int
	// idle is how long a bucket takes to refill completely. Buckets left alone
	// that long are full again and are dropped.
	idle time.Duration

	mu        sync.Mutex
	state     map[string]*entry
	lastSweep time.Time
	now       func() time.Time
}

type entry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// New creates a limiter with capacity tokens that refills perMinute tokens a
// minute.
func New(capacity, perMinute int) *TokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}

	idle := time.Minute
	if perMinute > 0 && capacity > perMinute {
		idle = time.Duration(capacity) * time.Minute / time.Duration(perMinute)
	}

	return &TokenBucket{
		limit:    rate.Limit(float64(perMinute) / 60),
		capacity: capacity,
		idle:     idle,
		state:    make(map[string]*entry),
		now:      time.Now,
	}
}

// Allow takes a token from key's bucket.
func (l *TokenBucket) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.state[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.capacity)}
		l.state[key] = e
	}
	e.seen = now
	return e.limiter.AllowN(now, 1)
}

func (l *TokenBucket) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	for key, e := range l.state {
		if now.Sub(e.seen) >= l.idle {
			delete(l.state, key)
		}
	}
	l.lastSweep = now
}

// Limit reports whether a server-wide request must be rejected.
func (l *TokenBucket) Limit() bool {
	return !l.Allow(globalKey)
}
