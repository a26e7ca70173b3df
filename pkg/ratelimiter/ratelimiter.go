package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config is a fixed-window limit: at most Limit hits per Window.
type Config struct {
	Limit  int
	Window time.Duration
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Result describes the state of a key after a hit.
type Result struct {
	Limit     int
	Remaining int // negative once the limit is exceeded
	ResetAt   time.Time
}

func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next allowed hit, 0 when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Limiter counts hits per key in fixed windows.
type Limiter struct {
	store  Store
	config Config
	name   string
}

// New creates a Limiter. name namespaces keys so several limiters can share a store.
func New(store Store, name string, config Config) (*Limiter, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, config: config, name: name}, nil
}

// Allow records a hit for key.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := l.store.Hit(ctx, l.key(key), l.config.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return &Result{
		Limit:     l.config.Limit,
		Remaining: l.config.Limit - count,
		ResetAt:   resetAt,
	}, nil
}

// Reset forgets the hits of key, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, l.key(key))
}

func (l *Limiter) key(key string) string {
	if l.name == "" {
		return key
	}
	return l.name + ":" + key
}
