package ratelimiter

import (
	"context"
	"time"
)

// Store keeps hit counters.
type Store interface {
	// Hit increments the counter of key, starting a window of the given
	// length on the first hit, and returns the count and window end.
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)

	Reset(ctx context.Context, key string) error
}
