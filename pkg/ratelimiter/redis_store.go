package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis the store uses.
type RedisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	PExpire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore shares counters between instances.
type RedisStore struct {
	client RedisClient
	prefix string
}

// NewRedisStore creates a store writing keys under prefix.
func NewRedisStore(client RedisClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, length time.Duration) (int, time.Time, error) {
	key = s.prefix + key

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("incr: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, key, length).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("pexpire: %w", err)
		}
		return 1, time.Now().Add(length), nil
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("pttl: %w", err)
	}
	// A key left without expiry by a failed PEXPIRE would block forever.
	if ttl < 0 {
		if err := s.client.PExpire(ctx, key, length).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("pexpire: %w", err)
		}
		ttl = length
	}
	return int(count), time.Now().Add(ttl), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("del: %w", err)
	}
	return nil
}
