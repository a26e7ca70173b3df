// Package ratelimiter throttles requests with fixed windows: at most
// Config.Limit hits per key within Config.Window. Counters live in process
// memory (MemoryStore) or in Redis (RedisStore) when several instances
// serve the same endpoints.
//
//	limiter, err := ratelimiter.New(ratelimiter.NewRedisStore(rdb, "tenancy:rl:"), "register", cfg)
//	r.With(ratelimiter.Middleware(limiter, byIP, nil)).Post("/tenant/register", h)
//
// Rejected requests reach the error handler with ErrRateLimited and carry a
// Retry-After header.
package ratelimiter
