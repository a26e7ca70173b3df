// Package redis connects to Redis with retries and exposes a health check.
// The tenant lookup cache (tenant.RedisCache) runs on the client it returns.
package redis
