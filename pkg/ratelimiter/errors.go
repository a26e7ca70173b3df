package ratelimiter

import "errors"

var (
	ErrInvalidConfig    = errors.New("ratelimiter: invalid configuration")
	ErrStoreUnavailable = errors.New("ratelimiter: store unavailable")
	// ErrRateLimited is passed to the middleware error handler for rejected requests.
	ErrRateLimited = errors.New("ratelimiter: too many requests")
)
