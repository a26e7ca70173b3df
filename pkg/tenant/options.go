package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// AuthenticateFunc returns the request's authenticated user, or nil for anonymous requests.
// An error aborts the request.
type AuthenticateFunc func(r *http.Request) (*User, error)

type config struct {
	errorHandler ErrorHandler
	skipPaths    []string
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass resolution entirely (health, metrics).
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithMiddlewareLogger sets the logger used by the middleware.
func WithMiddlewareLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// DefaultErrorHandler maps tenancy errors to plain-text HTTP responses.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrAccessDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNoTenantInContext), errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
