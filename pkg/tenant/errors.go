package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by stores when no live tenant matches.
	// The resolver recovers it as "no tenant".
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrAccessDenied is returned when a user is not allowed into a tenant or panel.
	ErrAccessDenied = errors.New("tenant access denied")

	// ErrUnauthenticated is returned when an operation requires a user and there is none.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrStorage wraps failures of the underlying store; fatal for the request.
	ErrStorage = errors.New("tenant storage failure")

	// ErrNoTenantInContext is returned when a route requires a resolved tenant.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
