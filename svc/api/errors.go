package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/tenancy/pkg/jwt"
	"github.com/dmitrymomot/tenancy/pkg/ratelimiter"
	"github.com/dmitrymomot/tenancy/pkg/rbac"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/registration"
	"github.com/dmitrymomot/tenancy/svc/shop"
	"github.com/dmitrymomot/tenancy/svc/store"
)

var (
	ErrBadRequest         = errors.New("malformed request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("account is inactive")
)

// statusOf maps an error to its HTTP status and public message.
// Storage details never leave the server.
func statusOf(err error) (int, string) {
	switch {
	case validator.IsValidationError(err):
		return http.StatusUnprocessableEntity, "validation failed"
	case errors.Is(err, ratelimiter.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, tenant.ErrUnauthenticated), errors.Is(err, rbac.ErrUnauthenticated),
		errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrExpiredToken),
		errors.Is(err, jwt.ErrInvalidSignature), errors.Is(err, jwt.ErrInvalidClaims):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, ErrInactiveUser):
		return http.StatusForbidden, "account is inactive"
	case errors.Is(err, tenant.ErrAccessDenied), errors.Is(err, rbac.ErrAccessDenied),
		errors.Is(err, rbac.ErrInsufficientPermissions), errors.Is(err, rbac.ErrInvalidRole):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, tenant.ErrTenantNotFound), errors.Is(err, tenant.ErrNoTenantInContext):
		return http.StatusNotFound, "tenant not found"
	case errors.Is(err, shop.ErrNotFound), errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, shop.ErrNoTenant):
		return http.StatusBadRequest, "tenant required"
	case errors.Is(err, ErrBadRequest), errors.Is(err, shop.ErrInvalidInput), errors.Is(err, store.ErrNothingToSet):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, registration.ErrRegistrationFailed):
		return http.StatusInternalServerError, "registration failed, please try again"
	}
	return http.StatusInternalServerError, "internal server error"
}
