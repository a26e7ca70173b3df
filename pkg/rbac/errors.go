package rbac

import "errors"

var (
	ErrInvalidRole             = errors.New("rbac.invalid_role")
	ErrInsufficientPermissions = errors.New("rbac.insufficient_permissions")
	ErrCircularInheritance     = errors.New("rbac.circular_inheritance")
	ErrUnauthenticated         = errors.New("rbac.unauthenticated")
	ErrAccessDenied            = errors.New("rbac.access_denied")
)
