package tenant

import (
	"context"
	"log/slog"
)

// RequestContext is the per-request resolution result handed to every downstream consumer.
type RequestContext struct {
	State  State
	Tenant *Tenant
	User   *User

	// PointerUpdated is set when resolution moved the user's current tenant pointer.
	PointerUpdated bool
}

// IsAuthBypass reports whether the request targets an auth-bypass path on the base domain.
func (rc *RequestContext) IsAuthBypass() bool {
	return rc != nil && rc.State == StateAuthBypass
}

// TenantID returns the resolved tenant id.
func (rc *RequestContext) TenantID() (int64, bool) {
	if rc == nil || rc.Tenant == nil {
		return 0, false
	}
	return rc.Tenant.ID, true
}

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithRequestContext stores the resolution result in ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the resolution result stored by the middleware.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}

// TenantFromContext returns the resolved tenant, if any.
func TenantFromContext(ctx context.Context) (*Tenant, bool) {
	rc, ok := FromContext(ctx)
	if !ok || rc.Tenant == nil {
		return nil, false
	}
	return rc.Tenant, true
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	rc, ok := FromContext(ctx)
	if !ok || rc.User == nil {
		return nil, false
	}
	return rc.User, true
}

// MustTenantFromContext panics when no tenant was resolved.
// Use only behind RequireTenant.
func MustTenantFromContext(ctx context.Context) *Tenant {
	t, ok := TenantFromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor returns a logger context extractor adding tenant_id and tenant_slug.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		t, ok := TenantFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("tenant", slog.Int64("id", t.ID), slog.String("slug", t.Slug)), true
	}
}

// UserLoggerExtractor returns a logger context extractor adding user_id.
func UserLoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		u, ok := UserFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Int64("user_id", u.ID), true
	}
}
