package tenant

import (
	"context"
	"errors"
	"log/slog"
)

// Switcher moves a user's current tenant pointer on explicit request.
type Switcher struct {
	resolver *Resolver
}

// NewSwitcher creates a Switcher sharing the resolver's store and access rules.
func NewSwitcher(resolver *Resolver) *Switcher {
	return &Switcher{resolver: resolver}
}

// Switch points user at the tenant identified by slug.
// Returns ErrUnauthenticated without a user, ErrTenantNotFound for an unknown
// slug and ErrAccessDenied when the user may not access the tenant. Switching
// to the tenant that is already current performs no write.
func (s *Switcher) Switch(ctx context.Context, user *User, tenantSlug string) (*Tenant, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	r := s.resolver
	t, err := r.store.TenantBySlug(ctx, tenantSlug)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, r.storageError(ctx, "lookup tenant by slug", err)
	}

	allowed, err := r.CanAccessTenant(ctx, user, t)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	if user.CurrentTenantIs(t.ID) {
		return t, nil
	}

	if err := r.store.SetCurrentTenant(ctx, user.ID, t.ID); err != nil {
		return nil, r.storageError(ctx, "update current tenant", err)
	}
	r.observer.PointerUpdated()
	r.logger.InfoContext(ctx, "current tenant switched",
		slog.Int64("user_id", user.ID),
		slog.Int64("tenant_id", t.ID),
	)

	return t, nil
}
