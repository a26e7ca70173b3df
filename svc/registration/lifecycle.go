package registration

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/tenancy/pkg/catalog"
	"github.com/dmitrymomot/tenancy/pkg/sanitizer"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/store"
)

// ProfileUpdate changes a tenant's name and/or primary color. The slug is immutable.
type ProfileUpdate struct {
	Name         *string `json:"name"`
	PrimaryColor *string `json:"primary_color"`
}

// UpdateProfile validates and applies u, then drops cached lookups of the tenant.
func (s *Service) UpdateProfile(ctx context.Context, id int64, u ProfileUpdate) (*tenant.Tenant, error) {
	var rules []validator.Rule
	if u.Name != nil {
		name := sanitizer.Name(*u.Name)
		u.Name = &name
		rules = append(rules, validator.LengthBetween(FieldName, name, 2, 255))
	}
	if u.PrimaryColor != nil {
		color := *u.PrimaryColor
		rules = append(rules, validator.Custom(FieldPrimaryColor, func() bool { return catalog.ValidColor(color) },
			"must be a #rrggbb color", "validation.hex_color"))
	}
	if len(rules) == 0 {
		return nil, validator.NewError(FieldName, "nothing to update", "validation.empty_update")
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	t, err := s.store.UpdateTenant(ctx, id, store.TenantUpdate{Name: u.Name, PrimaryColor: u.PrimaryColor})
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(tenant.ErrStorage, err)
	}

	s.invalidate(ctx, t)
	s.log.InfoContext(ctx, "tenant updated", slog.Int64("tenant_id", t.ID))
	return t, nil
}

// Delete soft-deletes the tenant. Its slug becomes available again and
// subdomain requests stop resolving once cached lookups are dropped.
func (s *Service) Delete(ctx context.Context, id int64) error {
	t, err := s.store.SoftDeleteTenant(ctx, id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return tenant.ErrTenantNotFound
		}
		return errors.Join(tenant.ErrStorage, err)
	}

	s.invalidate(ctx, t)
	s.log.InfoContext(ctx, "tenant deleted", slog.Int64("tenant_id", t.ID), slog.String("tenant_slug", t.Slug))
	return nil
}

func (s *Service) invalidate(ctx context.Context, t *tenant.Tenant) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, t)
	}
}
