package registration

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/tenancy/pkg/catalog"
	"github.com/dmitrymomot/tenancy/pkg/sanitizer"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/store"
)

// ProvisionRequest creates a tenant from the admin panel.
// Empty Type and PrimaryColor take the catalog defaults.
type ProvisionRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Type         string `json:"type"`
	PrimaryColor string `json:"primary_color"`
	OwnerUserID  *int64 `json:"owner_user_id"`
}

// Provision validates and creates a tenant. A given owner becomes a member.
func (s *Service) Provision(ctx context.Context, req ProvisionRequest) (*tenant.Tenant, error) {
	req.Name = sanitizer.Name(req.Name)
	req.Slug = sanitizer.Trim(req.Slug)
	if req.Type == "" {
		req.Type = s.catalog.Defaults.Type
	}
	if req.PrimaryColor == "" {
		req.PrimaryColor = s.catalog.Defaults.PrimaryColor
	}

	if err := validator.Merge(
		validator.Apply(
			validator.Required(FieldName, req.Name),
			validator.LengthBetween(FieldName, req.Name, 2, 255),
			validator.In(FieldType, req.Type, s.catalog.TypeKeys()),
			validator.Custom(FieldPrimaryColor, func() bool { return catalog.ValidColor(req.PrimaryColor) },
				"must be a #rrggbb color", "validation.hex_color"),
		),
		s.rules.Validate(FieldSlug, req.Slug),
	); err != nil {
		return nil, err
	}

	taken, err := s.store.SlugTaken(ctx, req.Slug)
	if err != nil {
		return nil, s.failed(ctx, "check slug", err)
	}
	if taken {
		return nil, takenError(FieldSlug)
	}

	t, err := s.store.CreateTenant(ctx, store.NewTenant{
		Slug:         req.Slug,
		Name:         req.Name,
		Type:         req.Type,
		PrimaryColor: req.PrimaryColor,
		OwnerUserID:  req.OwnerUserID,
	})
	if err != nil {
		return nil, s.mapStoreError(ctx, "provision", FieldSlug, err)
	}

	s.invalidate(ctx, t)
	s.log.InfoContext(ctx, "tenant provisioned", slog.Int64("tenant_id", t.ID), slog.String("tenant_slug", t.Slug))
	return t, nil
}
