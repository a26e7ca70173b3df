package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// NewTenant describes a tenant to provision.
type NewTenant struct {
	Slug         string
	Name         string
	Type         string
	PrimaryColor string
	OwnerUserID  *int64
}

// TenantUpdate changes mutable tenant attributes; nil fields are kept.
// The slug is not part of it.
type TenantUpdate struct {
	Name         *string
	PrimaryColor *string
}

func (s *Store) TenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx, qTenantBySlug, slug))
	if err != nil {
		return nil, notFound(err, "tenant by slug")
	}
	return t, nil
}

func (s *Store) TenantByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx, qTenantByID, id))
	if err != nil {
		return nil, notFound(err, "tenant by id")
	}
	return t, nil
}

// TenantsForUser lists the live tenants the user is a member of, by name.
func (s *Store) TenantsForUser(ctx context.Context, userID int64) ([]tenant.Tenant, error) {
	rows, err := s.db.Query(ctx, qTenantsForUser, userID)
	if err != nil {
		return nil, fmt.Errorf("tenants for user: %w", err)
	}
	defer rows.Close()

	var out []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("tenants for user: scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tenants for user: %w", err)
	}
	return out, nil
}

// CreateTenant inserts a tenant and, when an owner is given, its membership row.
// The slug is validated again here so no write path can bypass the rules.
func (s *Store) CreateTenant(ctx context.Context, nt NewTenant) (*tenant.Tenant, error) {
	if err := s.rules.Validate("slug", nt.Slug); err != nil {
		return nil, err
	}

	var created *tenant.Tenant
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		t, err := scanTenant(tx.QueryRow(ctx, qInsertTenant, nt.Slug, nt.Name, nt.Type, nullString(nt.PrimaryColor), nt.OwnerUserID))
		if err != nil {
			return fmt.Errorf("insert tenant: %w", conflict(err))
		}
		if nt.OwnerUserID != nil {
			if _, err := tx.Exec(ctx, qInsertMember, t.ID, *nt.OwnerUserID); err != nil {
				return fmt.Errorf("insert owner membership: %w", conflict(err))
			}
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTenant applies u and returns the updated tenant.
func (s *Store) UpdateTenant(ctx context.Context, id int64, u TenantUpdate) (*tenant.Tenant, error) {
	if u.Name == nil && u.PrimaryColor == nil {
		return nil, ErrNothingToSet
	}
	t, err := scanTenant(s.db.QueryRow(ctx, qUpdateTenant, id, u.Name, u.PrimaryColor))
	if err != nil {
		return nil, notFound(err, "update tenant")
	}
	return t, nil
}

// SoftDeleteTenant marks the tenant deleted and returns its last state.
// Its slug becomes available again.
func (s *Store) SoftDeleteTenant(ctx context.Context, id int64) (*tenant.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx, qSoftDeleteTenant, id))
	if err != nil {
		return nil, notFound(err, "soft delete tenant")
	}
	return t, nil
}

func (s *Store) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return s.exists(ctx, "slug taken", qSlugTaken, slug)
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var (
		t     tenant.Tenant
		color *string
	)
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Type, &color, &t.OwnerUserID, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if color != nil {
		t.PrimaryColor = *color
	}
	return &t, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return tenant.ErrTenantNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
