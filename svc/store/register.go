package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// Registration is the input of a tenant self-registration.
type Registration struct {
	UserName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string

	TenantName   string
	Slug         string
	TenantType   string
	PrimaryColor string
}

// Register creates the user, the tenant owned by that user, the membership,
// the user's role and the current tenant pointer in one transaction. Either
// all of them exist afterwards or none do.
func (s *Store) Register(ctx context.Context, r Registration) (*tenant.Tenant, *tenant.User, error) {
	if err := s.rules.Validate("slug", r.Slug); err != nil {
		return nil, nil, err
	}

	var (
		t *tenant.Tenant
		u *tenant.User
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var userID int64
		if err := tx.QueryRow(ctx, qInsertUser, r.UserName, r.Email, r.PasswordHash, nullString(r.Phone)).Scan(&userID); err != nil {
			return fmt.Errorf("insert user: %w", conflict(err))
		}

		created, err := scanTenant(tx.QueryRow(ctx, qInsertTenant, r.Slug, r.TenantName, r.TenantType, nullString(r.PrimaryColor), &userID))
		if err != nil {
			return fmt.Errorf("insert tenant: %w", conflict(err))
		}

		if _, err := tx.Exec(ctx, qInsertMember, created.ID, userID); err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		if _, err := tx.Exec(ctx, qInsertRole, userID, r.Role); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
		if _, err := tx.Exec(ctx, qSetCurrentTenant, userID, created.ID); err != nil {
			return fmt.Errorf("set current tenant: %w", err)
		}

		t = created
		u = &tenant.User{
			ID:              userID,
			Name:            r.UserName,
			Email:           r.Email,
			Active:          true,
			CurrentTenantID: &created.ID,
			Roles:           []string{r.Role},
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return t, u, nil
}
