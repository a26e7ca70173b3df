package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// Credentials is what login needs to check a password.
type Credentials struct {
	UserID       int64
	PasswordHash string
	Active       bool
}

func (s *Store) IsMember(ctx context.Context, tenantID, userID int64) (bool, error) {
	return s.exists(ctx, "is member", qIsMember, tenantID, userID)
}

func (s *Store) HasMemberships(ctx context.Context, userID int64) (bool, error) {
	return s.exists(ctx, "has memberships", qHasMemberships, userID)
}

// SetCurrentTenant moves the user's current tenant pointer. Concurrent
// updates for one user are last-write-wins.
func (s *Store) SetCurrentTenant(ctx context.Context, userID, tenantID int64) error {
	tag, err := s.db.Exec(ctx, qSetCurrentTenant, userID, tenantID)
	if err != nil {
		return fmt.Errorf("set current tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddMember links a user to a tenant; an existing link is kept.
func (s *Store) AddMember(ctx context.Context, tenantID, userID int64) error {
	if _, err := s.db.Exec(ctx, qInsertMember, tenantID, userID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// UserByID loads a user with its roles.
func (s *Store) UserByID(ctx context.Context, id int64) (*tenant.User, error) {
	var u tenant.User
	err := s.db.QueryRow(ctx, qUserByID, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Active, &u.CurrentTenantID, &u.BranchID, &u.Roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user by id: %w", err)
	}
	return &u, nil
}

// UserCredentials looks a user up by email, case-insensitively.
func (s *Store) UserCredentials(ctx context.Context, email string) (*Credentials, error) {
	var c Credentials
	if err := s.db.QueryRow(ctx, qCredentials, email).Scan(&c.UserID, &c.PasswordHash, &c.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user credentials: %w", err)
	}
	return &c, nil
}

func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email taken", qEmailTaken, email)
}

func (s *Store) exists(ctx context.Context, op, query string, args ...any) (bool, error) {
	var ok bool
	if err := s.db.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}
