package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/tenancy/pkg/scope"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// Member is the listing view of a user; credentials are never loaded.
type Member struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Active          bool      `json:"active"`
	CurrentTenantID *int64    `json:"current_tenant_id,omitempty"`
	BranchID        *int64    `json:"branch_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Member) TableName() string { return scope.UsersTable }

// UserFilter selects the user listing for a panel.
type UserFilter struct {
	Panel       tenant.Panel
	HiddenRoles []string
	// BranchID narrows tenant panel listings to one branch.
	BranchID *int64
}

// Users lists users visible in the panel: hidden roles never appear and the
// tenant panel only shows members of the resolved tenant.
func (r *Repository) Users(ctx context.Context, rc *tenant.RequestContext, f UserFilter, page Page) ([]Member, int64, error) {
	page = page.normalize()
	usersOf := scope.Users(f.Panel, rc, f.HiddenRoles, f.BranchID)

	var total int64
	if err := r.db.WithContext(ctx).Model(&Member{}).Scopes(usersOf).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var members []Member
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "active", "current_tenant_id", "branch_id", "created_at").
		Scopes(usersOf).
		Order("name").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&members).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return members, total, nil
}
