package tenant

import (
	"context"
	"slices"
	"time"
)

// Tenant is an isolated organizational account addressed by its slug subdomain.
type Tenant struct {
	ID           int64      `json:"id"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	PrimaryColor string     `json:"primary_color,omitempty"`
	OwnerUserID  *int64     `json:"owner_user_id,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// User is the authenticated identity as seen by tenant resolution.
// Roles is the capability set used for super admin and panel checks.
type User struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Active          bool     `json:"active"`
	CurrentTenantID *int64   `json:"current_tenant_id,omitempty"`
	BranchID        *int64   `json:"branch_id,omitempty"`
	Roles           []string `json:"roles"`
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	if u == nil || role == "" {
		return false
	}
	return slices.Contains(u.Roles, role)
}

// Authenticated reports whether u is a real user; nil-safe.
func (u *User) Authenticated() bool {
	return u != nil
}

// RoleNames returns the user's roles; nil-safe.
func (u *User) RoleNames() []string {
	if u == nil {
		return nil
	}
	return u.Roles
}

// CurrentTenantIs reports whether the stored current tenant pointer equals id.
func (u *User) CurrentTenantIs(id int64) bool {
	return u != nil && u.CurrentTenantID != nil && *u.CurrentTenantID == id
}

// Store is the storage boundary tenant resolution reads from and writes to.
type Store interface {
	// TenantBySlug returns a non-deleted tenant by exact slug match, or ErrTenantNotFound.
	TenantBySlug(ctx context.Context, slug string) (*Tenant, error)
	// TenantByID returns a non-deleted tenant, or ErrTenantNotFound.
	TenantByID(ctx context.Context, id int64) (*Tenant, error)
	// IsMember reports whether a membership row links the user to the tenant.
	IsMember(ctx context.Context, tenantID, userID int64) (bool, error)
	// HasMemberships reports whether the user belongs to at least one tenant.
	HasMemberships(ctx context.Context, userID int64) (bool, error)
	// SetCurrentTenant stores the user's current tenant pointer.
	SetCurrentTenant(ctx context.Context, userID, tenantID int64) error
}
