package tenant

import "context"

// Panel identifies an application area with its own access policy.
type Panel string

const (
	PanelAuth   Panel = "auth"
	PanelAdmin  Panel = "admin"
	PanelTenant Panel = "tenant"
)

// CanAccessPanel reports whether user may enter panel.
// The auth panel is open to everyone, the admin panel is for super admins only,
// and the tenant panel requires at least one membership.
func (r *Resolver) CanAccessPanel(ctx context.Context, user *User, panel Panel) (bool, error) {
	switch panel {
	case PanelAuth:
		return true, nil
	case PanelAdmin:
		return r.IsSuperAdmin(user), nil
	case PanelTenant:
		if user == nil {
			return false, nil
		}
		if r.IsSuperAdmin(user) {
			return true, nil
		}
		ok, err := r.store.HasMemberships(ctx, user.ID)
		if err != nil {
			return false, r.storageError(ctx, "check memberships", err)
		}
		return ok, nil
	}
	return false, nil
}
