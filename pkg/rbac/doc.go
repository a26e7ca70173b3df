// Package rbac provides role-based permissions and the authorization gate every
// ability check goes through.
//
// Roles carry dot-separated permissions with wildcard suffixes and may inherit
// from other roles:
//
//	roles := map[string]rbac.Role{
//		"customer": {Permissions: []string{"products.view"}},
//		"tenant":   {Permissions: []string{"products.*", "orders.*"}, Inherits: []string{"customer"}},
//	}
//	authz, err := rbac.NewAuthorizer(ctx, rbac.NewStaticRoleSource(roles))
//
// The Gate adds the cross-cutting rules: no subject is denied, the super admin
// role is allowed unconditionally, registered policies may deny or allow, role
// permissions are consulted next and everything else is denied.
//
//	gate := rbac.NewGate(authz, rbac.WithSuperAdminRole("super_admin"))
//	if err := gate.Check(ctx, user, "products.update", product); err != nil {
//		// rbac.ErrUnauthenticated or rbac.ErrAccessDenied
//	}
package rbac
