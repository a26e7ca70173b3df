package rbac

import (
	"context"
	"maps"
	"slices"
)

// RoleSource provides role definitions.
type RoleSource interface {
	Load(ctx context.Context) (map[string]Role, error)
}

// RoleSourceFunc adapts a function to RoleSource.
type RoleSourceFunc func(ctx context.Context) (map[string]Role, error)

func (f RoleSourceFunc) Load(ctx context.Context) (map[string]Role, error) {
	return f(ctx)
}

type staticSource map[string]Role

// NewStaticRoleSource returns a RoleSource serving a deep copy of roles.
func NewStaticRoleSource(roles map[string]Role) RoleSource {
	cp := make(staticSource, len(roles))
	for name, r := range roles {
		cp[name] = Role{
			Permissions: slices.Clone(r.Permissions),
			Inherits:    slices.Clone(r.Inherits),
		}
	}
	return cp
}

func (s staticSource) Load(context.Context) (map[string]Role, error) {
	return maps.Clone(map[string]Role(s)), nil
}
