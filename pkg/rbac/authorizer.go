package rbac

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Authorizer answers permission questions for roles.
// Effective permissions (own plus inherited) are computed once at construction
// and never mutated, so an Authorizer is safe for concurrent use.
type Authorizer struct {
	permissions map[string][]string
	sorted      []string
}

// NewAuthorizer loads roles from source and precomputes effective permissions.
func NewAuthorizer(ctx context.Context, source RoleSource) (*Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	depths, err := inheritanceDepths(roles)
	if err != nil {
		return nil, err
	}

	a := &Authorizer{
		permissions: make(map[string][]string, len(roles)),
		sorted:      make([]string, 0, len(roles)),
	}
	for name := range roles {
		a.permissions[name] = normalize(collect(name, roles, make(map[string]bool)))
		a.sorted = append(a.sorted, name)
	}
	slices.SortFunc(a.sorted, func(x, y string) int {
		if d := depths[x] - depths[y]; d != 0 {
			return d
		}
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
		return 0
	})

	return a, nil
}

// Can checks whether role holds permission directly or through inheritance.
func (a *Authorizer) Can(role, permission string) error {
	perms, ok := a.permissions[role]
	if !ok {
		return ErrInvalidRole
	}
	if !hasPermission(perms, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

// CanAny checks whether any of roles holds permission. Unknown roles are skipped.
func (a *Authorizer) CanAny(roles []string, permission string) error {
	known := false
	for _, role := range roles {
		err := a.Can(role, permission)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrInvalidRole) {
			known = true
		}
	}
	if !known {
		return ErrInvalidRole
	}
	return ErrInsufficientPermissions
}

// VerifyRole returns ErrInvalidRole for an undefined role.
func (a *Authorizer) VerifyRole(role string) error {
	if _, ok := a.permissions[role]; !ok {
		return ErrInvalidRole
	}
	return nil
}

// Roles returns role names, base roles first.
func (a *Authorizer) Roles() []string {
	return slices.Clone(a.sorted)
}

// Permissions returns the effective permissions of role.
func (a *Authorizer) Permissions(role string) []string {
	return slices.Clone(a.permissions[role])
}

func collect(name string, roles map[string]Role, seen map[string]bool) []string {
	if seen[name] {
		return nil
	}
	seen[name] = true

	role, ok := roles[name]
	if !ok {
		return nil
	}
	out := slices.Clone(role.Permissions)
	for _, parent := range role.Inherits {
		out = append(out, collect(parent, roles, seen)...)
	}
	return out
}

// inheritanceDepths returns each role's distance from a base role, rejecting
// cycles and chains deeper than MaxInheritanceDepth.
func inheritanceDepths(roles map[string]Role) (map[string]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(roles))
	depths := make(map[string]int, len(roles))

	var visit func(name string, path []string) (int, error)
	visit = func(name string, path []string) (int, error) {
		switch state[name] {
		case done:
			return depths[name], nil
		case visiting:
			return 0, fmt.Errorf("%w: %v -> %s", ErrCircularInheritance, path, name)
		}
		state[name] = visiting

		depth := 0
		for _, parent := range roles[name].Inherits {
			d, err := visit(parent, append(slices.Clip(path), name))
			if err != nil {
				return 0, err
			}
			depth = max(depth, d+1)
		}
		if depth > MaxInheritanceDepth {
			return 0, fmt.Errorf("%w: depth of %s exceeds %d", ErrCircularInheritance, name, MaxInheritanceDepth)
		}

		state[name] = done
		depths[name] = depth
		return depth, nil
	}

	for name := range roles {
		if _, err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return depths, nil
}
