package rbac

import (
	"context"
	"io"
	"log/slog"
	"slices"
)

// Policy decides an ability for a subject, optionally against a resource.
// Returning Abstain defers to the role permissions.
type Policy func(ctx context.Context, subject Subject, ability string, resource any) Decision

// Gate is the single entry point for ability checks:
//
//  1. no authenticated subject: ErrUnauthenticated;
//  2. super admin: allowed, nothing else is consulted;
//  3. policies: any Deny denies, otherwise any Allow allows;
//  4. role permissions: the ability is treated as a permission name;
//  5. anything else: ErrAccessDenied.
type Gate struct {
	authz          *Authorizer
	superAdminRole string
	policies       map[string][]Policy
	logger         *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithSuperAdminRole sets the role that short-circuits every check.
func WithSuperAdminRole(role string) GateOption {
	return func(g *Gate) {
		g.superAdminRole = role
	}
}

// WithPolicy registers a policy for ability. "*" applies to every ability.
func WithPolicy(ability string, p Policy) GateOption {
	return func(g *Gate) {
		g.policies[ability] = append(g.policies[ability], p)
	}
}

// WithGateLogger sets the logger for denied checks.
func WithGateLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGate creates a Gate over authz. A nil authz grants nothing through roles.
func NewGate(authz *Authorizer, opts ...GateOption) *Gate {
	g := &Gate{
		authz:          authz,
		superAdminRole: "super_admin",
		policies:       make(map[string][]Policy),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check authorizes ability for subject. resource may be nil.
func (g *Gate) Check(ctx context.Context, subject Subject, ability string, resource any) error {
	if subject == nil || !subject.Authenticated() {
		return ErrUnauthenticated
	}

	roles := subject.RoleNames()
	if g.superAdminRole != "" && slices.Contains(roles, g.superAdminRole) {
		return nil
	}

	allowed := false
	for _, p := range g.policiesFor(ability) {
		switch p(ctx, subject, ability, resource) {
		case Deny:
			g.deny(ctx, ability, "policy")
			return ErrAccessDenied
		case Allow:
			allowed = true
		}
	}
	if allowed {
		return nil
	}

	if g.authz != nil && g.authz.CanAny(roles, ability) == nil {
		return nil
	}

	g.deny(ctx, ability, "default")
	return ErrAccessDenied
}

// Allows is Check reduced to a boolean.
func (g *Gate) Allows(ctx context.Context, subject Subject, ability string, resource any) bool {
	return g.Check(ctx, subject, ability, resource) == nil
}

func (g *Gate) policiesFor(ability string) []Policy {
	return append(slices.Clip(g.policies[wildcard]), g.policies[ability]...)
}

func (g *Gate) deny(ctx context.Context, ability, reason string) {
	g.logger.DebugContext(ctx, "ability denied",
		slog.String("ability", ability),
		slog.String("reason", reason),
	)
}
