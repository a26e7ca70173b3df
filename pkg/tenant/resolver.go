package tenant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/tenancy/pkg/slug"
)

// Resolver picks the single active tenant for a request.
type Resolver struct {
	store    Store
	cfg      Config
	rules    slug.Rules
	logger   *slog.Logger
	observer Observer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSlugRules sets the rules a subdomain must satisfy before it is looked up.
func WithSlugRules(rules slug.Rules) ResolverOption {
	return func(r *Resolver) {
		r.rules = rules
	}
}

// WithObserver sets the resolution outcome observer.
func WithObserver(o Observer) ResolverOption {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewResolver creates a Resolver backed by store.
func NewResolver(store Store, cfg Config, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:    store,
		cfg:      cfg,
		rules:    slug.DefaultRules(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the resolver configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Resolve computes the request's tenant context. Precedence, first match wins:
//
//  1. auth-bypass path on the base domain: StateAuthBypass, no lookup;
//  2. subdomain: the live tenant with that exact slug, or StateNone;
//  3. authenticated user: the tenant behind the current tenant pointer, if the
//     user may still access it;
//  4. StateNone.
//
// On a subdomain hit the user's pointer is moved to that tenant, but only when
// the user is a member or a super admin. A missing tenant is never an error;
// store failures are returned wrapped in ErrStorage.
func (r *Resolver) Resolve(ctx context.Context, host HostResult, user *User, path string) (*RequestContext, error) {
	rc := &RequestContext{State: StateUnresolved, User: user}

	switch {
	case !host.HasSubdomain() && r.cfg.IsAuthBypassPath(path):
		rc.State = StateAuthBypass

	case host.HasSubdomain():
		if err := r.resolveSubdomain(ctx, rc, host.Identifier); err != nil {
			return nil, err
		}

	case user != nil && user.CurrentTenantID != nil:
		if err := r.resolveUserDefault(ctx, rc); err != nil {
			return nil, err
		}

	default:
		rc.State = StateNone
	}

	r.observer.Resolved(rc.State)
	r.logger.DebugContext(ctx, "tenant resolved",
		slog.String("state", rc.State.String()),
		slog.String("host_identifier", host.Identifier),
		slog.Bool("pointer_updated", rc.PointerUpdated),
	)

	return rc, nil
}

func (r *Resolver) resolveSubdomain(ctx context.Context, rc *RequestContext, identifier string) error {
	// Identifiers that can never be a slug ("foo.bar", "WWW", reserved words) skip the lookup.
	if !r.rules.Valid(identifier) {
		rc.State = StateNone
		return nil
	}

	t, err := r.store.TenantBySlug(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			rc.State = StateNone
			return nil
		}
		return r.storageError(ctx, "lookup tenant by slug", err)
	}

	rc.Tenant = t
	rc.State = StateSubdomain

	user := rc.User
	if user == nil || user.CurrentTenantIs(t.ID) {
		return nil
	}

	allowed, err := r.CanAccessTenant(ctx, user, t)
	if err != nil {
		return err
	}
	if !allowed {
		return nil
	}

	if err := r.store.SetCurrentTenant(ctx, user.ID, t.ID); err != nil {
		return r.storageError(ctx, "update current tenant", err)
	}

	updated := *user
	id := t.ID
	updated.CurrentTenantID = &id
	rc.User = &updated
	rc.PointerUpdated = true
	r.observer.PointerUpdated()

	return nil
}

func (r *Resolver) resolveUserDefault(ctx context.Context, rc *RequestContext) error {
	rc.State = StateNone

	t, err := r.store.TenantByID(ctx, *rc.User.CurrentTenantID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil
		}
		return r.storageError(ctx, "lookup current tenant", err)
	}

	// The pointer is not constrained to memberships, so it is re-checked here.
	allowed, err := r.CanAccessTenant(ctx, rc.User, t)
	if err != nil {
		return err
	}
	if !allowed {
		r.logger.DebugContext(ctx, "current tenant pointer ignored, no membership",
			slog.Int64("user_id", rc.User.ID),
			slog.Int64("tenant_id", t.ID),
		)
		return nil
	}

	rc.Tenant = t
	rc.State = StateUserDefault
	return nil
}

// IsSuperAdmin reports whether user holds the configured super admin role.
func (r *Resolver) IsSuperAdmin(user *User) bool {
	return user.HasRole(r.cfg.superAdminRole())
}

// CanAccessTenant reports whether user may operate in t: super admins always,
// everyone else only through a membership row.
func (r *Resolver) CanAccessTenant(ctx context.Context, user *User, t *Tenant) (bool, error) {
	if user == nil || t == nil {
		return false, nil
	}
	if r.IsSuperAdmin(user) {
		return true, nil
	}

	ok, err := r.store.IsMember(ctx, t.ID, user.ID)
	if err != nil {
		return false, r.storageError(ctx, "check membership", err)
	}
	return ok, nil
}

func (r *Resolver) storageError(ctx context.Context, op string, err error) error {
	r.logger.ErrorContext(ctx, "tenant storage failure",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return errors.Join(ErrStorage, fmt.Errorf("%s: %w", op, err))
}
