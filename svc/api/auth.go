package api

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenancy/pkg/clientip"
	"github.com/dmitrymomot/tenancy/pkg/jwt"
	"github.com/dmitrymomot/tenancy/pkg/logger"
	"github.com/dmitrymomot/tenancy/pkg/ratelimiter"
	"github.com/dmitrymomot/tenancy/pkg/sanitizer"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/registration"
	"github.com/dmitrymomot/tenancy/svc/store"
)

// authenticate resolves the bearer token or auth cookie to an active user.
// Requests without a token are anonymous.
func (a *api) authenticate(r *http.Request) (*tenant.User, error) {
	raw, err := a.extract(r)
	if errors.Is(err, jwt.ErrMissingToken) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(tenant.ErrUnauthenticated, err)
	}

	id, err := a.deps.Tokens.UserID(raw)
	if err != nil {
		return nil, errors.Join(tenant.ErrUnauthenticated, err)
	}

	user, err := a.deps.Accounts.UserByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil, tenant.ErrUnauthenticated
	case err != nil:
		return nil, errors.Join(tenant.ErrStorage, err)
	case !user.Active:
		return nil, errors.Join(tenant.ErrUnauthenticated, ErrInactiveUser)
	}
	return user, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token       jwt.Token      `json:"token"`
	User        *tenant.User   `json:"user"`
	Tenant      *tenant.Tenant `json:"tenant,omitempty"`
	RedirectURL string         `json:"redirect_url"`
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	email := sanitizer.Email(req.Email)
	if err := validator.Apply(
		validator.Required(registration.FieldEmail, email),
		validator.Required(registration.FieldPassword, req.Password),
	); err != nil {
		a.fail(w, r, err)
		return
	}

	creds, err := a.deps.Accounts.UserCredentials(r.Context(), email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		a.fail(w, r, ErrInvalidCredentials)
		return
	case err != nil:
		a.fail(w, r, errors.Join(tenant.ErrStorage, err))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)) != nil {
		a.fail(w, r, ErrInvalidCredentials)
		return
	}
	if !creds.Active {
		a.fail(w, r, ErrInactiveUser)
		return
	}

	user, err := a.deps.Accounts.UserByID(r.Context(), creds.UserID)
	if err != nil {
		a.fail(w, r, errors.Join(tenant.ErrStorage, err))
		return
	}
	a.resetLimit(r, a.deps.LoginLimiter)

	t, redirect := a.home(r, user)
	a.issue(w, r, http.StatusOK, user, t, redirect)
}

// home picks where a user lands after login: the current tenant's panel
// when the user may still access it, the admin panel for super admins, or the site root.
func (a *api) home(r *http.Request, user *tenant.User) (*tenant.Tenant, string) {
	if t := a.currentTenant(r, user); t != nil {
		protocol, port := tenant.RequestOrigin(r)
		return t, tenant.URL(t.Slug, a.base, protocol, port, "/tenant")
	}
	if a.deps.Resolver.IsSuperAdmin(user) {
		return nil, "/admin"
	}
	return nil, "/"
}

// currentTenant returns the live tenant behind the user's current tenant pointer,
// or nil when there is none or the user has lost access to it.
func (a *api) currentTenant(r *http.Request, user *tenant.User) *tenant.Tenant {
	if user.CurrentTenantID == nil {
		return nil
	}
	ctx := r.Context()

	t, err := a.deps.Accounts.TenantByID(ctx, *user.CurrentTenantID)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		return nil
	case err != nil:
		a.log.WarnContext(ctx, "current tenant lookup failed", logger.UserID(user.ID), logger.Error(err))
		return nil
	case t.DeletedAt != nil:
		return nil
	}

	ok, err := a.deps.Resolver.CanAccessTenant(ctx, user, t)
	if err != nil {
		a.log.WarnContext(ctx, "current tenant access check failed", logger.UserID(user.ID), logger.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return t
}

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	var req registration.Request
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	protocol, port := tenant.RequestOrigin(r)
	res, err := a.deps.Lifecycle.Register(r.Context(), req, registration.Origin{Protocol: protocol, Port: port})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.issue(w, r, http.StatusCreated, res.User, res.Tenant, res.RedirectURL)
}

func (a *api) suggestSlug(w http.ResponseWriter, r *http.Request) {
	name := sanitizer.Name(r.URL.Query().Get("name"))
	if err := validator.Apply(validator.Required(registration.FieldOrganizationName, name)); err != nil {
		a.fail(w, r, err)
		return
	}

	s, err := a.deps.Lifecycle.SuggestSlug(r.Context(), name)
	if err != nil {
		a.fail(w, r, validator.NewError(registration.FieldSubdomain, "no subdomain available for this name", "validation.slug_unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"subdomain": s})
}

// issue signs a token for user and sets it as a cookie shared by all tenant subdomains.
func (a *api) issue(w http.ResponseWriter, r *http.Request, status int, user *tenant.User, t *tenant.Tenant, redirect string) {
	token, err := a.deps.Tokens.Issue(user.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	if err := a.cookies.Set(w, a.cfg.CookieName, token.Value, token.ExpiresAt); err != nil {
		a.fail(w, r, err)
		return
	}

	writeJSON(w, status, authResponse{Token: token, User: user, Tenant: t, RedirectURL: redirect})
}

// logout clears the auth cookie on every subdomain. Bearer tokens stay valid
// until they expire.
func (a *api) logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Delete(w, a.cfg.CookieName)
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) resetLimit(r *http.Request, l *ratelimiter.Limiter) {
	if l == nil {
		return
	}
	if err := l.Reset(context.WithoutCancel(r.Context()), clientip.FromContext(r.Context())); err != nil {
		a.log.WarnContext(r.Context(), "rate limit reset failed", logger.Error(err))
	}
}
