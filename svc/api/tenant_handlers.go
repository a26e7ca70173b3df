package api

import (
	"net/http"

	"github.com/dmitrymomot/tenancy/pkg/sanitizer"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/registration"
)

type currentBody struct {
	State  string         `json:"state"`
	Tenant *tenant.Tenant `json:"tenant,omitempty"`
	User   *tenant.User   `json:"user"`
}

// current reports the resolved tenant context of the request.
func (a *api) current(w http.ResponseWriter, r *http.Request) {
	rc, _ := tenant.FromContext(r.Context())
	writeJSON(w, http.StatusOK, currentBody{State: rc.State.String(), Tenant: rc.Tenant, User: rc.User})
}

// myTenants lists the tenants the user belongs to, for the tenant menu.
func (a *api) myTenants(w http.ResponseWriter, r *http.Request) {
	user, _ := tenant.UserFromContext(r.Context())
	ts, err := a.deps.Accounts.TenantsForUser(r.Context(), user.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if ts == nil {
		ts = []tenant.Tenant{}
	}
	writeJSON(w, http.StatusOK, listBody[tenant.Tenant]{Items: ts, Total: int64(len(ts))})
}

type switchRequest struct {
	Slug string `json:"slug"`
}

type switchBody struct {
	Tenant      *tenant.Tenant `json:"tenant"`
	RedirectURL string         `json:"redirect_url"`
}

func (a *api) switchTenant(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	req.Slug = sanitizer.Trim(req.Slug)
	if err := validator.Apply(validator.Required(registration.FieldSlug, req.Slug)); err != nil {
		a.fail(w, r, err)
		return
	}

	user, _ := tenant.UserFromContext(r.Context())
	t, err := a.switcher.Switch(r.Context(), user, req.Slug)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	protocol, port := tenant.RequestOrigin(r)
	writeJSON(w, http.StatusOK, switchBody{
		Tenant:      t,
		RedirectURL: tenant.URL(t.Slug, a.base, protocol, port, "/tenant"),
	})
}

// updateSettings changes the profile of the resolved tenant.
func (a *api) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req registration.ProfileUpdate
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	t := tenant.MustTenantFromContext(r.Context())
	updated, err := a.deps.Lifecycle.UpdateProfile(r.Context(), t.ID, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
