package api

import (
	"net/http"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/svc/registration"
	"github.com/dmitrymomot/tenancy/svc/shop"
)

func (a *api) provisionTenant(w http.ResponseWriter, r *http.Request) {
	var req registration.ProvisionRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	t, err := a.deps.Lifecycle.Provision(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (a *api) getTenant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	t, err := a.deps.Accounts.TenantByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *api) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req registration.ProfileUpdate
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	t, err := a.deps.Lifecycle.UpdateProfile(r.Context(), id, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *api) deleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.deps.Lifecycle.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listAllUsers lists users across tenants, still without hidden roles.
func (a *api) listAllUsers(w http.ResponseWriter, r *http.Request) {
	filter := shop.UserFilter{Panel: tenant.PanelAdmin, HiddenRoles: a.hiddenRoles()}
	items, total, err := a.deps.Shop.Users(r.Context(), requestContext(r), filter, pageOf(r))
	writeList(a, w, r, items, total, err)
}
