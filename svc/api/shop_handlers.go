package api

import (
	"net/http"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/svc/shop"
)

func requestContext(r *http.Request) *tenant.RequestContext {
	rc, _ := tenant.FromContext(r.Context())
	return rc
}

func writeList[T any](a *api, w http.ResponseWriter, r *http.Request, items []T, total int64, err error) {
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listBody[T]{Items: items, Total: total})
}

func (a *api) listProducts(w http.ResponseWriter, r *http.Request) {
	items, total, err := a.deps.Shop.Products(r.Context(), requestContext(r), pageOf(r))
	writeList(a, w, r, items, total, err)
}

func (a *api) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := a.deps.Shop.Product(r.Context(), requestContext(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type productRequest struct {
	VendorID   *int64 `json:"vendor_id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
	Active     bool   `json:"active"`
}

func (a *api) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	p := &shop.Product{
		VendorID:   req.VendorID,
		SKU:        req.SKU,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
		Active:     req.Active,
	}
	if err := a.deps.Shop.CreateProduct(r.Context(), requestContext(r), p); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type stockRequest struct {
	Stock int `json:"stock"`
}

func (a *api) setStock(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req stockRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.deps.Shop.SetStock(r.Context(), requestContext(r), id, req.Stock); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.deps.Shop.DeleteProduct(r.Context(), requestContext(r), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) listVendors(w http.ResponseWriter, r *http.Request) {
	items, total, err := a.deps.Shop.Vendors(r.Context(), requestContext(r), pageOf(r))
	writeList(a, w, r, items, total, err)
}

func (a *api) listOrders(w http.ResponseWriter, r *http.Request) {
	items, total, err := a.deps.Shop.Orders(r.Context(), requestContext(r), pageOf(r))
	writeList(a, w, r, items, total, err)
}

func (a *api) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	o, err := a.deps.Shop.Order(r.Context(), requestContext(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *api) listInvoices(w http.ResponseWriter, r *http.Request) {
	items, total, err := a.deps.Shop.Invoices(r.Context(), requestContext(r), pageOf(r))
	writeList(a, w, r, items, total, err)
}

func (a *api) listCountries(w http.ResponseWriter, r *http.Request) {
	items, err := a.deps.Shop.Countries(r.Context(), requestContext(r))
	writeList(a, w, r, items, int64(len(items)), err)
}

func (a *api) cart(w http.ResponseWriter, r *http.Request) {
	user, _ := tenant.UserFromContext(r.Context())
	items, err := a.deps.Shop.Cart(r.Context(), requestContext(r), user.ID)
	writeList(a, w, r, items, int64(len(items)), err)
}

type cartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (a *api) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	user, _ := tenant.UserFromContext(r.Context())
	item, err := a.deps.Shop.AddToCart(r.Context(), requestContext(r), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// listTenantUsers lists members of the resolved tenant. Users bound to a
// branch only see their branch.
func (a *api) listTenantUsers(w http.ResponseWriter, r *http.Request) {
	user, _ := tenant.UserFromContext(r.Context())
	filter := shop.UserFilter{
		Panel:       tenant.PanelTenant,
		HiddenRoles: a.hiddenRoles(),
		BranchID:    user.BranchID,
	}
	items, total, err := a.deps.Shop.Users(r.Context(), requestContext(r), filter, pageOf(r))
	writeList(a, w, r, items, total, err)
}

func (a *api) hiddenRoles() []string {
	if a.deps.Catalog == nil {
		return nil
	}
	return a.deps.Catalog.HiddenRoles
}
