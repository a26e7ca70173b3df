package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenancy/pkg/catalog"
	"github.com/dmitrymomot/tenancy/pkg/clientip"
	"github.com/dmitrymomot/tenancy/pkg/cookie"
	"github.com/dmitrymomot/tenancy/pkg/httpserver"
	"github.com/dmitrymomot/tenancy/pkg/jwt"
	"github.com/dmitrymomot/tenancy/pkg/ratelimiter"
	"github.com/dmitrymomot/tenancy/pkg/rbac"
	"github.com/dmitrymomot/tenancy/pkg/requestid"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/svc/registration"
	"github.com/dmitrymomot/tenancy/svc/shop"
	"github.com/dmitrymomot/tenancy/svc/store"
)

// Accounts loads users and tenants for authentication and navigation;
// *store.Store implements it.
type Accounts interface {
	UserByID(ctx context.Context, id int64) (*tenant.User, error)
	UserCredentials(ctx context.Context, email string) (*store.Credentials, error)
	TenantsForUser(ctx context.Context, userID int64) ([]tenant.Tenant, error)
	TenantByID(ctx context.Context, id int64) (*tenant.Tenant, error)
}

// Lifecycle creates and changes tenants; *registration.Service implements it.
type Lifecycle interface {
	Register(ctx context.Context, req registration.Request, origin registration.Origin) (*registration.Result, error)
	SuggestSlug(ctx context.Context, organizationName string) (string, error)
	Provision(ctx context.Context, req registration.ProvisionRequest) (*tenant.Tenant, error)
	UpdateProfile(ctx context.Context, id int64, u registration.ProfileUpdate) (*tenant.Tenant, error)
	Delete(ctx context.Context, id int64) error
}

// Deps are the collaborators of the router. Limiters, Health and Metrics are optional.
type Deps struct {
	Resolver  *tenant.Resolver
	Accounts  Accounts
	Lifecycle Lifecycle
	Shop      *shop.Repository
	Gate      *rbac.Gate
	Catalog   *catalog.Catalog
	Tokens    *jwt.Service

	LoginLimiter    *ratelimiter.Limiter
	RegisterLimiter *ratelimiter.Limiter

	Health  map[string]httpserver.Check
	Metrics http.Handler
	Logger  *slog.Logger
}

type api struct {
	cfg      Config
	deps     Deps
	log      *slog.Logger
	base     string
	switcher *tenant.Switcher
	extract  jwt.TokenExtractorFunc
	cookies  *cookie.Manager
}

// NewRouter builds the HTTP API:
//
//	GET  /health, /metrics
//	POST /tenant/login, /tenant/register, /tenant/logout; GET /tenant/register/slug
//	GET  /tenant, /tenant/tenants; POST /tenant/switch
//	tenant panel: /tenant/settings, /tenant/products, /tenant/orders, ...
//	admin panel:  /admin/tenants, /admin/users, /admin/products
func NewRouter(cfg Config, deps Deps) chi.Router {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	a := &api{
		cfg:      cfg,
		deps:     deps,
		log:      log,
		base:     deps.Resolver.Config().BaseDomain,
		switcher: tenant.NewSwitcher(deps.Resolver),
		extract:  jwt.FirstOf(jwt.BearerTokenExtractor, jwt.CookieTokenExtractor(cfg.CookieName)),
	}
	a.cookies = cookie.New(cookie.WithDomain(a.base), cookie.WithSecure(cfg.SecureCookies()))

	ips := clientip.New(cfg.TrustedIPHeaders...)
	if len(cfg.TrustedIPHeaders) == 0 {
		ips = clientip.NewDirect()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(ips.Middleware)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthHandler(log, cfg.HealthTimeout, deps.Health))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(deps.Resolver, a.authenticate,
			tenant.WithErrorHandler(a.fail),
			tenant.WithSkipPaths("/health", "/metrics", "/tenant/logout"),
			tenant.WithMiddlewareLogger(log),
		))
		r.Use(tenant.RedirectToTenant(a.base, "/tenant"))

		r.Route("/tenant", a.tenantRoutes)
		r.Route("/admin", a.adminRoutes)
	})

	return r
}

func (a *api) tenantRoutes(r chi.Router) {
	r.With(a.limit(a.deps.LoginLimiter)).Post("/login", a.login)
	r.With(a.limit(a.deps.RegisterLimiter)).Post("/register", a.register)
	r.Get("/register/slug", a.suggestSlug)
	r.Post("/logout", a.logout)

	r.Group(func(r chi.Router) {
		r.Use(a.requirePanel(tenant.PanelTenant))

		r.Get("/", a.current)
		r.Get("/tenants", a.myTenants)
		r.With(a.can("tenants.switch")).Post("/switch", a.switchTenant)

		r.Group(func(r chi.Router) {
			r.Use(tenant.RequireAccess(a.deps.Resolver, a.fail))

			r.With(a.can("tenants.edit")).Patch("/settings", a.updateSettings)

			r.With(a.can("products.view")).Get("/products", a.listProducts)
			r.With(a.can("products.create")).Post("/products", a.createProduct)
			r.With(a.can("products.view")).Get("/products/{id}", a.getProduct)
			r.With(a.can("products.edit")).Put("/products/{id}/stock", a.setStock)
			r.With(a.can("products.delete")).Delete("/products/{id}", a.deleteProduct)

			r.With(a.can("products.view")).Get("/vendors", a.listVendors)
			r.With(a.can("orders.view")).Get("/orders", a.listOrders)
			r.With(a.can("orders.view")).Get("/orders/{id}", a.getOrder)
			r.With(a.can("orders.view")).Get("/invoices", a.listInvoices)

			r.Get("/countries", a.listCountries)
			r.With(a.can("products.view")).Get("/cart", a.cart)
			r.With(a.can("orders.create")).Post("/cart", a.addToCart)

			r.With(a.can("users.view")).Get("/users", a.listTenantUsers)
		})
	})
}

func (a *api) adminRoutes(r chi.Router) {
	r.Use(a.requirePanel(tenant.PanelAdmin))

	r.Post("/tenants", a.provisionTenant)
	r.Get("/tenants/{id}", a.getTenant)
	r.Patch("/tenants/{id}", a.updateTenant)
	r.Delete("/tenants/{id}", a.deleteTenant)

	r.Get("/users", a.listAllUsers)
	r.Get("/products", a.listProducts)
}

// requirePanel enforces panel access for the authenticated user.
func (a *api) requirePanel(panel tenant.Panel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := tenant.UserFromContext(r.Context())
			if !ok {
				a.fail(w, r, tenant.ErrUnauthenticated)
				return
			}
			allowed, err := a.deps.Resolver.CanAccessPanel(r.Context(), user, panel)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			if !allowed {
				a.fail(w, r, tenant.ErrAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// can guards a route with a gate ability.
func (a *api) can(ability string) func(http.Handler) http.Handler {
	return rbac.Require(a.deps.Gate, ability, subject, a.fail)
}

func subject(r *http.Request) rbac.Subject {
	u, _ := tenant.UserFromContext(r.Context())
	return u
}

// limit throttles by client address; a nil limiter disables it.
func (a *api) limit(l *ratelimiter.Limiter) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(l, clientKey, a.fail)
}

func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}

func (a *api) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		a.log.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("host", r.Host),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
