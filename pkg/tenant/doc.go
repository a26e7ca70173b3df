// Package tenant resolves which tenant an HTTP request operates against.
//
// Resolution combines three inputs: the request host (a tenant slug subdomain
// under the configured base domain), the authenticated user (whose stored
// current tenant pointer is the fallback), and the request path (auth-bypass
// paths such as /tenant/login are reachable with no tenant at all).
//
// # Precedence
//
//  1. Auth-bypass path on the base domain: StateAuthBypass, no lookup.
//  2. Subdomain: the live tenant whose slug equals the subdomain exactly, or
//     no tenant. The subdomain wins over the user's pointer.
//  3. Authenticated user: the tenant behind the current tenant pointer, if the
//     user is still a member (or a super admin).
//  4. No tenant.
//
// When a subdomain resolves to a tenant other than the user's current one, the
// pointer is moved there, but only for members and super admins.
//
// # Usage
//
//	resolver := tenant.NewResolver(store, cfg, tenant.WithLogger(log))
//	r.Use(tenant.Middleware(resolver, authenticate))
//
//	r.Group(func(r chi.Router) {
//		r.Use(tenant.RequireTenant(nil))
//		r.Get("/tenant/products", func(w http.ResponseWriter, r *http.Request) {
//			rc, _ := tenant.FromContext(r.Context())
//			_ = rc.Tenant.ID
//		})
//	})
//
// Absence of a tenant is never an error. Storage failures are wrapped in
// ErrStorage and abort the request.
//
// # Caching
//
// CachedStore puts a Cache (MemoryCache or RedisCache) in front of the tenant
// lookups. Only found tenants are cached; call Invalidate after updates.
package tenant
