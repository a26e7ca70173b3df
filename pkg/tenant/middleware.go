package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the request's tenant once and stores the RequestContext
// in the request context for every downstream handler.
func Middleware(resolver *Resolver, authenticate AuthenticateFunc, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	baseDomain := strings.ToLower(resolver.Config().BaseDomain)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			host := ParseHost(NormalizeHost(r.Host), baseDomain)

			var user *User
			if authenticate != nil {
				u, err := authenticate(r)
				switch {
				case err == nil:
					user = u
				case errors.Is(err, ErrUnauthenticated) && !host.HasSubdomain() && resolver.Config().IsAuthBypassPath(r.URL.Path):
					// Auth-bypass paths stay reachable with a rejected credential.
					if cfg.logger != nil {
						cfg.logger.DebugContext(r.Context(), "ignoring rejected credential on auth-bypass path",
							slog.String("path", r.URL.Path),
							slog.String("error", err.Error()),
						)
					}
				default:
					cfg.errorHandler(w, r, err)
					return
				}
			}

			rc, err := resolver.Resolve(r.Context(), host, user, r.URL.Path)
			if err != nil {
				if cfg.logger != nil {
					cfg.logger.ErrorContext(r.Context(), "tenant resolution failed",
						slog.String("host", r.Host),
						slog.String("error", err.Error()),
					)
				}
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
		})
	}
}

// RequireTenant rejects requests that resolved no tenant.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := TenantFromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAccess rejects requests whose user may not access the resolved tenant.
// Anonymous requests get ErrUnauthenticated.
func RequireAccess(resolver *Resolver, errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, _ := FromContext(r.Context())
			if rc == nil || rc.Tenant == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			if rc.User == nil {
				errorHandler(w, r, ErrUnauthenticated)
				return
			}

			ok, err := resolver.CanAccessTenant(r.Context(), rc.User, rc.Tenant)
			if err != nil {
				errorHandler(w, r, err)
				return
			}
			if !ok {
				errorHandler(w, r, ErrAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectToTenant sends an authenticated user who opens exactly path on the
// base domain to the same path on their current tenant's subdomain.
func RedirectToTenant(baseDomain, path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, ok := FromContext(r.Context())
			if !ok || rc.State != StateUserDefault || r.URL.Path != path {
				next.ServeHTTP(w, r)
				return
			}

			protocol, port := RequestOrigin(r)
			http.Redirect(w, r, URL(rc.Tenant.Slug, baseDomain, protocol, port, path), http.StatusFound)
		})
	}
}
