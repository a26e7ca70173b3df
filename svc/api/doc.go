// Package api exposes tenant registration, authentication, tenant switching
// and the tenant-scoped shop over HTTP.
//
// Every request passes through tenant resolution: the host's subdomain, an
// auth-bypass path or the user's current tenant decides which tenant the
// request runs in. Tenant panel routes additionally require access to the
// resolved tenant and a gate ability; admin routes require the super admin role.
//
// Authentication uses HS256 access tokens carried either in the Authorization
// header or in a cookie set on the base domain, so one login covers every
// tenant subdomain.
//
//	router := api.NewRouter(cfg, api.Deps{
//		Resolver:  resolver,
//		Accounts:  st,
//		Lifecycle: registrar,
//		Shop:      shop.New(gormDB),
//		Gate:      gate,
//		Tokens:    tokens,
//	})
package api
