// Package scope restricts gorm queries to the tenant resolved for the request.
//
// Tenant handles entities that carry a tenant_id column directly (products,
// orders, invoices and the like). Tables without that column are left
// unfiltered, so the scope can be applied generically:
//
//	db.Scopes(scope.Tenant(rc, checker)).Find(&products)
//
// Users handles the user collection, which belongs to tenants through the
// tenant_user membership table and is filtered differently per panel.
package scope
