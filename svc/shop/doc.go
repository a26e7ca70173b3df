// Package shop holds the tenant-owned entities of the shop (vendors,
// products, orders, invoices and shopping carts) and a gorm repository that
// scopes every query to the tenant resolved for the request.
//
// Reads made without a resolved tenant, as in the admin panel, are not
// filtered. Writes require a tenant and stamp its id on the new row:
//
//	repo := shop.New(gormDB)
//	rc, _ := tenant.FromContext(ctx)
//	products, total, err := repo.Products(ctx, rc, shop.Page{Limit: 20})
package shop
