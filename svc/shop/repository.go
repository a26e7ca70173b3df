package shop

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dmitrymomot/tenancy/pkg/scope"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// Page limits list queries.
type Page struct {
	Limit  int
	Offset int
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Repository reads and writes tenant-owned shop entities.
type Repository struct {
	db      *gorm.DB
	columns scope.ColumnChecker
}

type Option func(*Repository)

// WithColumnChecker replaces the static schema used by the tenant guard.
func WithColumnChecker(c scope.ColumnChecker) Option {
	return func(r *Repository) {
		if c != nil {
			r.columns = c
		}
	}
}

func New(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, columns: Columns}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// scoped returns a session bound to ctx and filtered to the resolved tenant.
func (r *Repository) scoped(ctx context.Context, rc *tenant.RequestContext) *gorm.DB {
	return r.db.WithContext(ctx).Scopes(scope.Tenant(rc, r.columns))
}

func list[T any](ctx context.Context, r *Repository, rc *tenant.RequestContext, page Page, order string) ([]T, int64, error) {
	page = page.normalize()

	var total int64
	if err := r.scoped(ctx, rc).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	var items []T
	err := r.scoped(ctx, rc).
		Order(order).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	return items, total, nil
}

func first[T any](ctx context.Context, r *Repository, rc *tenant.RequestContext, id int64) (*T, error) {
	var item T
	if err := r.scoped(ctx, rc).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func requireTenant(rc *tenant.RequestContext) (int64, error) {
	id, ok := rc.TenantID()
	if !ok {
		return 0, ErrNoTenant
	}
	return id, nil
}

func (r *Repository) Products(ctx context.Context, rc *tenant.RequestContext, page Page) ([]Product, int64, error) {
	return list[Product](ctx, r, rc, page, "name")
}

func (r *Repository) Product(ctx context.Context, rc *tenant.RequestContext, id int64) (*Product, error) {
	return first[Product](ctx, r, rc, id)
}

// CreateProduct inserts p into the resolved tenant, overwriting p.TenantID.
// A referenced vendor must belong to the same tenant.
func (r *Repository) CreateProduct(ctx context.Context, rc *tenant.RequestContext, p *Product) error {
	tenantID, err := requireTenant(rc)
	if err != nil {
		return err
	}
	if p.SKU == "" || p.Name == "" || p.PriceCents < 0 || p.Stock < 0 {
		return ErrInvalidInput
	}
	if p.VendorID != nil {
		if _, err := first[Vendor](ctx, r, rc, *p.VendorID); err != nil {
			return err
		}
	}
	p.TenantID = tenantID
	return r.db.WithContext(ctx).Create(p).Error
}

// SetStock updates the stock of a product visible to the tenant.
func (r *Repository) SetStock(ctx context.Context, rc *tenant.RequestContext, id int64, stock int) error {
	if stock < 0 {
		return ErrInvalidInput
	}
	res := r.scoped(ctx, rc).Model(&Product{}).Where("id = ?", id).Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, rc *tenant.RequestContext, id int64) error {
	res := r.scoped(ctx, rc).Where("id = ?", id).Delete(&Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Vendors(ctx context.Context, rc *tenant.RequestContext, page Page) ([]Vendor, int64, error) {
	return list[Vendor](ctx, r, rc, page, "name")
}

func (r *Repository) Orders(ctx context.Context, rc *tenant.RequestContext, page Page) ([]Order, int64, error) {
	return list[Order](ctx, r, rc, page, "created_at DESC")
}

func (r *Repository) Order(ctx context.Context, rc *tenant.RequestContext, id int64) (*Order, error) {
	return first[Order](ctx, r, rc, id)
}

func (r *Repository) Invoices(ctx context.Context, rc *tenant.RequestContext, page Page) ([]Invoice, int64, error) {
	return list[Invoice](ctx, r, rc, page, "created_at DESC")
}

// Countries lists reference data; the tenant scope leaves the table unfiltered.
func (r *Repository) Countries(ctx context.Context, rc *tenant.RequestContext) ([]Country, error) {
	var countries []Country
	if err := r.scoped(ctx, rc).Order("name").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// Cart returns the user's cart lines within the resolved tenant.
func (r *Repository) Cart(ctx context.Context, rc *tenant.RequestContext, userID int64) ([]CartItem, error) {
	if _, err := requireTenant(rc); err != nil {
		return nil, err
	}
	var items []CartItem
	if err := r.scoped(ctx, rc).Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds quantity of a tenant product to the user's cart.
// The product must belong to the resolved tenant.
func (r *Repository) AddToCart(ctx context.Context, rc *tenant.RequestContext, userID, productID int64, quantity int) (*CartItem, error) {
	tenantID, err := requireTenant(rc)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidInput
	}
	if _, err := r.Product(ctx, rc, productID); err != nil {
		return nil, err
	}

	item := &CartItem{TenantID: tenantID, UserID: userID, ProductID: productID, Quantity: quantity}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}
