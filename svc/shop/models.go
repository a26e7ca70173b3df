package shop

import (
	"time"

	"github.com/dmitrymomot/tenancy/pkg/scope"
)

// Country is shared reference data; it has no tenant column and is never filtered.
type Country struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func (Country) TableName() string { return "countries" }

type Vendor struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CountryID *int64    `json:"country_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vendor) TableName() string { return "vendors" }

type Product struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TenantID   int64     `json:"tenant_id"`
	VendorID   *int64    `json:"vendor_id,omitempty"`
	SKU        string    `gorm:"column:sku" json:"sku"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Stock      int       `json:"stock"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TenantID   int64     `json:"tenant_id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type Invoice struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	TenantID    int64      `json:"tenant_id"`
	OrderID     int64      `json:"order_id"`
	Number      string     `json:"number"`
	AmountCents int64      `json:"amount_cents"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// CartItem is one line of a user's shopping cart within a tenant.
type CartItem struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TenantID  int64     `json:"tenant_id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string { return "shopping_carts" }

// Columns describes the shop schema created by the bundled migrations.
// Use scope.NewMigratorChecker instead when tables are managed elsewhere.
var Columns = scope.StaticColumns{
	"countries":      {"id", "code", "name"},
	"vendors":        {"id", "tenant_id", "name", "email", "country_id", "created_at", "updated_at"},
	"products":       {"id", "tenant_id", "vendor_id", "sku", "name", "price_cents", "stock", "active", "created_at", "updated_at"},
	"orders":         {"id", "tenant_id", "customer_id", "number", "status", "total_cents", "created_at", "updated_at"},
	"invoices":       {"id", "tenant_id", "order_id", "number", "amount_cents", "paid_at", "created_at", "updated_at"},
	"shopping_carts": {"id", "tenant_id", "user_id", "product_id", "quantity", "created_at", "updated_at"},
}
