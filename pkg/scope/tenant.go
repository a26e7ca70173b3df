package scope

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// TenantColumn is the direct ownership column.
const TenantColumn = "tenant_id"

// Tenant filters by the resolved tenant's id when one was resolved and the
// queried table has a tenant_id column. Otherwise the query is left untouched.
func Tenant(rc *tenant.RequestContext, columns ColumnChecker) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		id, ok := rc.TenantID()
		if !ok {
			return db
		}
		return OwnedBy(id, columns)(db)
	}
}

// OwnedBy filters by an explicit tenant id, with the same column guard as Tenant.
func OwnedBy(tenantID int64, columns ColumnChecker) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		table := tableOf(db)
		if table == "" || !columns.HasColumn(db, table, TenantColumn) {
			return db
		}
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: TenantColumn},
			Value:  tenantID,
		})
	}
}

func tableOf(db *gorm.DB) string {
	stmt := db.Statement
	if stmt.Table != "" {
		return stmt.Table
	}

	model := stmt.Model
	if model == nil {
		model = stmt.Dest
	}
	if model == nil {
		return ""
	}
	if err := stmt.Parse(model); err != nil || stmt.Schema == nil {
		return ""
	}
	return stmt.Schema.Table
}
