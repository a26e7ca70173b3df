package scope

import (
	"slices"

	"gorm.io/gorm"

	"github.com/dmitrymomot/tenancy/pkg/cache"
)

// ColumnChecker reports whether a table has a column.
type ColumnChecker interface {
	HasColumn(db *gorm.DB, table, column string) bool
}

// MigratorChecker asks the database through the gorm migrator and memoizes answers.
type MigratorChecker struct {
	memo *cache.LRUCache[string, bool]
}

// NewMigratorChecker creates a checker remembering up to size table/column answers.
func NewMigratorChecker(size int) *MigratorChecker {
	if size <= 0 {
		size = 256
	}
	return &MigratorChecker{memo: cache.NewLRUCache[string, bool](size)}
}

func (c *MigratorChecker) HasColumn(db *gorm.DB, table, column string) bool {
	key := table + "." + column
	if ok, found := c.memo.Get(key); found {
		return ok
	}

	m := db.Session(&gorm.Session{NewDB: true}).Migrator()
	if m == nil {
		return false
	}
	ok := m.HasColumn(table, column)
	c.memo.Put(key, ok)
	return ok
}

// Forget drops memoized answers for table, e.g. after a migration.
func (c *MigratorChecker) Forget(table, column string) {
	c.memo.Remove(table + "." + column)
}

// StaticColumns is a ColumnChecker over a known schema: table name to column names.
type StaticColumns map[string][]string

func (s StaticColumns) HasColumn(_ *gorm.DB, table, column string) bool {
	return slices.Contains(s[table], column)
}
