package scope

import (
	"gorm.io/gorm"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// Membership tables the user scope joins against.
const (
	UsersTable      = "users"
	MembershipTable = "tenant_user"
	UserRolesTable  = "user_roles"
)

// Users filters the user collection for a panel.
//
// Users holding any of hiddenRoles are always excluded. On the admin panel no
// tenant filter applies. On the tenant panel only members of the resolved
// tenant remain (none when no tenant was resolved), further narrowed to
// branchID when set.
func Users(panel tenant.Panel, rc *tenant.RequestContext, hiddenRoles []string, branchID *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(hiddenRoles) > 0 {
			db = db.Where("NOT EXISTS (SELECT 1 FROM "+UserRolesTable+" ur WHERE ur.user_id = "+UsersTable+".id AND ur.role IN ?)", hiddenRoles)
		}

		if panel != tenant.PanelTenant {
			return db
		}

		id, ok := rc.TenantID()
		if !ok {
			return db.Where("1 = 0")
		}

		db = db.Where("EXISTS (SELECT 1 FROM "+MembershipTable+" tu WHERE tu.user_id = "+UsersTable+".id AND tu.tenant_id = ?)", id)
		if branchID != nil {
			db = db.Where(UsersTable+".branch_id = ?", *branchID)
		}
		return db
	}
}
