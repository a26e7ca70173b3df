package store

const (
	constraintSlug   = "tenants_slug_active_key"
	constraintEmail  = "users_email_key"
	constraintOwner  = "tenants_owner_user_id_fkey"
	constraintMember = "tenant_user_user_id_fkey"
)

const tenantColumns = `id, slug, name, type, primary_color, owner_user_id, deleted_at, created_at, updated_at`

const (
	qTenantBySlug = `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1 AND deleted_at IS NULL`
	qTenantByID   = `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 AND deleted_at IS NULL`

	qTenantsForUser = `SELECT t.id, t.slug, t.name, t.type, t.primary_color, t.owner_user_id, t.deleted_at, t.created_at, t.updated_at
FROM tenants t JOIN tenant_user tu ON tu.tenant_id = t.id
WHERE tu.user_id = $1 AND t.deleted_at IS NULL
ORDER BY t.name`

	qIsMember       = `SELECT EXISTS (SELECT 1 FROM tenant_user WHERE tenant_id = $1 AND user_id = $2)`
	qHasMemberships = `SELECT EXISTS (SELECT 1 FROM tenant_user WHERE user_id = $1)`
	qSlugTaken      = `SELECT EXISTS (SELECT 1 FROM tenants WHERE slug = $1 AND deleted_at IS NULL)`
	qEmailTaken     = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`

	qSetCurrentTenant = `UPDATE users SET current_tenant_id = $2, updated_at = now() WHERE id = $1`

	qUserByID = `SELECT u.id, u.name, u.email, u.active, u.current_tenant_id, u.branch_id,
       COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}') AS roles
FROM users u LEFT JOIN user_roles r ON r.user_id = u.id
WHERE u.id = $1
GROUP BY u.id`

	qCredentials = `SELECT id, password_hash, active FROM users WHERE lower(email) = lower($1)`

	qInsertUser = `INSERT INTO users (name, email, password_hash, phone) VALUES ($1, $2, $3, $4) RETURNING id`

	qInsertTenant = `INSERT INTO tenants (slug, name, type, primary_color, owner_user_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + tenantColumns

	qInsertMember = `INSERT INTO tenant_user (tenant_id, user_id) VALUES ($1, $2) ON CONFLICT (tenant_id, user_id) DO NOTHING`
	qInsertRole   = `INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id, role) DO NOTHING`

	qUpdateTenant = `UPDATE tenants
SET name = COALESCE($2, name), primary_color = COALESCE($3, primary_color), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + tenantColumns

	qSoftDeleteTenant = `UPDATE tenants SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + tenantColumns
)
