package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/store"
)

var tenantCols = []string{"id", "slug", "name", "type", "primary_color", "owner_user_id", "deleted_at", "created_at", "updated_at"}

func ptr[T any](v T) *T { return &v }

func q(fragment string) string { return regexp.QuoteMeta(fragment) }

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *store.Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock, store.New(mock)
}

func tenantRow(id int64, slug string, owner *int64) *pgxmock.Rows {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return pgxmock.NewRows(tenantCols).
		AddRow(id, slug, "Acme", "ecommerce", ptr("#3B82F6"), owner, nil, now, now)
}

func TestTenantBySlug(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectQuery(q("FROM tenants WHERE slug = $1 AND deleted_at IS NULL")).
			WithArgs("acme").
			WillReturnRows(tenantRow(7, "acme", nil))

		got, err := s.TenantBySlug(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "acme", got.Slug)
		assert.Equal(t, "#3B82F6", got.PrimaryColor)
		assert.Nil(t, got.OwnerUserID)
		assert.Nil(t, got.DeletedAt)
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectQuery(q("FROM tenants WHERE slug = $1")).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := s.TenantBySlug(context.Background(), "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("driver failure is wrapped", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		cause := errors.New("conn reset")
		mock.ExpectQuery(q("FROM tenants WHERE slug = $1")).
			WithArgs("acme").
			WillReturnError(cause)

		_, err := s.TenantBySlug(context.Background(), "acme")
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestTenantByID(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("FROM tenants WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(9)).
		WillReturnRows(tenantRow(9, "globex", ptr(int64(3))))

	got, err := s.TenantByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "globex", got.Slug)
	require.NotNil(t, got.OwnerUserID)
	assert.Equal(t, int64(3), *got.OwnerUserID)
}

func TestMembershipQueries(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("FROM tenant_user WHERE tenant_id = $1 AND user_id = $2")).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(q("FROM tenant_user WHERE user_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	member, err := s.IsMember(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, member)

	hasAny, err := s.HasMemberships(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, hasAny)
}

func TestSetCurrentTenant(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectExec(q("UPDATE users SET current_tenant_id = $2")).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(q("UPDATE users SET current_tenant_id = $2")).
		WithArgs(int64(99), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, s.SetCurrentTenant(context.Background(), 3, 7))
	assert.ErrorIs(t, s.SetCurrentTenant(context.Background(), 99, 7), store.ErrUserNotFound)
}

func TestUserByID(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("FROM users u LEFT JOIN user_roles r")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "active", "current_tenant_id", "branch_id", "roles"}).
			AddRow(int64(3), "Bob", "bob@example.com", true, ptr(int64(7)), nil, []string{"tenant"}))
	mock.ExpectQuery(q("FROM users u LEFT JOIN user_roles r")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	u, err := s.UserByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.True(t, u.CurrentTenantIs(7))
	assert.Nil(t, u.BranchID)
	assert.Equal(t, []string{"tenant"}, u.Roles)

	_, err = s.UserByID(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserCredentials(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("SELECT id, password_hash, active FROM users WHERE lower(email) = lower($1)")).
		WithArgs("Bob@Example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password_hash", "active"}).AddRow(int64(3), "$2a$10$hash", true))

	c, err := s.UserCredentials(context.Background(), "Bob@Example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.UserID)
	assert.True(t, c.Active)
}

func TestCreateTenant(t *testing.T) {
	t.Parallel()

	t.Run("with owner", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("INSERT INTO tenants")).
			WithArgs("acme", "Acme", "ecommerce", ptr("#3B82F6"), ptr(int64(3))).
			WillReturnRows(tenantRow(7, "acme", ptr(int64(3))))
		mock.ExpectExec(q("INSERT INTO tenant_user")).
			WithArgs(int64(7), int64(3)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		got, err := s.CreateTenant(context.Background(), store.NewTenant{
			Slug: "acme", Name: "Acme", Type: "ecommerce", PrimaryColor: "#3B82F6", OwnerUserID: ptr(int64(3)),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	})

	t.Run("invalid slug never reaches the database", func(t *testing.T) {
		t.Parallel()
		_, s := newMock(t)

		_, err := s.CreateTenant(context.Background(), store.NewTenant{Slug: "admin", Name: "Admin"})
		require.Error(t, err)
		assert.True(t, validator.ExtractValidationErrors(err).Has("slug"))
	})

	t.Run("taken slug", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("INSERT INTO tenants")).
			WithArgs("acme", "Acme", "ecommerce", (*string)(nil), (*int64)(nil)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tenants_slug_active_key"})
		mock.ExpectRollback()

		_, err := s.CreateTenant(context.Background(), store.NewTenant{Slug: "acme", Name: "Acme", Type: "ecommerce"})
		assert.ErrorIs(t, err, store.ErrSlugTaken)
	})

	t.Run("unknown owner", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("INSERT INTO tenants")).
			WithArgs("acme", "Acme", "ecommerce", (*string)(nil), ptr(int64(404))).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tenants_owner_user_id_fkey"})
		mock.ExpectRollback()

		_, err := s.CreateTenant(context.Background(), store.NewTenant{
			Slug: "acme", Name: "Acme", Type: "ecommerce", OwnerUserID: ptr(int64(404)),
		})
		assert.ErrorIs(t, err, store.ErrOwnerNotFound)
	})
}

func TestUpdateTenant(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("UPDATE tenants")).
		WithArgs(int64(7), ptr("Acme Inc"), (*string)(nil)).
		WillReturnRows(tenantRow(7, "acme", nil))
	mock.ExpectQuery(q("UPDATE tenants")).
		WithArgs(int64(8), (*string)(nil), ptr("#000000")).
		WillReturnError(pgx.ErrNoRows)

	got, err := s.UpdateTenant(context.Background(), 7, store.TenantUpdate{Name: ptr("Acme Inc")})
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Slug)

	_, err = s.UpdateTenant(context.Background(), 8, store.TenantUpdate{PrimaryColor: ptr("#000000")})
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)

	_, err = s.UpdateTenant(context.Background(), 7, store.TenantUpdate{})
	assert.ErrorIs(t, err, store.ErrNothingToSet)
}

func TestSoftDeleteTenant(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("UPDATE tenants SET deleted_at = now()")).
		WithArgs(int64(7)).
		WillReturnRows(tenantRow(7, "acme", nil))

	got, err := s.SoftDeleteTenant(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Slug)
}

func TestTenantsForUser(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	now := time.Now()
	mock.ExpectQuery(q("JOIN tenant_user tu ON tu.tenant_id = t.id")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(tenantCols).
			AddRow(int64(7), "acme", "Acme", "ecommerce", nil, nil, nil, now, now).
			AddRow(int64(9), "globex", "Globex", "saas", nil, nil, nil, now, now))

	got, err := s.TenantsForUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "globex", got[1].Slug)
	assert.Empty(t, got[0].PrimaryColor)
}

func registration() store.Registration {
	return store.Registration{
		UserName:     "Bob",
		Email:        "bob@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         "tenant",
		TenantName:   "Acme",
		Slug:         "acme",
		TenantType:   "ecommerce",
		PrimaryColor: "#3B82F6",
	}
}

func TestRegisterCommitsAllWrites(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("INSERT INTO users")).
		WithArgs("Bob", "bob@example.com", "$2a$10$hash", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(q("INSERT INTO tenants")).
		WithArgs("acme", "Acme", "ecommerce", ptr("#3B82F6"), ptr(int64(3))).
		WillReturnRows(tenantRow(7, "acme", ptr(int64(3))))
	mock.ExpectExec(q("INSERT INTO tenant_user")).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(q("INSERT INTO user_roles")).
		WithArgs(int64(3), "tenant").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(q("UPDATE users SET current_tenant_id = $2")).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tn, u, err := s.Register(context.Background(), registration())
	require.NoError(t, err)
	assert.Equal(t, int64(7), tn.ID)
	assert.Equal(t, int64(3), u.ID)
	assert.True(t, u.CurrentTenantIs(7))
	assert.Equal(t, []string{"tenant"}, u.Roles)
}

func TestRegisterRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	t.Run("membership insert fails", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		cause := errors.New("disk full")
		mock.ExpectBegin()
		mock.ExpectQuery(q("INSERT INTO users")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
		mock.ExpectQuery(q("INSERT INTO tenants")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(tenantRow(7, "acme", ptr(int64(3))))
		mock.ExpectExec(q("INSERT INTO tenant_user")).
			WithArgs(int64(7), int64(3)).
			WillReturnError(cause)
		mock.ExpectRollback()

		tn, u, err := s.Register(context.Background(), registration())
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, tn)
		assert.Nil(t, u)
	})

	t.Run("email taken", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("INSERT INTO users")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
		mock.ExpectRollback()

		_, _, err := s.Register(context.Background(), registration())
		assert.ErrorIs(t, err, store.ErrEmailTaken)
	})

	t.Run("commit fails", func(t *testing.T) {
		t.Parallel()
		mock, s := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(q("INSERT INTO users")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
		mock.ExpectQuery(q("INSERT INTO tenants")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(tenantRow(7, "acme", ptr(int64(3))))
		mock.ExpectExec(q("INSERT INTO tenant_user")).WithArgs(int64(7), int64(3)).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(q("INSERT INTO user_roles")).WithArgs(int64(3), "tenant").WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(q("UPDATE users SET current_tenant_id")).WithArgs(int64(3), int64(7)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
		mock.ExpectRollback()

		_, _, err := s.Register(context.Background(), registration())
		assert.ErrorContains(t, err, "commit")
	})
}

func TestExistsQueries(t *testing.T) {
	t.Parallel()

	mock, s := newMock(t)
	mock.ExpectQuery(q("FROM tenants WHERE slug = $1 AND deleted_at IS NULL)")).
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(q("FROM users WHERE lower(email) = lower($1))")).
		WithArgs("bob@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := s.SlugTaken(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.EmailTaken(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}
