package registration_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenancy/pkg/catalog"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/registration"
	"github.com/dmitrymomot/tenancy/svc/store"
)

type fakeStore struct {
	mu          sync.Mutex
	slugs       map[string]bool
	emails      map[string]bool
	registered  []store.Registration
	created     []store.NewTenant
	registerErr error
	lookupErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{slugs: map[string]bool{}, emails: map[string]bool{}}
}

func (f *fakeStore) SlugTaken(_ context.Context, s string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slugs[s], f.lookupErr
}

func (f *fakeStore) EmailTaken(_ context.Context, e string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emails[e], f.lookupErr
}

func (f *fakeStore) Register(_ context.Context, r store.Registration) (*tenant.Tenant, *tenant.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return nil, nil, f.registerErr
	}
	f.registered = append(f.registered, r)
	f.slugs[r.Slug] = true
	f.emails[r.Email] = true
	tenantID := int64(len(f.registered) + 6)
	return &tenant.Tenant{ID: tenantID, Slug: r.Slug, Name: r.TenantName, Type: r.TenantType, PrimaryColor: r.PrimaryColor},
		&tenant.User{ID: 3, Name: r.UserName, Email: r.Email, Active: true, CurrentTenantID: &tenantID, Roles: []string{r.Role}},
		nil
}

func (f *fakeStore) CreateTenant(_ context.Context, nt store.NewTenant) (*tenant.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.created = append(f.created, nt)
	f.slugs[nt.Slug] = true
	return &tenant.Tenant{ID: 20, Slug: nt.Slug, Name: nt.Name, Type: nt.Type, PrimaryColor: nt.PrimaryColor, OwnerUserID: nt.OwnerUserID}, nil
}

func (f *fakeStore) UpdateTenant(_ context.Context, id int64, u store.TenantUpdate) (*tenant.Tenant, error) {
	if id != 20 {
		return nil, tenant.ErrTenantNotFound
	}
	t := &tenant.Tenant{ID: id, Slug: "globex", Name: "Globex", PrimaryColor: "#3B82F6"}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.PrimaryColor != nil {
		t.PrimaryColor = *u.PrimaryColor
	}
	return t, nil
}

func (f *fakeStore) SoftDeleteTenant(_ context.Context, id int64) (*tenant.Tenant, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if id != 20 {
		return nil, tenant.ErrTenantNotFound
	}
	return &tenant.Tenant{ID: id, Slug: "globex"}, nil
}

type spyInvalidator struct{ slugs []string }

func (s *spyInvalidator) Invalidate(_ context.Context, t *tenant.Tenant) { s.slugs = append(s.slugs, t.Slug) }

func newService(t *testing.T, st registration.Store, opts ...registration.Option) *registration.Service {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	opts = append([]registration.Option{registration.WithBcryptCost(bcrypt.MinCost)}, opts...)
	return registration.New(st, cat, "shop.test", opts...)
}

func validRequest() registration.Request {
	return registration.Request{
		Name:                 "John Doe",
		Email:                "John@Example.com",
		OrganizationName:     "Acme Corporation",
		Subdomain:            "acme-corp",
		Password:             "Password123!@#",
		PasswordConfirmation: "Password123!@#",
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	svc := newService(t, st)

	res, err := svc.Register(context.Background(), validRequest(), registration.Origin{Protocol: "https", Port: 8443})
	require.NoError(t, err)

	assert.Equal(t, "acme-corp", res.Tenant.Slug)
	assert.Equal(t, "https://acme-corp.shop.test:8443/tenant", res.RedirectURL)
	require.Len(t, st.registered, 1)

	r := st.registered[0]
	assert.Equal(t, "john@example.com", r.Email)
	assert.Equal(t, "tenant", r.Role)
	assert.Equal(t, "ecommerce", r.TenantType)
	assert.Equal(t, "#3B82F6", r.PrimaryColor)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte("Password123!@#")))
}

func TestRegisterOmitsDefaultPortInRedirect(t *testing.T) {
	t.Parallel()

	svc := newService(t, newFakeStore())
	res, err := svc.Register(context.Background(), validRequest(), registration.Origin{Protocol: "https", Port: 443})
	require.NoError(t, err)
	assert.Equal(t, "https://acme-corp.shop.test/tenant", res.RedirectURL)
}

func TestRegisterDerivesSubdomain(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.slugs["acme-corporation"] = true
	svc := newService(t, st)

	req := validRequest()
	req.Subdomain = ""
	res, err := svc.Register(context.Background(), req, registration.Origin{Protocol: "http", Port: 80})
	require.NoError(t, err)
	assert.Equal(t, "acme-corporation-1", res.Tenant.Slug)
	assert.Equal(t, "http://acme-corporation-1.shop.test/tenant", res.RedirectURL)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*registration.Request)
		fields []string
	}{
		{
			name:   "reserved subdomain",
			mutate: func(r *registration.Request) { r.Subdomain = "admin" },
			fields: []string{registration.FieldSubdomain},
		},
		{
			name:   "consecutive hyphens",
			mutate: func(r *registration.Request) { r.Subdomain = "acme--corp" },
			fields: []string{registration.FieldSubdomain},
		},
		{
			name:   "uppercase subdomain",
			mutate: func(r *registration.Request) { r.Subdomain = "Acme" },
			fields: []string{registration.FieldSubdomain},
		},
		{
			name: "weak password",
			mutate: func(r *registration.Request) {
				r.Password, r.PasswordConfirmation = "password", "password"
			},
			fields: []string{registration.FieldPassword},
		},
		{
			name:   "confirmation mismatch",
			mutate: func(r *registration.Request) { r.PasswordConfirmation = "Password123!@$" },
			fields: []string{registration.FieldPasswordConfirmation},
		},
		{
			name:   "bad email and organization",
			mutate: func(r *registration.Request) { r.Email, r.OrganizationName = "john", "A" },
			fields: []string{registration.FieldEmail, registration.FieldOrganizationName},
		},
		{
			name:   "bad phone",
			mutate: func(r *registration.Request) { r.Phone = "call me" },
			fields: []string{registration.FieldPhone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := newFakeStore()
			req := validRequest()
			tt.mutate(&req)

			_, err := newService(t, st).Register(context.Background(), req, registration.Origin{})
			require.ErrorIs(t, err, validator.ErrValidationFailed)
			assert.ElementsMatch(t, tt.fields, validator.ExtractValidationErrors(err).Fields())
			assert.Empty(t, st.registered)
		})
	}
}

func TestRegisterTakenEmailAndSubdomain(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.emails["john@example.com"] = true
	st.slugs["acme-corp"] = true

	_, err := newService(t, st).Register(context.Background(), validRequest(), registration.Origin{})
	ve := validator.ExtractValidationErrors(err)
	require.NotNil(t, ve)
	assert.Equal(t, []string{"has already been taken"}, ve.Get(registration.FieldEmail))
	assert.Equal(t, []string{"has already been taken"}, ve.Get(registration.FieldSubdomain))
}

func TestRegisterSecondCreationWithSameSlugFails(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	svc := newService(t, st)

	_, err := svc.Register(context.Background(), validRequest(), registration.Origin{})
	require.NoError(t, err)

	second := validRequest()
	second.Email = "jane@example.com"
	_, err = svc.Register(context.Background(), second, registration.Origin{})
	ve := validator.ExtractValidationErrors(err)
	require.NotNil(t, ve)
	assert.True(t, ve.Has(registration.FieldSubdomain))
}

func TestRegisterStoreFailures(t *testing.T) {
	t.Parallel()

	t.Run("race on slug becomes a field error", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		st.registerErr = errors.Join(store.ErrSlugTaken, errors.New("23505"))

		_, err := newService(t, st).Register(context.Background(), validRequest(), registration.Origin{})
		assert.True(t, validator.ExtractValidationErrors(err).Has(registration.FieldSubdomain))
	})

	t.Run("transaction failure", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		cause := errors.New("connection lost")
		st.registerErr = cause

		_, err := newService(t, st).Register(context.Background(), validRequest(), registration.Origin{})
		assert.ErrorIs(t, err, registration.ErrRegistrationFailed)
		assert.ErrorIs(t, err, cause)
		assert.False(t, validator.IsValidationError(err))
	})

	t.Run("availability lookup failure", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		st.lookupErr = errors.New("timeout")

		_, err := newService(t, st).Register(context.Background(), validRequest(), registration.Origin{})
		assert.ErrorIs(t, err, registration.ErrRegistrationFailed)
	})
}

func TestSuggestSlug(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	st.slugs["dashboard-org"] = true
	svc := newService(t, st)

	got, err := svc.SuggestSlug(context.Background(), "Dashboard")
	require.NoError(t, err)
	assert.Equal(t, "dashboard-org-1", got)
}

func TestProvision(t *testing.T) {
	t.Parallel()

	t.Run("defaults and owner", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		inv := &spyInvalidator{}
		svc := newService(t, st, registration.WithInvalidator(inv))

		got, err := svc.Provision(context.Background(), registration.ProvisionRequest{
			Name: "Globex", Slug: "globex", OwnerUserID: func() *int64 { v := int64(3); return &v }(),
		})
		require.NoError(t, err)
		assert.Equal(t, "ecommerce", got.Type)
		assert.Equal(t, "#3B82F6", got.PrimaryColor)
		require.Len(t, st.created, 1)
		assert.Equal(t, int64(3), *st.created[0].OwnerUserID)
		assert.Equal(t, []string{"globex"}, inv.slugs)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		_, err := newService(t, st).Provision(context.Background(), registration.ProvisionRequest{
			Name: "Globex", Slug: "api", Type: "bank", PrimaryColor: "red",
		})
		ve := validator.ExtractValidationErrors(err)
		require.NotNil(t, ve)
		assert.ElementsMatch(t,
			[]string{registration.FieldSlug, registration.FieldType, registration.FieldPrimaryColor},
			ve.Fields())
		assert.Empty(t, st.created)
	})

	t.Run("taken slug", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		st.slugs["globex"] = true
		_, err := newService(t, st).Provision(context.Background(), registration.ProvisionRequest{Name: "Globex", Slug: "globex"})
		assert.True(t, validator.ExtractValidationErrors(err).Has(registration.FieldSlug))
	})

	t.Run("unknown owner", func(t *testing.T) {
		t.Parallel()
		st := newFakeStore()
		st.registerErr = errors.Join(store.ErrOwnerNotFound, errors.New("fk violation"))
		owner := int64(404)
		_, err := newService(t, st).Provision(context.Background(), registration.ProvisionRequest{
			Name: "Globex", Slug: "globex", OwnerUserID: &owner,
		})
		ve := validator.ExtractValidationErrors(err)
		require.NotNil(t, ve)
		assert.Equal(t, []string{registration.FieldOwnerUserID}, ve.Fields())
		assert.NotErrorIs(t, err, registration.ErrRegistrationFailed)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	str := func(s string) *string { return &s }

	t.Run("updates and invalidates", func(t *testing.T) {
		t.Parallel()
		inv := &spyInvalidator{}
		svc := newService(t, newFakeStore(), registration.WithInvalidator(inv))

		got, err := svc.UpdateProfile(context.Background(), 20, registration.ProfileUpdate{
			Name: str("  Globex Corp "), PrimaryColor: str("#112233"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Globex Corp", got.Name)
		assert.Equal(t, "#112233", got.PrimaryColor)
		assert.Equal(t, "globex", got.Slug)
		assert.Equal(t, []string{"globex"}, inv.slugs)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, newFakeStore())

		_, err := svc.UpdateProfile(context.Background(), 20, registration.ProfileUpdate{Name: str("G"), PrimaryColor: str("blue")})
		assert.ElementsMatch(t, []string{registration.FieldName, registration.FieldPrimaryColor},
			validator.ExtractValidationErrors(err).Fields())

		_, err = svc.UpdateProfile(context.Background(), 20, registration.ProfileUpdate{})
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()
		_, err := newService(t, newFakeStore()).UpdateProfile(context.Background(), 1, registration.ProfileUpdate{Name: str("Globex")})
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	inv := &spyInvalidator{}
	st := newFakeStore()
	svc := newService(t, st, registration.WithInvalidator(inv))

	require.NoError(t, svc.Delete(context.Background(), 20))
	assert.Equal(t, []string{"globex"}, inv.slugs)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), tenant.ErrTenantNotFound)

	st.registerErr = errors.New("connection reset")
	assert.ErrorIs(t, svc.Delete(context.Background(), 20), tenant.ErrStorage)
}
