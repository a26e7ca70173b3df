package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenancy/pkg/catalog"
	"github.com/dmitrymomot/tenancy/pkg/slug"
	"github.com/dmitrymomot/tenancy/pkg/sanitizer"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
	"github.com/dmitrymomot/tenancy/pkg/validator"
	"github.com/dmitrymomot/tenancy/svc/store"
)

// Store is the persistence the service needs; *store.Store implements it.
type Store interface {
	SlugTaken(ctx context.Context, slug string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, r store.Registration) (*tenant.Tenant, *tenant.User, error)
	CreateTenant(ctx context.Context, nt store.NewTenant) (*tenant.Tenant, error)
	UpdateTenant(ctx context.Context, id int64, u store.TenantUpdate) (*tenant.Tenant, error)
	SoftDeleteTenant(ctx context.Context, id int64) (*tenant.Tenant, error)
}

// Invalidator drops cached tenant lookups; *tenant.CachedStore implements it.
type Invalidator interface {
	Invalidate(ctx context.Context, t *tenant.Tenant)
}

// Origin is how the client reached the server, used to build the redirect URL.
type Origin struct {
	Protocol string
	Port     int
}

// Request is a tenant self-registration form.
type Request struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	OrganizationName     string `json:"organization_name"`
	Subdomain            string `json:"subdomain"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Result is a completed registration.
type Result struct {
	Tenant      *tenant.Tenant `json:"tenant"`
	User        *tenant.User   `json:"user"`
	RedirectURL string         `json:"redirect_url"`
}

// Service registers tenants together with their first user.
type Service struct {
	store      Store
	catalog    *catalog.Catalog
	rules      slug.Rules
	baseDomain string
	cost       int
	log        *slog.Logger
	cache      Invalidator
}

type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithInvalidator makes provisioning drop stale cache entries for the new slug.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.cache = inv }
}

func New(st Store, cat *catalog.Catalog, baseDomain string, opts ...Option) *Service {
	s := &Service{
		store:      st,
		catalog:    cat,
		rules:      cat.SlugRules(),
		baseDomain: baseDomain,
		cost:       bcrypt.DefaultCost,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SuggestSlug derives an unused, legal subdomain from an organization name.
func (s *Service) SuggestSlug(ctx context.Context, organizationName string) (string, error) {
	return slug.Unique(ctx, organizationName, s.rules, s.store.SlugTaken)
}

// Register validates req, then creates the user, the tenant, the membership,
// the registrant role and the current tenant pointer atomically. An empty
// subdomain is derived from the organization name.
//
// Field problems come back as validator.ValidationErrors. Anything else is
// joined with ErrRegistrationFailed and nothing is persisted.
func (s *Service) Register(ctx context.Context, req Request, origin Origin) (*Result, error) {
	req.Email = sanitizer.Email(req.Email)
	req.Name = sanitizer.Name(req.Name)
	req.Phone = sanitizer.Phone(req.Phone)
	req.OrganizationName = sanitizer.Name(req.OrganizationName)
	req.Subdomain = sanitizer.Trim(req.Subdomain)

	if req.Subdomain == "" && req.OrganizationName != "" {
		suggested, err := s.SuggestSlug(ctx, req.OrganizationName)
		switch {
		case err == nil:
			req.Subdomain = suggested
		case errors.Is(err, slug.ErrNoCandidate), errors.Is(err, slug.ErrTooManyTaken):
		default:
			return nil, s.failed(ctx, "suggest subdomain", err)
		}
	}

	if err := validator.Merge(
		validateUser(req),
		validateOrganization(req.OrganizationName),
		s.rules.Validate(FieldSubdomain, req.Subdomain),
	); err != nil {
		return nil, err
	}

	if err := s.checkAvailability(ctx, req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, s.failed(ctx, "hash password", err)
	}

	t, u, err := s.store.Register(ctx, store.Registration{
		UserName:     req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         s.catalog.RegistrantRole,
		TenantName:   req.OrganizationName,
		Slug:         req.Subdomain,
		TenantType:   s.catalog.Defaults.Type,
		PrimaryColor: s.catalog.Defaults.PrimaryColor,
	})
	if err != nil {
		return nil, s.mapStoreError(ctx, "register", FieldSubdomain, err)
	}

	s.log.InfoContext(ctx, "tenant registered",
		slog.Int64("tenant_id", t.ID),
		slog.String("tenant_slug", t.Slug),
		slog.Int64("user_id", u.ID),
	)

	return &Result{
		Tenant:      t,
		User:        u,
		RedirectURL: tenant.URL(t.Slug, s.baseDomain, origin.Protocol, origin.Port, "/tenant"),
	}, nil
}

func (s *Service) checkAvailability(ctx context.Context, req Request) error {
	var errs validator.ValidationErrors

	taken, err := s.store.EmailTaken(ctx, req.Email)
	if err != nil {
		return s.failed(ctx, "check email", err)
	}
	if taken {
		errs = append(errs, takenError(FieldEmail)...)
	}

	taken, err = s.store.SlugTaken(ctx, req.Subdomain)
	if err != nil {
		return s.failed(ctx, "check subdomain", err)
	}
	if taken {
		errs = append(errs, takenError(FieldSubdomain)...)
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// mapStoreError turns unique violations that slipped past the availability
// check into field errors.
func (s *Service) mapStoreError(ctx context.Context, op, slugField string, err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, store.ErrSlugTaken):
		return takenError(slugField)
	case errors.Is(err, store.ErrEmailTaken):
		return takenError(FieldEmail)
	case errors.Is(err, store.ErrOwnerNotFound):
		return validator.NewError(FieldOwnerUserID, "user does not exist", "validation.exists")
	}
	return s.failed(ctx, op, err)
}

func (s *Service) failed(ctx context.Context, op string, err error) error {
	s.log.ErrorContext(ctx, "registration failed", slog.String("op", op), slog.Any("error", err))
	return errors.Join(ErrRegistrationFailed, fmt.Errorf("%s: %w", op, err))
}

func takenError(field string) validator.ValidationErrors {
	return validator.NewError(field, "has already been taken", "validation.unique")
}
