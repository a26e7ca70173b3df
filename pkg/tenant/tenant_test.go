package tenant_test

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// memStore is an in-memory tenant.Store with call counters.
type memStore struct {
	mu          sync.Mutex
	tenants     map[int64]*tenant.Tenant
	members     map[int64]map[int64]bool
	pointers    map[int64]int64
	err         error
	setErr      error
	slugLookups int
	idLookups   int
	setCalls    int
}

func newMemStore() *memStore {
	return &memStore{
		tenants:  make(map[int64]*tenant.Tenant),
		members:  make(map[int64]map[int64]bool),
		pointers: make(map[int64]int64),
	}
}

func (s *memStore) addTenant(id int64, slug string) *tenant.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &tenant.Tenant{
		ID:        id,
		Slug:      slug,
		Name:      slug,
		Type:      "ecommerce",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.tenants[id] = t
	return t
}

func (s *memStore) addMember(tenantID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members[tenantID] == nil {
		s.members[tenantID] = make(map[int64]bool)
	}
	s.members[tenantID][userID] = true
}

func (s *memStore) pointer(userID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.pointers[userID]
	return id, ok
}

func (s *memStore) TenantBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slugLookups++
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.tenants {
		if t.Slug == slug && t.DeletedAt == nil {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *memStore) TenantByID(_ context.Context, id int64) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idLookups++
	if s.err != nil {
		return nil, s.err
	}
	if t, ok := s.tenants[id]; ok && t.DeletedAt == nil {
		return t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *memStore) IsMember(_ context.Context, tenantID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.members[tenantID][userID], nil
}

func (s *memStore) HasMemberships(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	for _, m := range s.members {
		if m[userID] {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) SetCurrentTenant(_ context.Context, userID, tenantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.pointers[userID] = tenantID
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
