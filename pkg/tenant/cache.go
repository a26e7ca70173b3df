package tenant

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/tenancy/pkg/cache"
)

// Cache stores positive tenant lookups.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool, error)
	Set(ctx context.Context, key string, t *Tenant) error
	Delete(ctx context.Context, keys ...string) error
}

// SlugKey is the cache key for a slug lookup.
func SlugKey(s string) string {
	return "tenant:slug:" + s
}

// IDKey is the cache key for an id lookup.
func IDKey(id int64) string {
	return "tenant:id:" + strconv.FormatInt(id, 10)
}

// MemoryCache is an in-process LRU tenant cache with TTL.
type MemoryCache struct {
	lru *cache.LRUCache[string, Tenant]
}

// NewMemoryCache creates a MemoryCache holding up to size tenants for ttl.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 1000
	}
	return &MemoryCache{lru: cache.NewLRUCache[string, Tenant](size, cache.WithTTL(ttl))}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Tenant, bool, error) {
	t, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return &t, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, t *Tenant) error {
	if t != nil {
		c.lru.Put(key, *t)
	}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.lru.Remove(key)
	}
	return nil
}

// CachedStore serves tenant lookups from a Cache in front of a Store.
// Only found tenants are cached; membership checks and writes pass through.
type CachedStore struct {
	Store
	cache  Cache
	logger *slog.Logger
}

// CachedStoreOption configures a CachedStore.
type CachedStoreOption func(*CachedStore)

// WithCacheLogger sets the logger used for cache failures.
func WithCacheLogger(logger *slog.Logger) CachedStoreOption {
	return func(s *CachedStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCachedStore wraps store with c.
func NewCachedStore(store Store, c Cache, opts ...CachedStoreOption) *CachedStore {
	s := &CachedStore{
		Store:  store,
		cache:  c,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CachedStore) TenantBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return s.lookup(ctx, SlugKey(slug), func() (*Tenant, error) {
		return s.Store.TenantBySlug(ctx, slug)
	})
}

func (s *CachedStore) TenantByID(ctx context.Context, id int64) (*Tenant, error) {
	return s.lookup(ctx, IDKey(id), func() (*Tenant, error) {
		return s.Store.TenantByID(ctx, id)
	})
}

// Invalidate drops every cached entry of t. Call after updating or deleting a tenant.
func (s *CachedStore) Invalidate(ctx context.Context, t *Tenant) {
	if t == nil {
		return
	}
	if err := s.cache.Delete(ctx, SlugKey(t.Slug), IDKey(t.ID)); err != nil {
		s.logger.WarnContext(ctx, "tenant cache invalidation failed",
			slog.Int64("tenant_id", t.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CachedStore) lookup(ctx context.Context, key string, load func() (*Tenant, error)) (*Tenant, error) {
	t, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "tenant cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	if ok {
		return t, nil
	}

	t, err = load()
	if err != nil {
		return nil, err
	}

	for _, k := range []string{SlugKey(t.Slug), IDKey(t.ID)} {
		if err := s.cache.Set(ctx, k, t); err != nil {
			s.logger.WarnContext(ctx, "tenant cache write failed",
				slog.String("key", k),
				slog.String("error", err.Error()),
			)
		}
	}
	return t, nil
}
