// Package cache provides a generic, thread-safe LRU cache with optional TTL.
//
// It backs the in-memory tenant lookup cache and the per-table column
// introspection memo used by tenant scoping.
//
//	c := cache.NewLRUCache[string, *tenant.Tenant](1000, cache.WithTTL(5*time.Minute))
//	c.Put("slug:acme", t)
//	if t, ok := c.Get("slug:acme"); ok {
//		// use t
//	}
//
// Entries expire lazily: an expired entry is removed the next time it is read
// or overwritten, or when capacity pressure evicts it.
package cache
