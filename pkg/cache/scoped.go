package cache

import (
	"context"
	"time"
)

// ScopedCache wraps a Cache with a key prefix for namespace isolation.
// Deployments sharing one Redis instance across environments or tenants get
// separate key spaces without separate connections.
//
// Example usage:
//
//	// Per-environment keys on a shared instance
//	stagingCache := NewScopedCache(redisCache, "staging:")
type ScopedCache struct {
	inner  Cache
	prefix string
}

// NewScopedCache creates a cache whose keys are all prefixed.
// A nil inner cache falls back to the null cache.
func NewScopedCache(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{
		inner:  inner,
		prefix: prefix,
	}
}

// Get retrieves the prefixed key from the underlying cache.
func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores under the prefixed key in the underlying cache.
func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes the prefixed key from the underlying cache.
func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the underlying cache.
func (c *ScopedCache) Close() error {
	return c.inner.Close()
}

// Ensure ScopedCache implements Cache.
var _ Cache = (*ScopedCache)(nil)
