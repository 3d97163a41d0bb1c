package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps lookup responses in process for the length of a run
type MemoryCache struct {
	items     *gocache.Cache
	lifetimes lifetimes
}

// NewMemoryCache creates a memory cache. kindTTL may be nil.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration, kindTTL map[string]time.Duration) *MemoryCache {
	return &MemoryCache{
		items:     gocache.New(defaultTTL, cleanupInterval),
		lifetimes: lifetimes{layer: defaultTTL, kinds: kindTTL},
	}
}

// Get returns the response body stored under key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.items.Get(key)
	if !found {
		return nil, false
	}
	body, ok := val.([]byte)
	return body, ok
}

// Set stores a response body. A zero ttl uses the lifetime of the key's kind.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	ttl = c.lifetimes.resolve(key, ttl)
	if ttl < 0 {
		// Already expired; go-cache would read a negative TTL as "never expire"
		c.items.Delete(key)
		return nil
	}
	c.items.Set(key, value, ttl)
	return nil
}

// Delete removes a response
func (c *MemoryCache) Delete(key string) error {
	c.items.Delete(key)
	return nil
}

// Clear removes all responses
func (c *MemoryCache) Clear() error {
	c.items.Flush()
	return nil
}
