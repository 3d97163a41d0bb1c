package cache

import "time"

// LayeredCache checks memory before disk and promotes disk hits. Each layer
// applies its own lifetime per request kind.
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayeredCache creates a memory + disk cache from opts
func NewLayeredCache(opts Options) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(opts.MemoryTTL, 10*time.Minute, opts.KindTTL),
		disk:   NewDiskCache(opts.Dir, opts.DiskTTL, opts.KindTTL),
	}
}

// Get returns a response from the first layer that has it
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if body, found := c.memory.Get(key); found {
		return body, true
	}

	body, found := c.disk.Get(key)
	if !found {
		return nil, false
	}
	_ = c.memory.Set(key, body, 0)
	return body, true
}

// Set stores a response in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes a response from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
