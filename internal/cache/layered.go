package cache

import "time"

// LayeredCache implements a multi-layer cache (memory + disk).
// The disk layer is authoritative: Get always re-reads the stored file
// unless the memory layer was populated from that same file.
type LayeredCache struct {
	memory Cache
	disk   *DiskCache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get retrieves a value from the cache (checks memory first, then disk)
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		// Promote to memory cache
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set persists the value to disk only. The memory layer is filled on the
// next Get, so callers always parse the copy that actually hit the disk.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	_ = c.memory.Delete(key)
	return c.disk.Set(key, value, ttl)
}

// SetFor stores value under key and records source next to it, so that a
// later GetFor with a different source misses
func (c *LayeredCache) SetFor(key, source string, value []byte, ttl time.Duration) error {
	// Drop the old source first: a failed write must never leave a stale match
	if err := c.disk.Delete(sourceKey(key)); err != nil {
		return err
	}
	if err := c.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(sourceKey(key), []byte(source), ttl)
}

// GetFor returns the value under key only if it was stored for source
func (c *LayeredCache) GetFor(key, source string) ([]byte, bool) {
	stored, ok := c.disk.Get(sourceKey(key))
	if !ok || string(stored) != source {
		return nil, false
	}
	return c.Get(key)
}

// Delete removes a value and its recorded source from both caches
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	if err := c.disk.Delete(sourceKey(key)); err != nil {
		return err
	}
	return c.disk.Delete(key)
}

// Clear removes all values from both caches
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}

// Path returns where key is stored on disk
func (c *LayeredCache) Path(key string) string {
	return c.disk.Path(key)
}

// sourceKey names the sidecar file holding the URL a value was stored for
func sourceKey(key string) string {
	return key + ".url"
}
