package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching raw pages
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a file name from a URL when no fixed name is configured
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "lifelines-v1-" + hex.EncodeToString(hash[:8]) + ".html"
}
