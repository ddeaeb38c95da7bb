package cache

import (
	"time"
)

// CacheService represents a generic cache service.
// The crawl worker uses it to hold fetch block keys so a source that
// rate limited us is left alone until the block expires.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
