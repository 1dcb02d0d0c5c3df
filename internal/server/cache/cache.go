// Package cache holds rendered listing documents for the HTTP server.
// It uses patrickmn/go-cache for TTL-based expiry.
package cache

import (
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/optimade/optimade-go/internal/metrics"
)

// Cache wraps go-cache and records hit and miss counts.
type Cache struct {
	store *gocache.Cache
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Key identifies a request by path and canonically ordered query.
func Key(r *http.Request) string {
	return r.URL.Path + "?" + r.URL.Query().Encode()
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.store.Get(key)
	if ok {
		metrics.ResponseCacheHits.Inc()
	} else {
		metrics.ResponseCacheMisses.Inc()
	}
	return v, ok
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
