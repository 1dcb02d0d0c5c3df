package providers

import (
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Clock supplies the current time to a Cache.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

const cacheKey = "providers"

type cached struct {
	records  []Record
	storedAt time.Time
}

// Cache holds the last successfully resolved provider list.
// Expiry is judged against the injected Clock; a zero TTL never expires.
type Cache struct {
	store *gocache.Cache
	ttl   time.Duration
	clock Clock
}

// NewCache creates a provider cache. A nil clock uses SystemClock.
func NewCache(ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = SystemClock
	}
	return &Cache{
		store: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns the cached list if present and not expired.
func (c *Cache) Get() ([]Record, bool) {
	v, ok := c.store.Get(cacheKey)
	if !ok {
		return nil, false
	}
	entry := v.(cached)
	if c.ttl > 0 && c.clock.Now().Sub(entry.storedAt) >= c.ttl {
		c.store.Delete(cacheKey)
		return nil, false
	}
	return slices.Clone(entry.records), true
}

// Set stores records, replacing any previous list.
func (c *Cache) Set(records []Record) {
	c.store.Set(cacheKey, cached{
		records:  slices.Clone(records),
		storedAt: c.clock.Now(),
	}, gocache.NoExpiration)
}

// Invalidate drops the cached list so the next resolution goes remote.
func (c *Cache) Invalidate() {
	c.store.Delete(cacheKey)
}
