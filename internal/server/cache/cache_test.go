package cache

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/optimade/optimade-go/internal/metrics"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", 42)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, c.ItemCount())

	c.Delete("k")
	assert.Equal(t, 0, c.ItemCount())
}

func TestExpiry(t *testing.T) {
	c := New(20*time.Millisecond, time.Hour)
	c.Set("k", "v")
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Zero(t, c.ItemCount())
}

func TestKeyIsOrderIndependent(t *testing.T) {
	a := httptest.NewRequest("GET", "/v1/structures?page_limit=2&sort=nsites", nil)
	b := httptest.NewRequest("GET", "/v1/structures?sort=nsites&page_limit=2", nil)
	c := httptest.NewRequest("GET", "/v1/references?sort=nsites&page_limit=2", nil)

	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(c))
}

func TestHitMissMetrics(t *testing.T) {
	c := New(time.Minute, time.Minute)
	hits := testutil.ToFloat64(metrics.ResponseCacheHits)
	misses := testutil.ToFloat64(metrics.ResponseCacheMisses)

	c.Get("nope")
	c.Set("yes", true)
	c.Get("yes")

	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.ResponseCacheHits))
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.ResponseCacheMisses))
}
