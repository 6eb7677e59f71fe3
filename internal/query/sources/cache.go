package sources

import (
	"sync"
	"time"

	"github.com/runger/omnibar/internal/query"
)

// Cache memoizes an adapter's fan-out results for a short window. It is
// best-effort only: adapters must behave identically with a nil Cache, and
// a miss never implies anything beyond "go ask the collaborator again".
type Cache interface {
	Get(key string) ([]query.Item, bool)
	Set(key string, items []query.Item)
}

// TTLCache is a Cache whose entries expire after a fixed duration.
// Safe for concurrent use.
type TTLCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]ttlEntry
}

type ttlEntry struct {
	items   []query.Item
	expires time.Time
}

// NewTTLCache creates a TTLCache. A non-positive ttl disables caching
// entirely: Get always misses and Set is a no-op.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]ttlEntry),
	}
}

// NewTTLCacheAt creates a TTLCache with a fixed clock, for tests.
func NewTTLCacheAt(ttl time.Duration, now func() time.Time) *TTLCache {
	c := NewTTLCache(ttl)
	c.now = now
	return c
}

// Get returns the cached items for key if present and unexpired.
func (c *TTLCache) Get(key string) ([]query.Item, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.items, true
}

// Set stores items under key with the cache's TTL.
func (c *TTLCache) Set(key string, items []query.Item) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry{items: items, expires: c.now().Add(c.ttl)}
}

// cacheGet is a nil-safe read through an optional Cache.
func cacheGet(c Cache, key string) ([]query.Item, bool) {
	if c == nil {
		return nil, false
	}
	return c.Get(key)
}

// cacheSet is a nil-safe write through an optional Cache.
func cacheSet(c Cache, key string, items []query.Item) {
	if c != nil {
		c.Set(key, items)
	}
}
