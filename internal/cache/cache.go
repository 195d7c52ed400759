// Package cache provides the in-memory TTL response cache that guards the
// aggregation orchestrator from redundant work. Entries hold fully
// serialized response payloads keyed by request shape; eviction is
// FIFO-by-insertion, refreshed on read access, bounded by a maximum entry
// count. Distinct endpoint families own distinct cache instances with their
// own TTLs.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/observability/metrics"
)

// DefaultMaxEntries bounds a cache instance when the caller does not
// configure a capacity.
const DefaultMaxEntries = 100

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// TTLCache is a bounded in-memory cache with per-instance TTL.
// All map and order mutations happen under a single mutex; a cache instance
// is safe for concurrent use across requests.
type TTLCache struct {
	name       string
	ttl        time.Duration
	maxEntries int

	mu    sync.Mutex
	order *list.List // front = oldest, back = most recently inserted/read
	items map[string]*list.Element

	now func() time.Time // injectable for tests
}

// New creates a TTLCache. The name labels this instance in metrics.
func New(name string, ttl time.Duration, maxEntries int) *TTLCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &TTLCache{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get returns the cached payload for key, or ok=false when absent.
// An expired entry found on read is removed and treated as absent. A hit
// marks the entry as recently used, moving it to the back of the eviction
// order so hot keys survive FIFO eviction.
func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		metrics.RecordCacheMiss(c.name)
		return nil, false
	}

	e := el.Value.(*entry)
	if !c.now().Before(e.expiresAt) {
		c.remove(el)
		metrics.RecordCacheMiss(c.name)
		return nil, false
	}

	c.order.MoveToBack(el)
	metrics.RecordCacheHit(c.name)
	return e.value, true
}

// Set stores the payload under key with this instance's TTL. When the cache
// is at capacity the oldest entries are evicted first, irrespective of their
// remaining TTL, until there is room for the new entry.
func (c *TTLCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToBack(el)
		return
	}

	for len(c.items) >= c.maxEntries && c.order.Len() > 0 {
		c.remove(c.order.Front())
		metrics.RecordCacheEviction(c.name)
	}

	el := c.order.PushBack(&entry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
	c.items[key] = el
	metrics.UpdateCacheEntries(c.name, len(c.items))
}

// Len returns the current number of entries, including any not yet lazily
// expired.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// remove deletes an element from both the order list and the index.
// Caller must hold c.mu.
func (c *TTLCache) remove(el *list.Element) {
	e := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.items, e.key)
	metrics.UpdateCacheEntries(c.name, len(c.items))
}
