package operators

import (
	"container/list"
	"sync"
)

// lruCache is a mutex-guarded, bounded cache with least-recently-used
// eviction. It backs the compiled-pattern and compiled-expression
// caches, the only mutable state shared between concurrently running
// predicate evaluations. A miss is always safe to recompute redundantly
// under a race: callers compile outside the lock and the second writer
// simply refreshes the entry.
type lruCache[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type lruEntry[V any] struct {
	key   string
	value V
}

// newLRUCache creates a cache bounded to capacity entries. A capacity
// below one falls back to a single entry rather than disabling caching.
func newLRUCache[V any](capacity int) *lruCache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache[V]{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the cached value for key, marking it most recently used.
func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*lruEntry[V]).value, true
}

// add stores a value under key, evicting the least recently used entry
// when the cache is full.
func (c *lruCache[V]) add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
		return
	}
	c.entries[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry[V]).key)
	}
}

// len returns the current number of cached entries.
func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
