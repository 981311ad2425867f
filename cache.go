package hangar

import "fmt"

// Cache is a small fixed-capacity, insertion-ordered cache keyed by a
// string, used by the registry to memoize query-planner results so that
// a repeated component-id-list query doesn't re-walk the inverted index
// every call.
//
// Adapted from the teacher's cache.go/SimpleCache[T] (same generic
// slice+index-map shape); here it's pointed at a new job — caching
// []ArchetypeID matches — rather than whatever the original Bappa
// framework used it for.
type Cache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

// newCache creates a Cache with the given maximum entry count.
func newCache[T any](capacity int) *Cache[T] {
	return &Cache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: capacity,
	}
}

// Get returns the cached item for key, if present.
func (c *Cache[T]) Get(key string) (T, bool) {
	idx, ok := c.itemIndices[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[idx], true
}

// Put inserts item under key, evicting nothing: once the cache reaches
// capacity further inserts are simply skipped (a stale miss costs a
// re-plan, never correctness).
func (c *Cache[T]) Put(key string, item T) error {
	if _, ok := c.itemIndices[key]; ok {
		return fmt.Errorf("cache key already present: %s", key)
	}
	if len(c.itemIndices) >= c.maxCapacity {
		return fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return nil
}

// Clear drops every cached entry.
func (c *Cache[T]) Clear() {
	c.items = nil
	c.itemIndices = make(map[string]int)
}
