// Package asset deduplicates GPU resource loads by key. Entries live until
// the cache is destroyed; there is no eviction.
package asset

import (
	"fmt"
	"sort"
)

// Destroyer is a resource that releases GPU objects.
type Destroyer interface {
	Destroy()
}

// Cache holds at most one live resource per key.
type Cache[T Destroyer] struct {
	kind    string
	entries map[string]T
}

func NewCache[T Destroyer](kind string) *Cache[T] {
	return &Cache[T]{kind: kind, entries: make(map[string]T)}
}

// GetOrLoad returns the resource cached under key, calling load only when
// there is none. A failed load caches nothing, so the next call retries.
func (c *Cache[T]) GetOrLoad(key string, load func() (T, error)) (T, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s %q: %w", c.kind, key, err)
	}
	c.entries[key] = v
	return v, nil
}

// Get returns the resource cached under key without loading.
func (c *Cache[T]) Get(key string) (T, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache[T]) Len() int { return len(c.entries) }

// Keys returns the cached keys in sorted order.
func (c *Cache[T]) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Destroy releases every cached resource in key order and empties the cache.
func (c *Cache[T]) Destroy() {
	for _, k := range c.Keys() {
		c.entries[k].Destroy()
	}
	c.entries = make(map[string]T)
}
