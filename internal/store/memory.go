package store

import (
	"sync"

	"github.com/i474232898/weather-odds/internal/weather"
)

// MemoryCache is a concurrency-safe in-memory implementation of
// weather.SeriesCache. Entries live until Delete, Clear or process exit.
type MemoryCache struct {
	mu sync.RWMutex

	// key: rounded coordinate key, value: immutable raw series
	data map[string]*weather.RawSeries

	// insertion order, used for eviction when maxEntries is set
	order      []string
	maxEntries int
}

// NewMemoryCache creates a new MemoryCache.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string]*weather.RawSeries),
		maxEntries: maxEntries,
	}
}

// Get returns the series stored under key.
func (c *MemoryCache) Get(key string) (*weather.RawSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	series, ok := c.data[key]
	return series, ok
}

// Put stores series under key. A concurrent Put for the same key overwrites
// the earlier value.
func (c *MemoryCache) Put(key string, series *weather.RawSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists {
		c.order = append(c.order, key)
	}
	c.data[key] = series

	// Enforce retention by count, oldest insertion first.
	if c.maxEntries > 0 {
		for len(c.order) > c.maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.data, oldest)
		}
	}
}

// Delete removes key if present.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; !ok {
		return
	}
	delete(c.data, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]*weather.RawSeries)
	c.order = nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}
