package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-odds/internal/weather"
)

func series(v float64) *weather.RawSeries {
	return &weather.RawSeries{MaxTempC: map[string]float64{"19810101": v}}
}

func TestMemoryCache_BasicGetPut(t *testing.T) {
	c := NewMemoryCache(0)

	s := series(1)
	c.Put("1.0000,2.0000", s)

	got, ok := c.Get("1.0000,2.0000")
	assert.True(t, ok)
	assert.Same(t, s, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_OverwriteKeepsSingleEntry(t *testing.T) {
	c := NewMemoryCache(0)

	c.Put("a", series(1))
	c.Put("a", series(2))

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2.0, got.MaxTempC["19810101"])
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_EvictsOldestInsertion(t *testing.T) {
	c := NewMemoryCache(2)

	c.Put("a", series(1))
	c.Put("b", series(2))
	c.Put("c", series(3)) // evicts "a"

	_, ok := c.Get("a")
	assert.False(t, ok, "a should have been evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(2)

	c.Put("a", series(1))
	c.Put("b", series(2))
	c.Delete("a")
	c.Delete("missing")
	assert.Equal(t, 1, c.Len())

	// "a" no longer counts towards the bound.
	c.Put("c", series(3))
	_, ok := c.Get("b")
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			c.Put(key, series(float64(i)))
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, c.Len())
}
