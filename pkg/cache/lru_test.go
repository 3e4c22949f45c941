package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/macwinua/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Parallel()

	t.Run("store and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.PutIfAbsent("a", 1)
		c.PutIfAbsent("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

}

func TestLRUCache_PutIfAbsent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](3)

	val, existed := c.PutIfAbsent("a", 1)
	assert.False(t, existed)
	assert.Equal(t, 1, val)

	val, existed = c.PutIfAbsent("a", 2)
	assert.True(t, existed)
	assert.Equal(t, 1, val, "first stored value wins")
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("evict least recently used", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.PutIfAbsent("a", 1)
		c.PutIfAbsent("b", 2)
		c.PutIfAbsent("c", 3)
		c.PutIfAbsent("d", 4)

		_, ok := c.Get("a")
		assert.False(t, ok, "a should have been evicted")
		assert.Equal(t, 3, c.Len())
	})

	t.Run("get updates recency", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.PutIfAbsent("a", 1)
		c.PutIfAbsent("b", 2)
		c.PutIfAbsent("c", 3)

		c.Get("a")
		c.PutIfAbsent("d", 4)

		_, ok := c.Get("b")
		assert.False(t, ok, "b should have been evicted")
		_, ok = c.Get("a")
		assert.True(t, ok)
	})

	t.Run("unbounded when capacity is not positive", func(t *testing.T) {
		c := cache.NewLRUCache[int, int](0)
		for i := range 500 {
			c.PutIfAbsent(i, i)
		}
		assert.Equal(t, 500, c.Len())
	})
}

func TestLRUCache_EvictionCallback(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](2)

	evicted := make(map[string]int)
	c.SetEvictCallback(func(key string, value int) {
		evicted[key] = value
	})

	c.PutIfAbsent("a", 1)
	c.PutIfAbsent("b", 2)
	c.PutIfAbsent("c", 3)
	assert.Equal(t, map[string]int{"a": 1}, evicted)

	c.Clear()
	assert.Equal(t, map[string]int{"a": 1}, evicted, "clear is not an eviction")
}

func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[int, int](50)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.PutIfAbsent(v, v*2)
			c.Get(v)
			c.PutIfAbsent(v+1, v)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}

func BenchmarkLRUCache_Mixed(b *testing.B) {
	c := cache.NewLRUCache[int, int](1000)

	b.ResetTimer()
	for i := range b.N {
		if i%2 == 0 {
			c.PutIfAbsent(i%2000, i)
		} else {
			c.Get(i % 2000)
		}
	}
}
