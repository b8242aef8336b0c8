package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("panics on zero capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		var evicted []string
		c := cache.NewLRU[string, int](2)
		c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

		assert.False(t, c.Put("a", 1))
		assert.False(t, c.Put("b", 2))
		_, ok := c.Get("a")
		require.True(t, ok)
		c.Put("c", 3)

		assert.Equal(t, []string{"b"}, evicted)
		_, ok = c.Peek("b")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("peek keeps order", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		_, _ = c.Peek("a")
		c.Put("c", 3)

		_, ok := c.Peek("a")
		assert.False(t, ok)
	})

	t.Run("replace", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		assert.True(t, c.Put("a", 5))
		v, _ := c.Get("a")
		assert.Equal(t, 5, v)
	})

	t.Run("remove func and clear", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, int](10)
		for i := range 6 {
			c.Put(i, i)
		}
		assert.Equal(t, 3, c.RemoveFunc(func(_, v int) bool { return v%2 == 0 }))
		assert.Equal(t, 3, c.Len())
		assert.True(t, c.Remove(1))
		assert.False(t, c.Remove(1))
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})

	t.Run("concurrent", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, int](50)
		var wg sync.WaitGroup
		for g := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 200 {
					c.Put(g*1000+i, i)
					c.Get(i)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, c.Len())
	})
}
