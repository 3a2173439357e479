package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zone42/glyphs/internal/resource"
)

func TestLRU(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRU(50, rc)

	k1 := Key{Path: "shard", Block: 1}
	k2 := Key{Path: "shard", Block: 2}
	k3 := Key{Path: "shard", Block: 3}

	c.Set(k1, make([]byte, 20))
	c.Set(k2, make([]byte, 20))
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	// Touch k1 so k2 becomes the eviction candidate.
	_, ok := c.Get(k1)
	assert.True(t, ok)

	c.Set(k3, make([]byte, 20))
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	_, ok = c.Get(k2)
	assert.False(t, ok, "k2 should be evicted")
	_, ok = c.Get(k3)
	assert.True(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_Replace(t *testing.T) {
	c := NewLRU(100, nil)
	k := Key{Path: "a"}

	c.Set(k, []byte("old"))
	c.Set(k, []byte("newer"))

	v, ok := c.Get(k)
	assert.True(t, ok)
	assert.Equal(t, "newer", string(v))
	assert.Equal(t, int64(5), c.Size())
	assert.Equal(t, 1, c.Len())
}

func TestLRU_TooLarge(t *testing.T) {
	c := NewLRU(10, nil)
	c.Set(Key{Path: "big"}, make([]byte, 11))
	assert.Equal(t, 0, c.Len())
}

func TestLRU_GlobalLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 30})
	c := NewLRU(100, rc)

	c.Set(Key{Path: "a"}, make([]byte, 20))
	// The controller refuses, so the block is not cached.
	c.Set(Key{Path: "b"}, make([]byte, 20))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(20), rc.MemoryUsage())
}

func TestLRU_InvalidatePath(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	c := NewLRU(100, rc)

	c.Set(Key{Path: "a", Block: 0}, make([]byte, 10))
	c.Set(Key{Path: "a", Block: 1}, make([]byte, 10))
	c.Set(Key{Path: "b", Block: 0}, make([]byte, 10))

	c.InvalidatePath("a")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(10), c.Size())
	assert.Equal(t, int64(10), rc.MemoryUsage())
}
