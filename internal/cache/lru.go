package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/zone42/glyphs/internal/resource"
)

// Key identifies one block of one blob.
type Key struct {
	Path  string
	Block int64
}

// LRU is a byte-bounded least-recently-used block cache.
// It is safe for concurrent use.
type LRU struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[Key]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   Key
	value []byte
}

// NewLRU creates a cache holding at most capacity bytes.
// If rc is non-nil, cached bytes are charged against its memory limit.
func NewLRU(capacity int64, rc *resource.Controller) *LRU {
	return &LRU{
		capacity:  capacity,
		items:     make(map[Key]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns a cached block. The slice must be treated as read-only.
func (c *LRU) Get(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry).value, true
	}
	c.misses.Add(1)
	return nil, false
}

// Set caches b under key. Blocks larger than the capacity are ignored.
// The cache retains b; the caller must not modify it afterwards.
func (c *LRU) Set(key Key, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}

	size := int64(len(b))
	if size > c.capacity {
		return
	}

	// Evict locally first so released memory is available to the controller.
	for c.size+size > c.capacity {
		el := c.evictList.Back()
		if el == nil {
			break
		}
		c.removeElement(el)
	}

	if !c.rc.TryAcquireMemory(size) {
		return
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: b})
	c.size += size
}

// InvalidatePath drops every block of path.
func (c *LRU) InvalidatePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []*list.Element
	for key, el := range c.items {
		if key.Path == path {
			stale = append(stale, el)
		}
	}
	for _, el := range stale {
		c.removeElement(el)
	}
}

func (c *LRU) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	kv := el.Value.(*entry)
	delete(c.items, kv.key)
	size := int64(len(kv.value))
	c.size -= size
	c.rc.ReleaseMemory(size)
}

// Stats returns the hit and miss counts.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the current size of the cache in bytes.
func (c *LRU) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of cached blocks.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
