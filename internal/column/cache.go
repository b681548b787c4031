package column

import (
	"container/list"
	"sync"

	"github.com/dshills/sheetstorm/internal/row"
)

// DefaultCacheSize is the number of display values a column cache holds.
const DefaultCacheSize = 256

type cacheKey struct {
	id    row.ID
	width int
}

type cacheEntry struct {
	key  cacheKey
	cell Cell
}

// Cache holds display values keyed by (row, width). When full, the oldest
// inserted entry is evicted; lookups do not refresh an entry's age.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]*list.Element
	order    *list.List
}

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached cell for id and width.
func (c *Cache) Get(id row.ID, width int) (Cell, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[cacheKey{id, width}]
	if !ok {
		return Cell{}, false
	}
	return e.Value.(*cacheEntry).cell, true
}

// Put stores cell for id and width, evicting the oldest entry on overflow.
func (c *Cache) Put(id row.ID, width int, cell Cell) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := cacheKey{id, width}
	if e, ok := c.entries[k]; ok {
		e.Value.(*cacheEntry).cell = cell
		return
	}
	c.entries[k] = c.order.PushBack(&cacheEntry{key: k, cell: cell})

	for c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element, c.capacity)
	c.order.Init()
}
