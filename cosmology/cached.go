package cosmology

import (
	"container/list"
	"math"
	"sync"
	"sync/atomic"
)

// Cached memoizes an underlying Provider with a bounded LRU keyed by the exact
// bit pattern of the redshift. Lens catalogs with binned or spectroscopic
// redshifts hit the cache often; continuous photo-z catalogs mostly miss.
type Cached struct {
	inner    Provider
	capacity int

	mu        sync.Mutex
	items     map[uint64]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   uint64
	value float64
}

// NewCached wraps p with an LRU holding up to capacity distances.
// A capacity <= 0 defaults to 1024.
func NewCached(p Provider, capacity int) *Cached {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Cached{
		inner:     p,
		capacity:  capacity,
		items:     make(map[uint64]*list.Element, capacity),
		evictList: list.New(),
	}
}

// AngularDiameterDistance implements Provider.
func (c *Cached) AngularDiameterDistance(z float64) float64 {
	key := math.Float64bits(z)

	c.mu.Lock()
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		d := ent.Value.(*entry).value
		c.mu.Unlock()
		c.hits.Add(1)
		return d
	}
	c.mu.Unlock()
	c.misses.Add(1)

	// Compute outside the lock; concurrent misses on the same key both
	// compute and the second insert just refreshes the entry.
	d := c.inner.AngularDiameterDistance(z)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		return d
	}
	c.items[key] = c.evictList.PushFront(&entry{key: key, value: d})
	for c.evictList.Len() > c.capacity {
		c.removeElement(c.evictList.Back())
	}
	return d
}

func (c *Cached) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*entry).key)
}

// Len returns the number of cached distances.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns cache hit and miss counts.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
