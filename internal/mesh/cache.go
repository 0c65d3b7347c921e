package mesh

import "sync"

// Cache is a concurrency-safe store of tessellated primitives.
type Cache struct {
	mu    sync.RWMutex
	items map[Primitive]*Mesh
}

func NewCache() *Cache {
	return &Cache{items: make(map[Primitive]*Mesh)}
}

// Get returns the mesh for p, tessellating it on first use.
// Returned meshes are shared and must not be modified.
func (c *Cache) Get(p Primitive) *Mesh {
	// Fast path: read lock
	c.mu.RLock()
	if m, ok := c.items[p]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	m := Build(p)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[p]; ok {
		return existing
	}
	c.items[p] = m
	return m
}

// Len returns the number of cached primitives.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
