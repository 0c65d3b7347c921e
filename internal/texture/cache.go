package texture

import (
	"fmt"
	"image"
	"sync"
)

// Resolver resolves a texture name to a decoded NRGBA image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
	onErr func(path string, err error)
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a new texture cache backed by the given index.
// onErr, if set, is called once per texture that fails to load.
func NewCache(index *Index, onErr func(path string, err error)) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
		onErr: onErr,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found or
// not decodable; failures are cached too.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	c.mu.Unlock()

	if err != nil && c.onErr != nil {
		c.onErr(path, err)
	}
	return img
}

// Preload resolves texName now and reports why it is unusable, so hosts can
// fail at startup instead of drawing untextured frames.
func (c *Cache) Preload(texName string) error {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return fmt.Errorf("texture: %s not found", texName)
	}
	if c.Resolve(texName) != nil {
		return nil
	}
	c.mu.RLock()
	entry := c.items[path]
	c.mu.RUnlock()
	if entry != nil && entry.err != nil {
		return fmt.Errorf("texture: load %s: %w", path, entry.err)
	}
	return fmt.Errorf("texture: load %s: no image", path)
}

// Len returns the number of textures attempted so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
