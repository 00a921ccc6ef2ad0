package texture

import (
	"image"
	"sync"
)

// Cache memoizes decoded textures by identifier. Entries are never evicted:
// viewfinder textures are a small, stable set, so a process-lifetime cache
// is acceptable. It is safe for concurrent use; overlapping misses for the
// same identifier may both load, last writer wins with an equivalent image.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*image.NRGBA
	loader Loader
}

// NewCache creates a cache backed by the given loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		items:  make(map[string]*image.NRGBA),
		loader: loader,
	}
}

// Resolve returns the cached texture for name, loading and caching it on
// first use. Load failures are not cached and propagate to the caller.
func (c *Cache) Resolve(name string) (*image.NRGBA, error) {
	c.mu.RLock()
	if img, ok := c.items[name]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := c.loader.Load(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if cached, ok := c.items[name]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.items[name] = img
	c.mu.Unlock()

	return img, nil
}
