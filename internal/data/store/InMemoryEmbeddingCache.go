package store

import (
	"context"
	"sync"
)

// InMemoryEmbeddingCache is the fallback when redis is offline. It drops
// everything once maxEntries is reached.
type InMemoryEmbeddingCache struct {
	mu         sync.RWMutex
	vectors    map[string][]float32
	maxEntries int
}

func InitInMemoryEmbeddingCache(maxEntries int) *InMemoryEmbeddingCache {
	return &InMemoryEmbeddingCache{
		vectors:    make(map[string][]float32),
		maxEntries: maxEntries,
	}
}

func (c *InMemoryEmbeddingCache) Get(ctx context.Context, key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vectors[key]
	return v, ok
}

func (c *InMemoryEmbeddingCache) Set(ctx context.Context, key string, vector []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxEntries > 0 && len(c.vectors) >= c.maxEntries {
		clear(c.vectors)
	}
	c.vectors[key] = vector
	return nil
}
