package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/data/redisStore"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

type RedisEmbeddingCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisEmbeddingCache returns nil when redis cannot be reached.
func GetRedisEmbeddingCache(ctx context.Context) *RedisEmbeddingCache {
	s := redisStore.GetRedisStore(ctx, config.RedisEmbeddingCache)
	if s == nil {
		return nil
	}
	return NewRedisEmbeddingCache(s)
}

func NewRedisEmbeddingCache(s *redisStore.Store) *RedisEmbeddingCache {
	return &RedisEmbeddingCache{
		store:  s,
		logger: logger_i.NewLogger("EmbeddingCache"),
	}
}

func (c *RedisEmbeddingCache) Get(ctx context.Context, key string) ([]float32, bool) {
	raw, err := c.store.GetBytes(ctx, key)
	if c.store.IsNil(err) {
		return nil, false
	} else if err != nil {
		c.logger.WithTrace(ctx).Warn("embedding cache read failed", "error", err)
		return nil, false
	}

	var vector []float32
	if err = json.Unmarshal(raw, &vector); err != nil {
		c.logger.WithTrace(ctx).Warn("embedding cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return vector, true
}

func (c *RedisEmbeddingCache) Set(ctx context.Context, key string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, data, config.RedisEmbeddingCacheTTL)
}
