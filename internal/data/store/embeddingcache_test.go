package store_test

import (
	"context"
	"testing"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/data/store"
)

func TestRedisEmbeddingCache(t *testing.T) {
	mr, internalStore := newMiniStore(t)
	cache := store.NewRedisEmbeddingCache(internalStore)
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "emb:m:1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	want := []float32{0.25, -1, 3.5}
	if err := cache.Set(ctx, "emb:m:1", want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := cache.Get(ctx, "emb:m:1")
	if !ok || len(got) != len(want) {
		t.Fatalf("expected hit, got %v ok=%v", got, ok)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
	if ttl := mr.TTL("emb:m:1"); ttl != config.RedisEmbeddingCacheTTL {
		t.Errorf("expected ttl %v, got %v", config.RedisEmbeddingCacheTTL, ttl)
	}

	_ = mr.Set("emb:m:2", "garbage")
	if _, ok = cache.Get(ctx, "emb:m:2"); ok {
		t.Error("expected corrupt entry to be a miss")
	}
}

func TestRedisEmbeddingCache_Offline(t *testing.T) {
	mr, internalStore := newMiniStore(t)
	cache := store.NewRedisEmbeddingCache(internalStore)
	mr.Close()

	if _, ok := cache.Get(context.Background(), "k"); ok {
		t.Error("expected miss when redis is down")
	}
	if err := cache.Set(context.Background(), "k", []float32{1}); err == nil {
		t.Error("expected error when redis is down")
	}
}

func TestInMemoryEmbeddingCache_Evicts(t *testing.T) {
	cache := store.InitInMemoryEmbeddingCache(2)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []float32{1})
	_ = cache.Set(ctx, "b", []float32{2})
	_ = cache.Set(ctx, "c", []float32{3})

	if _, ok := cache.Get(ctx, "a"); ok {
		t.Error("expected a to be evicted")
	}
	if v, ok := cache.Get(ctx, "c"); !ok || v[0] != 3 {
		t.Errorf("expected c to be present, got %v", v)
	}
}
