package embedding

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

type TaskType string

const (
	TaskQuery    TaskType = "RETRIEVAL_QUERY"
	TaskDocument TaskType = "RETRIEVAL_DOCUMENT"
)

type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error)
	Model() string
}

// Cache stores query vectors. Misses and backend errors both report ok=false.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, vector []float32) error
}

// CacheKey is stable across processes so a shared cache can be reused after restarts.
func CacheKey(model string, text string) string {
	return fmt.Sprintf("emb:%s:%016x", model, xxhash.Sum64String(text))
}
