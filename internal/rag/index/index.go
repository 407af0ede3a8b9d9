// Package index turns query text into vector searches against the knowledge base.
package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/internal/rag/vectorDB"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

// SimilarityIndex scores are distances, lower is more relevant, for every
// call against one collection.
type SimilarityIndex interface {
	Search(ctx context.Context, queryText string, k int) ([]commonModels.Chunk, error)
	SearchWithScore(ctx context.Context, queryText string, k int) ([]commonModels.ScoredPassage, error)
}

var ErrIndexUnavailable = errors.New("similarity index unavailable")

type TextIndex struct {
	embedder   embedding.Embedder
	db         vectorDB.DataProcessor
	cache      embedding.Cache
	collection string
	breaker    *gobreaker.CircuitBreaker
	logger     *logger_i.Logger
}

// NewTextIndex wires an embedder to a vector store. cache may be nil.
func NewTextIndex(em embedding.Embedder, db vectorDB.DataProcessor, cache embedding.Cache, collection string) *TextIndex {
	log := logger_i.NewLogger("Similarity Index")
	settings := gobreaker.Settings{
		Name:        "similarity-index",
		MaxRequests: config.IndexBreakerMaxRequests,
		Interval:    config.IndexBreakerInterval,
		Timeout:     config.IndexBreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.IndexBreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.IndexBreakerFailureRatio
		},
		// a caller giving up is not the index failing
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &TextIndex{
		embedder:   em,
		db:         db,
		cache:      cache,
		collection: collection,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     log,
	}
}

func (t *TextIndex) Search(ctx context.Context, queryText string, k int) ([]commonModels.Chunk, error) {
	scored, err := t.SearchWithScore(ctx, queryText, k)
	if err != nil {
		return nil, err
	}
	chunks := make([]commonModels.Chunk, len(scored))
	for i, p := range scored {
		chunks[i] = p.Chunk
	}
	return chunks, nil
}

func (t *TextIndex) SearchWithScore(ctx context.Context, queryText string, k int) ([]commonModels.ScoredPassage, error) {
	res, err := t.breaker.Execute(func() (interface{}, error) {
		vector, err := t.embed(ctx, queryText)
		if err != nil {
			return nil, fmt.Errorf("embedding query: %w", err)
		}

		start := time.Now()
		defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()
		return t.db.SearchWithScore(ctx, t.collection, vector, k)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return res.([]commonModels.ScoredPassage), nil
}

func (t *TextIndex) embed(ctx context.Context, text string) ([]float32, error) {
	key := embedding.CacheKey(t.embedder.Model(), text)
	if t.cache != nil {
		if v, ok := t.cache.Get(ctx, key); ok {
			metrics.CaptureEmbeddingCacheLookup(true)
			return v, nil
		}
		metrics.CaptureEmbeddingCacheLookup(false)
	}

	start := time.Now()
	vector, err := t.embedder.GetEmbedding(ctx, text)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		if err = t.cache.Set(ctx, key, vector); err != nil {
			t.logger.WithTrace(ctx).Warn("could not cache query embedding", "error", err)
		}
	}
	return vector, nil
}
