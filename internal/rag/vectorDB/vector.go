package vectorDB

import (
	"context"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

// DataProcessor is the vector store. Scores returned by SearchWithScore are
// distances: lower is more relevant, whatever metric the store uses internally.
type DataProcessor interface {
	SearchWithScore(ctx context.Context, collectionName string, vectorVal []float32, limit int) ([]commonModels.ScoredPassage, error)

	// CreateCollection Ingest document call
	CreateCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.Chunk, vectors [][]float32) error
}
