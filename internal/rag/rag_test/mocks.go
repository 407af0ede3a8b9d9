package rag_test

import (
	"context"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnSearchWithScore  func(ctx context.Context, coll string, vectorVal []float32, limit int) ([]commonModels.ScoredPassage, error)
	OnCreateCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []commonModels.Chunk, vectors [][]float32) error
}

func (m *MockVectorDB) SearchWithScore(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
	if m.OnSearchWithScore != nil {
		return m.OnSearchWithScore(ctx, coll, v, limit)
	}
	return nil, nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []commonModels.Chunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) Model() string { return "mock-embedding" }

// MockIndex implements index.SimilarityIndex
type MockIndex struct {
	OnSearchWithScore func(ctx context.Context, query string, k int) ([]commonModels.ScoredPassage, error)
}

func (m *MockIndex) Search(ctx context.Context, query string, k int) ([]commonModels.Chunk, error) {
	res, err := m.SearchWithScore(ctx, query, k)
	chunks := make([]commonModels.Chunk, len(res))
	for i, r := range res {
		chunks[i] = r.Chunk
	}
	return chunks, err
}

func (m *MockIndex) SearchWithScore(ctx context.Context, query string, k int) ([]commonModels.ScoredPassage, error) {
	if m.OnSearchWithScore != nil {
		return m.OnSearchWithScore(ctx, query, k)
	}
	return nil, nil
}
