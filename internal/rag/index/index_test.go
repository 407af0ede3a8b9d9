package index

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/data/store"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

type mockEmbedder struct {
	calls int
	err   error
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []float32{float32(len(query))}, nil
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	return make([][]float32, len(chunks)), nil
}

func (m *mockEmbedder) Model() string { return "mock-model" }

type mockVectorDB struct {
	onSearch func(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error)
}

func (m *mockVectorDB) SearchWithScore(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
	return m.onSearch(ctx, coll, v, limit)
}
func (m *mockVectorDB) CreateCollection(ctx context.Context, name string) error { return nil }
func (m *mockVectorDB) UpsertBatch(ctx context.Context, coll string, c []commonModels.Chunk, v [][]float32) error {
	return nil
}

func TestSearchWithScore_PassesCollectionAndLimit(t *testing.T) {
	var gotColl string
	var gotLimit int
	db := &mockVectorDB{onSearch: func(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
		gotColl, gotLimit = coll, limit
		return []commonModels.ScoredPassage{{Chunk: commonModels.Chunk{Chunk: "a"}, Score: 0.1}}, nil
	}}
	idx := NewTextIndex(&mockEmbedder{}, db, nil, "kb")

	got, err := idx.SearchWithScore(context.Background(), "query", 7)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "kb", gotColl)
	assert.Equal(t, 7, gotLimit)
}

func TestSearch_DropsScores(t *testing.T) {
	db := &mockVectorDB{onSearch: func(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
		return []commonModels.ScoredPassage{{Chunk: commonModels.Chunk{Chunk: "a"}}, {Chunk: commonModels.Chunk{Chunk: "b"}}}, nil
	}}
	idx := NewTextIndex(&mockEmbedder{}, db, nil, "kb")

	got, err := idx.Search(context.Background(), "q", 2)

	require.NoError(t, err)
	assert.Equal(t, "b", got[1].Chunk)
}

func TestSearchWithScore_UsesEmbeddingCache(t *testing.T) {
	em := &mockEmbedder{}
	db := &mockVectorDB{onSearch: func(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
		return nil, nil
	}}
	idx := NewTextIndex(em, db, store.InitInMemoryEmbeddingCache(10), "kb")

	for i := 0; i < 3; i++ {
		_, err := idx.SearchWithScore(context.Background(), "same query", 5)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, em.calls)
}

func TestSearchWithScore_EmbeddingError(t *testing.T) {
	db := &mockVectorDB{onSearch: func(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
		t.Fatal("vector search must not run without an embedding")
		return nil, nil
	}}
	idx := NewTextIndex(&mockEmbedder{err: errors.New("quota")}, db, nil, "kb")

	_, err := idx.SearchWithScore(context.Background(), "q", 5)
	assert.Error(t, err)
}

func TestSearchWithScore_BreakerOpens(t *testing.T) {
	calls := 0
	db := &mockVectorDB{onSearch: func(ctx context.Context, coll string, v []float32, limit int) ([]commonModels.ScoredPassage, error) {
		calls++
		return nil, errors.New("qdrant down")
	}}
	idx := NewTextIndex(&mockEmbedder{}, db, nil, "kb")

	for i := 0; i < config.IndexBreakerMinRequests; i++ {
		_, _ = idx.SearchWithScore(context.Background(), "q", 5)
	}
	_, err := idx.SearchWithScore(context.Background(), "q", 5)

	assert.ErrorIs(t, err, ErrIndexUnavailable)
	assert.Equal(t, config.IndexBreakerMinRequests, calls)
}
