package retrieval

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

func TestMain(m *testing.M) {
	logger_i.InitWithWriter(io.Discard)
	os.Exit(m.Run())
}

func scores(passages []commonModels.ScoredPassage) []float64 {
	out := make([]float64, len(passages))
	for i, p := range passages {
		out[i] = p.Score
	}
	return out
}

func TestRetrieve_CollapsesAndRanks(t *testing.T) {
	idx := newFakeIndex()
	idx.results[variantOriginal] = []commonModels.ScoredPassage{
		passage("A", 0.5), passage("B", 0.3), passage("C", 0.9), passage("D", 0.2),
	}
	idx.results[variantMixed] = []commonModels.ScoredPassage{
		passage("A", 0.1), passage("B", 0.35), passage("C", 0.05),
	}
	idx.results[variantThai] = []commonModels.ScoredPassage{
		passage("D", 0.01), passage("A", 0.02), passage("B", 0.03),
	}
	r := NewRetriever(idx, webSecurityLexicon())

	got, err := r.RetrieveWithScores(context.Background(), "web security", 3, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"D", "B", "A"}, []string{got[0].Chunk.Chunk, got[1].Chunk.Chunk, got[2].Chunk.Chunk})
	// first variant's score survives even though later variants scored lower
	assert.Equal(t, []float64{0.2, 0.3, 0.5}, scores(got))
	assert.Len(t, idx.recorded(), 3)
}

func TestRetrieve_AdaptiveKForThaiRelatedQuery(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		searchK int
	}{
		{"small k grows by delta", 3, 8},
		{"capped at max", 12, 15},
		{"never below requested", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newFakeIndex()
			var many []commonModels.ScoredPassage
			for i := 0; i < 30; i++ {
				many = append(many, passage(string(rune('a'+i)), float64(i)))
			}
			idx.results["Thailand web security rules"] = many
			r := NewRetriever(idx, webSecurityLexicon())

			got, err := r.Retrieve(context.Background(), "Thailand web security rules", tt.k, DefaultOptions())

			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), tt.k)
			calls := idx.recorded()
			require.NotEmpty(t, calls)
			for _, c := range calls {
				assert.Equal(t, tt.searchK, c.k, "variant %q", c.query)
			}
		})
	}
}

func TestRetrieve_AdaptiveKDisabled(t *testing.T) {
	idx := newFakeIndex()
	r := NewRetriever(idx, webSecurityLexicon())

	opts := DefaultOptions()
	opts.AdaptiveK = false
	_, err := r.Retrieve(context.Background(), "Thailand web security", 4, opts)

	require.NoError(t, err)
	for _, c := range idx.recorded() {
		assert.Equal(t, 4, c.k)
	}
}

func TestRetrieve_ThaiQueryAdapts(t *testing.T) {
	idx := newFakeIndex()
	r := NewRetriever(idx, webSecurityLexicon())

	_, err := r.Retrieve(context.Background(), "ความปลอดภัยเว็บไซต์ของหน่วยงาน", 5, DefaultOptions())

	require.NoError(t, err)
	for _, c := range idx.recorded() {
		assert.Equal(t, 10, c.k)
	}
}

func TestRetrieve_MonolingualSingleSearch(t *testing.T) {
	idx := newFakeIndex()
	idx.results["Thailand web security"] = []commonModels.ScoredPassage{passage("x", 0.4), passage("y", 0.1)}
	r := NewRetriever(idx, webSecurityLexicon())

	opts := DefaultOptions()
	opts.Multilingual = false
	got, err := r.RetrieveWithScores(context.Background(), "Thailand web security", 5, opts)

	require.NoError(t, err)
	assert.Equal(t, []call{{"Thailand web security", 5}}, idx.recorded())
	assert.Equal(t, []float64{0.1, 0.4}, scores(got))
}

func TestRetrieve_Validation(t *testing.T) {
	idx := newFakeIndex()
	r := NewRetriever(idx, webSecurityLexicon())

	_, err := r.Retrieve(context.Background(), "   ", 5, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = r.Retrieve(context.Background(), "web security", 0, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = r.Retrieve(context.Background(), "web security", config.MaxRequestedK+1, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidK)

	assert.Empty(t, idx.recorded(), "validation failures must not reach the index")
}

func TestRetrieve_FailedVariantIsSkipped(t *testing.T) {
	idx := newFakeIndex()
	idx.results[variantOriginal] = []commonModels.ScoredPassage{passage("A", 0.4)}
	idx.errs[variantMixed] = errors.New("qdrant unavailable")
	idx.results[variantThai] = []commonModels.ScoredPassage{passage("B", 0.2)}
	r := NewRetriever(idx, webSecurityLexicon())

	got, err := r.RetrieveWithScores(context.Background(), "web security", 5, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.4}, scores(got))
}

func TestRetrieve_TimedOutVariantIsSkipped(t *testing.T) {
	idx := newFakeIndex()
	idx.results[variantOriginal] = []commonModels.ScoredPassage{passage("A", 0.4)}
	idx.block[variantMixed] = true
	r := NewRetriever(idx, webSecurityLexicon())
	r.aggregator.timeout = 20 * time.Millisecond

	got, err := r.RetrieveWithScores(context.Background(), "web security", 5, DefaultOptions())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRetrieve_CallerCancellation(t *testing.T) {
	idx := newFakeIndex()
	idx.block[variantOriginal] = true
	r := NewRetriever(idx, webSecurityLexicon())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Retrieve(ctx, "web security", 5, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetrieve_NoResults(t *testing.T) {
	r := NewRetriever(newFakeIndex(), webSecurityLexicon())

	got, err := r.Retrieve(context.Background(), "web security", 5, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieve_NoiseFilterOption(t *testing.T) {
	idx := newFakeIndex()
	idx.results["owasp"] = []commonModels.ScoredPassage{passage("References: [1] OWASP", 0.1), passage("Use parameterized queries", 0.3)}
	r := NewRetriever(idx, webSecurityLexicon())

	filtered, err := r.Retrieve(context.Background(), "owasp", 5, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	opts := DefaultOptions()
	opts.FilterNoise = false
	unfiltered, err := r.Retrieve(context.Background(), "owasp", 5, opts)
	require.NoError(t, err)
	assert.Len(t, unfiltered, 2)
}

func TestRetrieve_DistinctFingerprintsAndBounded(t *testing.T) {
	idx := newFakeIndex()
	long := "Access control enforces policy such that users cannot act outside of their intended permissions and roles. "
	idx.results[variantOriginal] = []commonModels.ScoredPassage{
		passage(long+"variant one", 0.3),
		passage(long+"variant two", 0.1),
		passage("short", 0.2),
	}
	idx.results[variantThai] = []commonModels.ScoredPassage{passage("short", 0.05), passage("other", 0.6)}
	r := NewRetriever(idx, webSecurityLexicon())

	got, err := r.RetrieveWithScores(context.Background(), "web security", 2, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].Chunk.Fingerprint(), got[1].Chunk.Fingerprint())
	assert.True(t, got[0].Score <= got[1].Score)
	assert.Equal(t, []float64{0.2, 0.3}, scores(got))
}
