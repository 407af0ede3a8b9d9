package openaiEmbedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &client{
		api:   openai.NewClient(option.WithAPIKey("test"), option.WithBaseURL(srv.URL), option.WithMaxRetries(0)),
		model: "text-embedding-3-small",
	}
}

func TestEmbed_ReordersByIndex(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float64{0.2}},
				{"object": "embedding", "index": 0, "embedding": []float64{0.1}},
			},
			"usage": map[string]any{"prompt_tokens": 2, "total_tokens": 2},
		})
	})

	got, err := c.BatchEmbedding(context.Background(), []string{"a", "b"}, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0][0], 1e-6)
	assert.InDelta(t, 0.2, got[1][0], 1e-6)
}

func TestEmbed_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	})

	_, err := c.GetEmbedding(context.Background(), "q")
	assert.Error(t, err)
}

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	_, err := NewOpenAIEmbedder("m", "", nil)
	assert.Error(t, err)
}
