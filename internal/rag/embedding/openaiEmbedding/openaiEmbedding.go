package openaiEmbedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger = logger_i.NewLogger("openai_embedding")

type client struct {
	api   openai.Client
	model string
}

// NewOpenAIEmbedder builds an embedder for the OpenAI embeddings endpoint.
// httpClient may be nil.
func NewOpenAIEmbedder(modelName string, apikey string, httpClient *http.Client) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, fmt.Errorf("openai embedding: missing api key")
	}
	opts := []option.RequestOption{option.WithAPIKey(apikey)}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	logger.Info("OpenAI Embedding client created", "model", modelName)
	return &client{api: openai.NewClient(opts...), model: modelName}, nil
}

func (c *client) Model() string {
	return c.model
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		logger.WithTrace(ctx).Error("Error getting query embedding from OpenAI", "error", err)
		return nil, err
	}
	return vectors[0], nil
}

// BatchEmbedding has no async path; large sets go through in EmbeddingBatchSize slices.
func (c *client) BatchEmbedding(ctx context.Context, chunks []string, _ bool) ([][]float32, error) {
	out := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += config.EmbeddingBatchSize {
		end := min(start+config.EmbeddingBatchSize, len(chunks))
		vectors, err := c.embed(ctx, chunks[start:end])
		if err != nil {
			logger.WithTrace(ctx).Error("Error getting Embeddings from OpenAI", "error", err, "offset", start)
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (c *client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("openai embedding: index %d out of range", d.Index)
		}
		vectors[d.Index] = toFloat32(d.Embedding)
	}
	return vectors, nil
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
