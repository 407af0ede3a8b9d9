package googleEmbedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
	"google.golang.org/genai"
)

var logger = logger_i.NewLogger("google_embedding")
var dimension int32 = config.EmbeddingOutputDimensionality

const retryDelay = 5 * time.Second

type client struct {
	genAi        *genai.Client
	model        string
	pollInterval time.Duration
}

// NewGoogleEmbedder builds a Gemini embedder. httpClient may be nil.
func NewGoogleEmbedder(ctx context.Context, modelName string, apikey string, httpClient *http.Client) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, fmt.Errorf("google embedding: missing api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("google embedding: %w", err)
	}
	logger.Info("Google Embedding client created", "model", modelName)
	return &client{genAi: c, model: modelName, pollInterval: time.Minute}, nil
}

func (c *client) Model() string {
	return c.model
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.WithTrace(ctx)

	result, err := c.doCall(ctx, genai.Text(query), embedding.TaskQuery)
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("google embedding: empty response")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isLargeDataSet bool) ([][]float32, error) {
	log := logger.WithTrace(ctx).With("chunks", len(chunks))

	if !isLargeDataSet {
		res, err := c.doCall(ctx, getContent(chunks), embedding.TaskDocument)
		if err != nil && doRetry(err, log) {
			log.Debug("Retrying", "delay", retryDelay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
			res, err = c.doCall(ctx, getContent(chunks), embedding.TaskDocument)
		}
		if err != nil {
			log.Error("Error getting Embeddings from Google", "error", err)
			return nil, err
		}

		embeddingResults := make([][]float32, 0, len(res.Embeddings))
		for _, r := range res.Embeddings {
			embeddingResults = append(embeddingResults, r.Values)
		}
		return embeddingResults, nil
	}

	src := genai.EmbeddingsBatchJobSource{InlinedRequests: getInlinedBatchRequests(chunks)}
	displayName := fmt.Sprintf("ingest-%d", time.Now().UnixNano())
	log = log.With("batchJobName", displayName)

	job, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &src, &genai.CreateEmbeddingsBatchJobConfig{DisplayName: displayName})
	if err != nil {
		log.Error("Error creating batch Embeddings job", "error", err)
		return nil, err
	}

	answer, err := c.pollForAnswer(ctx, job.Name, log)
	if err != nil {
		return nil, err
	}
	return downloadAnswerFromClient(answer, log)
}

func (c *client) doCall(ctx context.Context, content []*genai.Content, task embedding.TaskType) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             string(task),
	})
}
