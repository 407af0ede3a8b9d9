package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/internal/rag/vectorDB"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt", ".md":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

func extractContent(src source, contentType commonModels.DocType, log *logger_i.Logger) ([]commonModels.Content, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(src, log)
	case commonModels.DOCX, commonModels.TXT:
		return extractDocxTxtRtf(src, log)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// PrepareChunks stamps the ingested document and embedding model onto each chunk.
func PrepareChunks(chunks []commonModels.Chunk, doc commonModels.Document, embeddingModel string) []commonModels.Chunk {
	for i := range chunks {
		chunks[i].Doc = doc
		chunks[i].EmbeddingDimension = embeddingModel
	}
	return chunks
}

// BatchIngest embeds and upserts in EmbeddingBatchSize slices. It stops at the
// first failed batch; batches already written stay in the store.
func BatchIngest(ctx context.Context, chunks []commonModels.Chunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder, log *logger_i.Logger) error {
	isHugeDataSet := len(chunks) > config.HugeDataSetChunkCount
	if isHugeDataSet {
		log.Debug("Is a huge dataset", "chunks", len(chunks))
	}

	for i := 0; i < len(chunks); i += config.EmbeddingBatchSize {
		end := min(i+config.EmbeddingBatchSize, len(chunks))
		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Chunk
		}

		log.Debug("Starting embedding call", "batch start", i, "batch length", len(currentBatch))
		start := time.Now()
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		metrics.CaptureExecutionMetrics("embedding_batch", time.Since(start))
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		start = time.Now()
		err = vectorDatabase.UpsertBatch(ctx, config.EmbeddingDBName, currentBatch, vectors)
		metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start))
		if err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}
	return nil
}
