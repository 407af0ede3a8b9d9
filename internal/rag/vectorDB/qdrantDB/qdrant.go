package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var logger = logger_i.NewLogger("Qdrant")
var dimension = uint64(config.EmbeddingOutputDimensionality)

// ClientHolder is the single index handle. It is built once in main and passed
// to whoever needs it.
type ClientHolder struct {
	QObj *qdrant.Client
}

// NewClient connects to Qdrant and makes sure the default collection exists.
// The connection is closed when ctx is cancelled.
func NewClient(ctx context.Context) (*ClientHolder, error) {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	createCtx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()
	if err = createCollection(createCtx, client, config.EmbeddingDBName); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not create collection %s: %w", config.EmbeddingDBName, err)
	}

	go closeQdrant(ctx, client)
	return &ClientHolder{QObj: client}, nil
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

// SearchWithScore runs a nearest-neighbour query. Qdrant reports cosine
// similarity, which is turned into a distance here.
func (db *ClientHolder) SearchWithScore(ctx context.Context, collectionName string, vectorFloat []float32, limit int) ([]commonModels.ScoredPassage, error) {
	loggr := logger.WithTrace(ctx)
	if limit <= 0 {
		return nil, nil
	}

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	passages := make([]commonModels.ScoredPassage, 0, len(result))
	for _, hit := range result {
		passages = append(passages, commonModels.ScoredPassage{
			Chunk: chunkFromPayload(hit.Payload),
			Score: 1 - float64(hit.Score),
		})
	}

	loggr.Debug("qdrant search done", "hits", len(passages))
	return passages, nil
}

func (db *ClientHolder) CreateCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payloadFromChunk(chunk)),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func payloadFromChunk(chunk commonModels.Chunk) map[string]any {
	return map[string]any{
		"content":         chunk.Chunk,
		"kind":            string(chunk.Kind),
		"source_tag":      string(chunk.SourceTag),
		"page_num":        int64(chunk.PageNum),
		"slide_number":    int64(chunk.SlideNumber),
		"source_doc_id":   chunk.Doc.Id,
		"doc_name":        chunk.Doc.Name,
		"content_type":    string(chunk.Doc.ContentType),
		"chunk_order":     int64(chunk.ChunkPageOrder),
		"chunk_id":        chunk.ChunkId,
		"table_markup":    chunk.TableMarkup,
		"image_payload":   chunk.ImagePayload,
		"embedding_model": chunk.EmbeddingDimension,
		"ingested_at":     chunk.Doc.LastIngestTimestamp.Unix(),
	}
}

func chunkFromPayload(p map[string]*qdrant.Value) commonModels.Chunk {
	str := func(key string) string {
		if v, ok := p[key]; ok {
			return v.GetStringValue()
		}
		return ""
	}
	num := func(key string) int64 {
		if v, ok := p[key]; ok {
			return v.GetIntegerValue()
		}
		return 0
	}

	return commonModels.Chunk{
		Doc: commonModels.Document{
			Id:                  str("source_doc_id"),
			Name:                str("doc_name"),
			ContentType:         commonModels.DocType(str("content_type")),
			LastIngestTimestamp: time.Unix(num("ingested_at"), 0),
		},
		ChunkId:            str("chunk_id"),
		Chunk:              str("content"),
		Kind:               commonModels.ContentKind(str("kind")),
		SourceTag:          commonModels.SourceTag(str("source_tag")),
		PageNum:            int(num("page_num")),
		SlideNumber:        int(num("slide_number")),
		ChunkPageOrder:     int(num("chunk_order")),
		TableMarkup:        str("table_markup"),
		ImagePayload:       str("image_payload"),
		EmbeddingDimension: str("embedding_model"),
	}
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
