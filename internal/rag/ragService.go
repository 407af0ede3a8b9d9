package rag

import (
	"context"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/domain/jobModel"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/internal/rag/chunking"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/internal/rag/index"
	"github.com/akolanti/CyberRAG/internal/rag/ingest"
	"github.com/akolanti/CyberRAG/internal/rag/retrieval"
	"github.com/akolanti/CyberRAG/internal/rag/vectorDB"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

/*
Service is the only thing handlers, workers and the MCP tool talk to.
The private service struct owns the retriever and the ingestion pipeline;
every external handle (index, vector store, embedder) is built once in main
and passed in through NewService, so tests can swap any of them for mocks.
*/
type Service interface {
	Retrieve(ctx context.Context, query string, k int, opts RetrieveOptions) ([]commonModels.Chunk, error)
	RetrieveWithScores(ctx context.Context, query string, k int) ([]commonModels.ScoredPassage, error)
	ChunkDocuments(contents []commonModels.Content, typeHint commonModels.SourceTag) []commonModels.Chunk
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type RetrieveOptions = retrieval.Options

func DefaultRetrieveOptions() RetrieveOptions {
	return retrieval.DefaultOptions()
}

type service struct {
	retriever *retrieval.Retriever
	pipeline  ingest.Pipeline
	logger    *logger_i.Logger
}

// NewService constructor
func NewService(idx index.SimilarityIndex, vector vectorDB.DataProcessor, em embedding.Embedder, lexicon *config.Lexicon) Service {
	return &service{
		retriever: retrieval.NewRetriever(idx, lexicon),
		pipeline: ingest.Pipeline{
			Embedder:   em,
			VectorDB:   vector,
			Normalizer: ingest.NewNormalizer(lexicon.SlideBoilerplate),
			Chunker:    chunking.NewSelector(),
		},
		logger: logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) Retrieve(ctx context.Context, query string, k int, opts RetrieveOptions) ([]commonModels.Chunk, error) {
	scored, err := s.retrieve(ctx, query, k, opts)
	if err != nil {
		return nil, err
	}
	return retrieval.Chunks(scored), nil
}

func (s *service) RetrieveWithScores(ctx context.Context, query string, k int) ([]commonModels.ScoredPassage, error) {
	return s.retrieve(ctx, query, k, DefaultRetrieveOptions())
}

func (s *service) retrieve(ctx context.Context, query string, k int, opts RetrieveOptions) ([]commonModels.ScoredPassage, error) {
	retrieveCtx, cancel := context.WithTimeout(ctx, config.RetrieveTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieve", time.Since(start)) }()

	res, err := s.retriever.RetrieveWithScores(retrieveCtx, query, k, opts)
	if err != nil {
		s.logger.WithTrace(ctx).Warn("retrieve failed", "error", err)
	}
	return res, err
}

// ChunkDocuments expects content that has already been through the normalizer.
func (s *service) ChunkDocuments(contents []commonModels.Content, typeHint commonModels.SourceTag) []commonModels.Chunk {
	return s.pipeline.Chunker.Chunk(contents, typeHint)
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()

	ingestCtx, cancel := context.WithTimeout(ctx, config.IngestJobTimeout)
	defer cancel()

	j := ingest.ProcessDocumentIngestion(ingestCtx, job, s.pipeline)
	if j.Status != jobModel.JobStatusComplete {
		return s.jobError(j, "INGESTION_FAILURE")
	}
	s.logger.WithTrace(ctx).Info("document ingested", "jobId", j.Id, "chunks", j.JobPayload.ChunkCount)
	return j
}
