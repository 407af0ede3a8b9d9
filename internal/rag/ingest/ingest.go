package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/domain/jobModel"
	"github.com/akolanti/CyberRAG/internal/rag/chunking"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/internal/rag/vectorDB"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var logger = logger_i.NewLogger("Document Ingestion")

var ErrUnsupportedDocument = errors.New("unsupported document type")

// Pipeline holds what one document passes through on its way to the index.
type Pipeline struct {
	Embedder   embedding.Embedder
	VectorDB   vectorDB.DataProcessor
	Normalizer *Normalizer
	Chunker    *chunking.Selector
}

// ExtractAndChunk runs extraction, normalization and chunking for one file.
func (p Pipeline) ExtractAndChunk(ctx context.Context, path string, docId string, name string, tag commonModels.SourceTag) ([]commonModels.Content, []commonModels.Chunk, error) {
	log := logger.WithTrace(ctx).With("doc", name)

	docType := getDocType(path)
	if docType == commonModels.ERR {
		return nil, nil, ErrUnsupportedDocument
	}

	raw, err := extractContent(source{path: path, docId: docId, name: name, tag: tag}, docType, log)
	if err != nil {
		return nil, nil, err
	}
	contents := p.Normalizer.Normalize(raw)
	log.Debug("normalized content", "raw", len(raw), "kept", len(contents))

	return contents, p.Chunker.Chunk(contents, tag), nil
}

// ProcessDocumentIngestion never returns an error; the outcome is on the job.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, p Pipeline) jobModel.Job {
	log := logger.WithTrace(ctx).With("jobId", job.Id)

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	log.Debug("Processing document", "filename", docName, "path", docPath, "sourceTag", job.JobPayload.SourceTag)
	defer removeUpload(docPath, log)

	job.CurrentStep = jobModel.IngestExtracting
	if err := p.VectorDB.CreateCollection(ctx, config.EmbeddingDBName); err != nil {
		log.Error("Error creating collection", "error", err)
		return failed(job, "Vector store unavailable", true)
	}

	contents, chunks, err := p.ExtractAndChunk(ctx, docPath, job.Id, docName, job.JobPayload.SourceTag)
	if errors.Is(err, ErrUnsupportedDocument) {
		log.Error("Error getting document type", "path", docPath)
		return failed(job, "Unsupported document type", false)
	}
	if err != nil {
		log.Error("Error processing document", "error", err)
		return failed(job, "Error extracting document content", false)
	}

	job.CurrentStep = jobModel.IngestChunking
	job.JobPayload.ContentCount = len(contents)
	job.JobPayload.ChunkCount = len(chunks)
	log.Debug("Processing document", "contents", len(contents), "chunks", len(chunks))

	doc := commonModels.Document{
		Id:                  job.Id,
		Name:                docName,
		LastIngestTimestamp: time.Now(),
		ContentType:         getDocType(docPath),
	}
	chunks = PrepareChunks(chunks, doc, p.Embedder.Model())

	job.CurrentStep = jobModel.EmbeddingAPICall
	if err = BatchIngest(ctx, chunks, p.VectorDB, p.Embedder, log); err != nil {
		log.Error("Error processing document", "error", err)
		return failed(job, "Error indexing document", true)
	}

	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

func failed(job jobModel.Job, message string, retry bool) jobModel.Job {
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.Error.Message = message
	job.Error.Retry = retry
	return job
}

// uploads live in the temp upload dir; files given to the batch CLI are left alone
func removeUpload(path string, log *logger_i.Logger) {
	if path == "" || !strings.Contains(filepath.ToSlash(path), "/"+config.UploadDirName+"/") {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Error("Error removing file", "error", err)
	}
}
