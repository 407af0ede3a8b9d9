// Command ingest loads a set of local documents into the vector store in one
// run, each tagged with the extractor that matches it:
//
//	ingest -textbook owasp.pdf -slides lecture1.pdf,lecture2.pdf -thai gov-standard.pdf
//
// With -dry-run nothing is embedded; the chunk counts per document are printed instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/customHttpClient"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/domain/jobModel"
	"github.com/akolanti/CyberRAG/internal/rag"
	"github.com/akolanti/CyberRAG/internal/rag/chunking"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/CyberRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/CyberRAG/internal/rag/index"
	"github.com/akolanti/CyberRAG/internal/rag/ingest"
	"github.com/akolanti/CyberRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

type document struct {
	path string
	tag  commonModels.SourceTag
}

func main() {
	config.LoadEnv()
	logger_i.Init()
	logger := logger_i.NewLogger("ingest-cli")

	textbook := flag.String("textbook", "", "comma separated textbook files")
	slides := flag.String("slides", "", "comma separated slide decks")
	thai := flag.String("thai", "", "comma separated Thai OCR documents")
	other := flag.String("other", "", "comma separated files with no specific layout")
	dryRun := flag.Bool("dry-run", false, "extract and chunk only, do not embed or store")
	flag.Parse()

	docs := collect(map[commonModels.SourceTag]string{
		commonModels.SourceTextbook: *textbook,
		commonModels.SourceSlide:    *slides,
		commonModels.SourceThaiOCR:  *thai,
		commonModels.SourceOther:    *other,
	})
	if len(docs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lexicon := config.DefaultLexicon()
	if config.LexiconPath != "" {
		var err error
		if lexicon, err = config.LoadLexicon(config.LexiconPath); err != nil {
			logger.Error("Could not load lexicon", "path", config.LexiconPath, "err", err)
			os.Exit(1)
		}
	}

	if *dryRun {
		os.Exit(dryRunAll(ctx, docs, lexicon, logger))
	}

	vectorDB, err := qdrantDB.NewClient(ctx)
	if err != nil {
		logger.Error("Vector DB failed to initialize", "err", err)
		os.Exit(1)
	}
	embedder, err := newEmbedder(ctx)
	if err != nil {
		logger.Error("Embedding service failed to initialize", "err", err)
		os.Exit(1)
	}
	service := rag.NewService(index.NewTextIndex(embedder, vectorDB, nil, config.EmbeddingDBName), vectorDB, embedder, lexicon)

	failed := 0
	for _, d := range docs {
		job := jobModel.Job{
			Id:          uuid.NewString(),
			JobType:     jobModel.JobTypeIngest,
			CreatedTime: time.Now(),
			Status:      jobModel.JobStatusRunning,
			CurrentStep: jobModel.IngestInit,
			JobPayload: jobModel.JobPayload{
				IngestFileName: filepath.Base(d.path),
				IngestURL:      d.path,
				SourceTag:      d.tag,
			},
		}
		res := service.IngestDocument(ctx, job)
		if res.Status != jobModel.JobStatusComplete {
			failed++
			logger.Error("Ingestion failed", "file", d.path, "reason", res.Error.Message, "retry", res.Error.Retry)
			continue
		}
		fmt.Printf("%-10s %-40s contents=%d chunks=%d\n", d.tag, d.path, res.JobPayload.ContentCount, res.JobPayload.ChunkCount)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func collect(byTag map[commonModels.SourceTag]string) []document {
	var docs []document
	// fixed order keeps runs reproducible
	for _, tag := range []commonModels.SourceTag{commonModels.SourceTextbook, commonModels.SourceSlide, commonModels.SourceThaiOCR, commonModels.SourceOther} {
		for _, p := range strings.Split(byTag[tag], ",") {
			if p = strings.TrimSpace(p); p != "" {
				docs = append(docs, document{path: p, tag: tag})
			}
		}
	}
	return docs
}

func dryRunAll(ctx context.Context, docs []document, lexicon *config.Lexicon, logger *logger_i.Logger) int {
	p := ingest.Pipeline{
		Normalizer: ingest.NewNormalizer(lexicon.SlideBoilerplate),
		Chunker:    chunking.NewSelector(),
	}
	code := 0
	for _, d := range docs {
		contents, chunks, err := p.ExtractAndChunk(ctx, d.path, uuid.NewString(), filepath.Base(d.path), d.tag)
		if err != nil {
			logger.Error("Extraction failed", "file", d.path, "err", err)
			code = 1
			continue
		}
		fmt.Printf("%-10s %-40s strategy=%s contents=%d chunks=%d\n", d.tag, d.path, chunking.StrategyFor(d.tag), len(contents), len(chunks))
	}
	return code
}

func newEmbedder(ctx context.Context) (embedding.Embedder, error) {
	httpClient := customHttpClient.Pooled()
	switch config.EmbeddingProvider {
	case config.EmbeddingProviderGoogle:
		return googleEmbedding.NewGoogleEmbedder(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey, httpClient)
	case config.EmbeddingProviderOpenAI:
		return openaiEmbedding.NewOpenAIEmbedder(config.OpenAIEmbeddingModel, config.OpenAIAPIKey, httpClient)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", config.EmbeddingProvider)
	}
}
