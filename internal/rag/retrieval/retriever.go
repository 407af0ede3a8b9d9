package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/internal/rag/expansion"
	"github.com/akolanti/CyberRAG/internal/rag/index"
	"github.com/akolanti/CyberRAG/internal/rag/language"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrInvalidK   = errors.New("k must be between 1 and the configured maximum")
)

type Options struct {
	AdaptiveK   bool
	FilterNoise bool
	// Multilingual=false skips expansion and runs one plain search with the caller's k.
	Multilingual bool
}

func DefaultOptions() Options {
	return Options{AdaptiveK: true, FilterNoise: true, Multilingual: true}
}

type Retriever struct {
	expander   *expansion.Expander
	aggregator *Aggregator
	filter     *NoiseFilter
	logger     *logger_i.Logger
}

func NewRetriever(idx index.SimilarityIndex, lexicon *config.Lexicon) *Retriever {
	return &Retriever{
		expander:   expansion.New(lexicon.Glossary),
		aggregator: NewAggregator(idx, lexicon.ThaiContentMarkers),
		filter:     NewNoiseFilter(lexicon.NoiseMarkers),
		logger:     logger_i.NewLogger("Retriever"),
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int, opts Options) ([]commonModels.Chunk, error) {
	scored, err := r.RetrieveWithScores(ctx, query, k, opts)
	if err != nil {
		return nil, err
	}
	return Chunks(scored), nil
}

// RetrieveWithScores returns at most k passages with distinct fingerprints,
// sorted by ascending distance. No results is an empty slice, not an error.
func (r *Retriever) RetrieveWithScores(ctx context.Context, query string, k int, opts Options) ([]commonModels.ScoredPassage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k < 1 || k > config.MaxRequestedK {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	ctx, span := tracer.Start(ctx, "retrieval.retrieve")
	defer span.End()
	log := r.logger.WithTrace(ctx)

	lang := language.Detect(query)
	variants := commonModels.ExpansionSet{query}
	searchK := k
	if opts.Multilingual {
		variants = r.expander.Expand(query, lang)
		searchK = r.aggregator.AdaptK(query, lang, k, opts.AdaptiveK)
		if searchK != k {
			metrics.IncrementAdaptiveKActivations()
		}
	}
	span.SetAttributes(
		attribute.String("query.language", string(lang)),
		attribute.Int("query.variants", len(variants)),
		attribute.Int("search.k", searchK),
		attribute.Int("requested.k", k),
	)
	log.Debug("retrieving", "language", lang, "variants", len(variants), "searchK", searchK, "k", k)

	raw, err := r.aggregator.Aggregate(ctx, variants, searchK)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation aborted")
		return nil, err
	}

	candidates := raw
	if opts.FilterNoise {
		candidates = r.filter.Filter(ctx, candidates, query)
	}
	ranked := Rank(Dedup(candidates), k)

	metrics.ObserveReturnedPassages(len(ranked))
	log.Debug("retrieval done", "raw", len(raw), "returned", len(ranked))
	return ranked, nil
}
