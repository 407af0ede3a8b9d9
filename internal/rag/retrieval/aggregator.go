// Package retrieval runs the query-side pipeline: expansion fan-out, noise
// filtering, fingerprint dedup and final ranking.
package retrieval

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/internal/rag/index"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var tracer = otel.Tracer("github.com/akolanti/CyberRAG/internal/rag/retrieval")

type Aggregator struct {
	index       index.SimilarityIndex
	thaiMarkers []string
	timeout     time.Duration
	parallelism int
	logger      *logger_i.Logger
}

func NewAggregator(idx index.SimilarityIndex, thaiMarkers []string) *Aggregator {
	markers := make([]string, len(thaiMarkers))
	for i, m := range thaiMarkers {
		markers[i] = strings.ToLower(m)
	}
	return &Aggregator{
		index:       idx,
		thaiMarkers: markers,
		timeout:     config.VariantSearchTimeout,
		parallelism: config.MaxParallelVariantSearches,
		logger:      logger_i.NewLogger("Search Aggregator"),
	}
}

// AdaptK widens the search for Thai queries and for English queries about Thai
// content. The caller's k is still what the result gets truncated to.
func (a *Aggregator) AdaptK(query string, lang commonModels.Language, k int, adaptive bool) int {
	if !adaptive || !a.thaiRelated(query, lang) {
		return k
	}
	return min(k+config.AdaptiveKDelta, max(k, config.AdaptiveKMax))
}

func (a *Aggregator) thaiRelated(query string, lang commonModels.Language) bool {
	if lang == commonModels.LangThai {
		return true
	}
	lowered := strings.ToLower(query)
	for _, m := range a.thaiMarkers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// Aggregate searches every variant with the same k and concatenates the hits in
// variant order. A failed or timed out variant is dropped; only cancellation
// of ctx fails the call.
func (a *Aggregator) Aggregate(ctx context.Context, variants commonModels.ExpansionSet, k int) ([]commonModels.ScoredPassage, error) {
	log := a.logger.WithTrace(ctx)
	perVariant := make([][]commonModels.ScoredPassage, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)

	for i, variant := range variants {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			hits, err := a.searchVariant(gctx, i, variant, k)
			if err != nil {
				log.Warn("variant search failed, skipping", "variant", i, "error", err)
				metrics.IncrementVariantSearchFailures()
				return nil
			}
			perVariant[i] = hits
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []commonModels.ScoredPassage
	for _, hits := range perVariant {
		out = append(out, hits...)
	}
	return out, nil
}

func (a *Aggregator) searchVariant(ctx context.Context, i int, variant string, k int) ([]commonModels.ScoredPassage, error) {
	ctx, span := tracer.Start(ctx, "retrieval.variant_search")
	defer span.End()
	span.SetAttributes(attribute.Int("variant.index", i), attribute.Int("search.k", k))

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	hits, err := a.index.SearchWithScore(ctx, variant, k)
	metrics.CaptureExecutionMetrics("variant_search", time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "variant search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.hits", len(hits)))
	return hits, nil
}
