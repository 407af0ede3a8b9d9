package retrieval

import (
	"context"
	"strings"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

// NoiseFilter drops bibliography, reference and table-of-contents passages.
type NoiseFilter struct {
	markers []string
	logger  *logger_i.Logger
}

func NewNoiseFilter(markers []string) *NoiseFilter {
	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			lowered = append(lowered, m)
		}
	}
	return &NoiseFilter{markers: lowered, logger: logger_i.NewLogger("Noise Filter")}
}

// Filter never turns a non-empty candidate list into an empty one: if every
// passage is noise, the input comes back unchanged.
func (f *NoiseFilter) Filter(ctx context.Context, passages []commonModels.ScoredPassage, query string) []commonModels.ScoredPassage {
	if len(passages) == 0 {
		return passages
	}

	kept := make([]commonModels.ScoredPassage, 0, len(passages))
	for _, p := range passages {
		if !f.isNoise(p.Chunk.Chunk) {
			kept = append(kept, p)
		}
	}

	if len(kept) == 0 {
		f.logger.WithTrace(ctx).Warn("every candidate matched a noise marker, keeping unfiltered set", "candidates", len(passages), "query", query)
		metrics.IncrementNoiseFilterFallbacks()
		return passages
	}
	return kept
}

func (f *NoiseFilter) isNoise(text string) bool {
	lowered := strings.ToLower(text)
	for _, m := range f.markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}
