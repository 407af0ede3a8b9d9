package retrieval

import (
	"sort"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

// Rank sorts ascending by distance and cuts to k. Ties keep their input order.
func Rank(passages []commonModels.ScoredPassage, k int) []commonModels.ScoredPassage {
	sorted := make([]commonModels.ScoredPassage, len(passages))
	copy(sorted, passages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	if k >= 0 && len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

func Chunks(passages []commonModels.ScoredPassage) []commonModels.Chunk {
	out := make([]commonModels.Chunk, len(passages))
	for i, p := range passages {
		out[i] = p.Chunk
	}
	return out
}
