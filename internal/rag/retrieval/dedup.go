package retrieval

import "github.com/akolanti/CyberRAG/internal/domain/commonModels"

// Dedup keeps the first passage seen for each fingerprint. Input order decides
// which score survives, so callers must pass variant order through untouched.
func Dedup(passages []commonModels.ScoredPassage) []commonModels.ScoredPassage {
	seen := make(map[commonModels.Fingerprint]struct{}, len(passages))
	out := make([]commonModels.ScoredPassage, 0, len(passages))
	for _, p := range passages {
		fp := p.Chunk.Fingerprint()
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, p)
	}
	return out
}
