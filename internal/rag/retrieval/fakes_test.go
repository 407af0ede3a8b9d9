package retrieval

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

type fakeIndex struct {
	mu      sync.Mutex
	results map[string][]commonModels.ScoredPassage
	errs    map[string]error
	delays  map[string]time.Duration
	block   map[string]bool
	calls   []call
}

type call struct {
	query string
	k     int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		results: map[string][]commonModels.ScoredPassage{},
		errs:    map[string]error{},
		delays:  map[string]time.Duration{},
		block:   map[string]bool{},
	}
}

func (f *fakeIndex) Search(ctx context.Context, q string, k int) ([]commonModels.Chunk, error) {
	scored, err := f.SearchWithScore(ctx, q, k)
	return Chunks(scored), err
}

func (f *fakeIndex) SearchWithScore(ctx context.Context, q string, k int) ([]commonModels.ScoredPassage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{q, k})
	res, err, delay, block := f.results[q], f.errs[q], f.delays[q], f.block[q]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (f *fakeIndex) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func passage(text string, score float64) commonModels.ScoredPassage {
	return commonModels.ScoredPassage{Chunk: commonModels.Chunk{Chunk: text}, Score: score}
}

func webSecurityLexicon() *config.Lexicon {
	return &config.Lexicon{
		Glossary:           []config.TermPair{{English: "web security", Thai: "ความปลอดภัยเว็บไซต์"}},
		NoiseMarkers:       []string{"bibliography", "references", "บรรณานุกรม"},
		ThaiContentMarkers: []string{"thailand", "ncsa"},
	}
}

const (
	variantOriginal = "web security"
	variantMixed    = "web security ความปลอดภัยเว็บไซต์"
	variantThai     = "ความปลอดภัยเว็บไซต์"
)
