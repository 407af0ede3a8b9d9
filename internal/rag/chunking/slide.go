package chunking

import (
	"sort"
	"strings"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

// chunkSlides never lets text from two slides share a chunk. Items are stably
// sorted by slide number, then per slide (and per document) the TEXT items are
// joined with newlines and split; tables and diagrams follow unchanged.
func chunkSlides(items []commonModels.Content, splitter RecursiveSplitter) []commonModels.Chunk {
	sorted := make([]commonModels.Content, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SlideNumber() < sorted[j].SlideNumber()
	})

	var out []commonModels.Chunk
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].SlideNumber() == sorted[start].SlideNumber() {
			end++
		}
		for _, deck := range byDocument(sorted[start:end]) {
			out = append(out, chunkOneSlide(deck, splitter)...)
		}
		start = end
	}
	return out
}

func chunkOneSlide(items []commonModels.Content, splitter RecursiveSplitter) []commonModels.Chunk {
	var out []commonModels.Chunk
	var texts []string
	var first *commonModels.Content
	var special []commonModels.Content

	for i := range items {
		if items[i].Kind.Atomic() {
			special = append(special, items[i])
			continue
		}
		if first == nil {
			first = &items[i]
		}
		texts = append(texts, items[i].Text)
	}

	order := 0
	if first != nil {
		for _, text := range splitter.Split(strings.Join(texts, "\n")) {
			out = append(out, slideChunk(textChunk(*first, text, order), *first))
			order++
		}
	}
	for _, c := range special {
		out = append(out, slideChunk(atomicChunk(c, order), c))
		order++
	}
	return out
}

func slideChunk(ch commonModels.Chunk, src commonModels.Content) commonModels.Chunk {
	ch.SourceTag = commonModels.SourceSlide
	ch.SlideNumber = src.SlideNumber()
	return ch
}

// byDocument keeps first-seen document order.
func byDocument(items []commonModels.Content) [][]commonModels.Content {
	index := map[string]int{}
	var groups [][]commonModels.Content
	for _, c := range items {
		i, ok := index[c.DocId]
		if !ok {
			i = len(groups)
			index[c.DocId] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}
