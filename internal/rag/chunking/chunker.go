package chunking

import (
	"github.com/google/uuid"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/internal/metrics"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

type Strategy string

const (
	StrategyTextbook Strategy = "textbook"
	StrategySlide    Strategy = "slide"
	StrategyThai     Strategy = "thai"
	StrategyOther    Strategy = "other"
)

// output groups are emitted in this order
var strategyOrder = []Strategy{StrategyTextbook, StrategySlide, StrategyThai, StrategyOther}

var logger = logger_i.NewLogger("Chunking")

// StrategyFor maps a source tag to its chunking policy. Unset or unknown tags
// use the textbook/other splitter.
func StrategyFor(tag commonModels.SourceTag) Strategy {
	switch tag {
	case commonModels.SourceTextbook:
		return StrategyTextbook
	case commonModels.SourceSlide:
		return StrategySlide
	case commonModels.SourceThaiOCR:
		return StrategyThai
	default:
		return StrategyOther
	}
}

type Selector struct {
	textbook RecursiveSplitter
	thai     RecursiveSplitter
	slide    RecursiveSplitter
	newID    func() string
}

func NewSelector() *Selector {
	return &Selector{
		textbook: NewRecursiveSplitter(config.TextbookChunkSize, config.TextbookChunkOverlap),
		thai:     NewRecursiveSplitter(config.ThaiChunkSize, config.ThaiChunkOverlap),
		slide:    NewRecursiveSplitter(config.SlideChunkSize, config.SlideChunkOverlap),
		newID:    uuid.NewString,
	}
}

// Chunk classifies every item by its source tag, falling back to typeHint for
// untagged items, and runs the matching chunker. Chunks come out grouped
// textbook, slide, thai, other; input order is kept within each group.
func (s *Selector) Chunk(contents []commonModels.Content, typeHint commonModels.SourceTag) []commonModels.Chunk {
	groups := make(map[Strategy][]commonModels.Content, len(strategyOrder))
	for _, c := range contents {
		if c.SourceTag == commonModels.SourceUnknown {
			c.SourceTag = typeHint
		}
		st := StrategyFor(c.SourceTag)
		groups[st] = append(groups[st], c)
	}

	var out []commonModels.Chunk
	for _, st := range strategyOrder {
		items := groups[st]
		if len(items) == 0 {
			continue
		}

		var chunks []commonModels.Chunk
		switch st {
		case StrategySlide:
			chunks = chunkSlides(items, s.slide)
		case StrategyThai:
			chunks = chunkByItem(items, s.thai)
		default:
			chunks = chunkByItem(items, s.textbook)
		}

		logger.Debug("chunked group", "strategy", st, "items", len(items), "chunks", len(chunks))
		metrics.AddChunksProduced(string(st), len(chunks))
		out = append(out, chunks...)
	}

	for i := range out {
		out[i].ChunkId = s.newID()
	}
	return out
}

// chunkByItem splits each TEXT item on its own; TABLE and DIAGRAM items become
// one chunk each.
func chunkByItem(items []commonModels.Content, splitter RecursiveSplitter) []commonModels.Chunk {
	var out []commonModels.Chunk
	for _, c := range items {
		if c.Kind.Atomic() {
			out = append(out, atomicChunk(c, 0))
			continue
		}
		for i, text := range splitter.Split(c.Text) {
			out = append(out, textChunk(c, text, i))
		}
	}
	return out
}

func atomicChunk(c commonModels.Content, order int) commonModels.Chunk {
	ch := textChunk(c, c.Text, order)
	ch.TableMarkup = c.TableMarkup
	ch.ImagePayload = c.ImagePayload
	return ch
}

func textChunk(c commonModels.Content, text string, order int) commonModels.Chunk {
	kind := c.Kind
	if kind == "" {
		kind = commonModels.KindText
	}
	ch := commonModels.Chunk{
		Doc: commonModels.Document{
			Id:   c.DocId,
			Name: c.DocName,
		},
		Chunk:          text,
		Kind:           kind,
		SourceTag:      c.SourceTag,
		PageNum:        c.Page,
		ChunkPageOrder: order,
	}
	if c.SourceTag == commonModels.SourceSlide {
		ch.SlideNumber = c.SlideNumber()
	}
	return ch
}
