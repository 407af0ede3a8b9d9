package chunking

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

func text(tag commonModels.SourceTag, page int, s string) commonModels.Content {
	return commonModels.Content{Kind: commonModels.KindText, Text: s, SourceTag: tag, Page: page, DocId: "doc"}
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, StrategyTextbook, StrategyFor(commonModels.SourceTextbook))
	assert.Equal(t, StrategySlide, StrategyFor(commonModels.SourceSlide))
	assert.Equal(t, StrategyThai, StrategyFor(commonModels.SourceThaiOCR))
	assert.Equal(t, StrategyOther, StrategyFor(commonModels.SourceOther))
	assert.Equal(t, StrategyOther, StrategyFor(commonModels.SourceUnknown))
	assert.Equal(t, StrategyOther, StrategyFor("pdf"))
}

func TestChunk_GroupOrder(t *testing.T) {
	in := []commonModels.Content{
		text(commonModels.SourceOther, 1, "other"),
		text(commonModels.SourceThaiOCR, 1, "ไทย"),
		text(commonModels.SourceSlide, 1, "slide"),
		text(commonModels.SourceTextbook, 1, "book"),
	}

	got := NewSelector().Chunk(in, commonModels.SourceUnknown)

	require.Len(t, got, 4)
	assert.Equal(t, []string{"book", "slide", "ไทย", "other"}, []string{got[0].Chunk, got[1].Chunk, got[2].Chunk, got[3].Chunk})
	for _, c := range got {
		assert.NotEmpty(t, c.ChunkId)
	}
}

func TestChunk_WindowsPerStrategy(t *testing.T) {
	long := strings.Repeat("abcdefghi ", 300)
	thai := strings.Repeat("ความมั่นคงปลอดภัย ", 200)

	got := NewSelector().Chunk([]commonModels.Content{
		text(commonModels.SourceTextbook, 3, long),
		text(commonModels.SourceThaiOCR, 4, thai),
	}, commonModels.SourceUnknown)

	for _, c := range got {
		n := utf8.RuneCountInString(c.Chunk)
		switch c.SourceTag {
		case commonModels.SourceTextbook:
			assert.LessOrEqual(t, n, 1000)
			assert.Equal(t, 3, c.PageNum)
		case commonModels.SourceThaiOCR:
			assert.LessOrEqual(t, n, 800)
			assert.Equal(t, 4, c.PageNum)
		}
	}
}

func TestChunk_TypeHintOnlyForUntagged(t *testing.T) {
	in := []commonModels.Content{
		{Kind: commonModels.KindText, Text: "untagged", Page: 2, Slide: 2},
		text(commonModels.SourceTextbook, 1, "tagged"),
	}

	got := NewSelector().Chunk(in, commonModels.SourceSlide)

	require.Len(t, got, 2)
	assert.Equal(t, "tagged", got[0].Chunk)
	assert.Equal(t, commonModels.SourceTextbook, got[0].SourceTag)
	assert.Equal(t, commonModels.SourceSlide, got[1].SourceTag)
	assert.Equal(t, 2, got[1].SlideNumber)
}

func TestChunk_AtomicItemsUnsplit(t *testing.T) {
	table := strings.Repeat("| a | b |\n", 300)
	in := []commonModels.Content{
		{Kind: commonModels.KindTable, Text: table, SourceTag: commonModels.SourceTextbook, Page: 1, TableMarkup: "<table/>"},
		{Kind: commonModels.KindDiagram, Text: "[Diagram/Figure]", SourceTag: commonModels.SourceThaiOCR, Page: 1, ImagePayload: "aGVsbG8="},
	}

	got := NewSelector().Chunk(in, commonModels.SourceUnknown)

	require.Len(t, got, 2)
	assert.Equal(t, table, got[0].Chunk)
	assert.Equal(t, "<table/>", got[0].TableMarkup)
	assert.Equal(t, commonModels.KindDiagram, got[1].Kind)
	assert.Equal(t, "aGVsbG8=", got[1].ImagePayload)
}

func TestChunk_EmptyInput(t *testing.T) {
	assert.Empty(t, NewSelector().Chunk(nil, commonModels.SourceUnknown))
}
