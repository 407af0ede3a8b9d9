package commonModels

import "time"

type Document struct {
	Id                  string    `json:"source_doc_id"`
	Name                string    `json:"doc_name"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
	ContentType         DocType   `json:"contentType"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

type ContentKind string

const (
	KindText    ContentKind = "text"
	KindTable   ContentKind = "table"
	KindDiagram ContentKind = "diagram"
)

// Atomic kinds are stored as-is and never split.
func (k ContentKind) Atomic() bool {
	return k == KindTable || k == KindDiagram
}

// SourceTag names the extractor that produced a Content item. It is set once,
// at extraction time, and drives the chunking strategy.
type SourceTag string

const (
	SourceUnknown  SourceTag = ""
	SourceTextbook SourceTag = "textbook"
	SourceSlide    SourceTag = "slide"
	SourceThaiOCR  SourceTag = "thai-ocr"
	SourceOther    SourceTag = "other"
)

func ParseSourceTag(s string) SourceTag {
	switch SourceTag(s) {
	case SourceTextbook, SourceSlide, SourceThaiOCR, SourceOther:
		return SourceTag(s)
	default:
		return SourceUnknown
	}
}

// Content is one extracted unit, immutable after normalization.
type Content struct {
	Kind         ContentKind `json:"kind"`
	Text         string      `json:"text"`
	SourceTag    SourceTag   `json:"source_tag"`
	Page         int         `json:"page"`
	Slide        int         `json:"slide,omitempty"`
	DocId        string      `json:"doc_id"`
	DocName      string      `json:"doc_name,omitempty"`
	TableMarkup  string      `json:"table_markup,omitempty"`
	ImagePayload string      `json:"image_payload,omitempty"`
	IsTitle      bool        `json:"is_title,omitempty"`
}

// SlideNumber is the explicit slide index, falling back to the page for decks
// where one page is one slide.
func (c Content) SlideNumber() int {
	if c.Slide > 0 {
		return c.Slide
	}
	return c.Page
}

type Chunk struct {
	Doc                Document    `json:"doc"`
	ChunkId            string      `json:"chunk_id"`
	Chunk              string      `json:"content"`
	Kind               ContentKind `json:"kind"`
	SourceTag          SourceTag   `json:"source_tag"`
	PageNum            int         `json:"page_num"`
	SlideNumber        int         `json:"slide_number,omitempty"`
	ChunkPageOrder     int         `json:"chunk_order"`
	TableMarkup        string      `json:"table_markup,omitempty"`
	ImagePayload       string      `json:"image_payload,omitempty"`
	EmbeddingDimension string      `json:"embeddingModel,omitempty"`
}

// ScoredPassage pairs a chunk with its distance to the query. Lower is more relevant.
type ScoredPassage struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

type Language string

const (
	LangEnglish Language = "en"
	LangThai    Language = "th"
)

type Query struct {
	Text     string
	Language Language
}

// ExpansionSet holds query variants; the first element is always the original query.
type ExpansionSet []string

func (e ExpansionSet) Original() string {
	if len(e) == 0 {
		return ""
	}
	return e[0]
}
