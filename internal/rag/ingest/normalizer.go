package ingest

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

const (
	minSlideTextRunes   = 3
	minSlideImageRunes  = 5
	maxPlaceholderRunes = 5

	tablePlaceholder        = "[Table]"
	thaiTablePlaceholder    = "[ตาราง]"
	diagramPlaceholder      = "[Diagram/Figure]"
	slideDiagramPlaceholder = "[Slide Diagram]"
	thaiDiagramPlaceholder  = "[แผนภาพ/รูปภาพ]"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	excessSpaces   = regexp.MustCompile(` {2,}`)
)

// Normalizer cleans extractor output into Content the chunkers can rely on:
// every item has a page >= 1 and either text or an image.
type Normalizer struct {
	boilerplate map[string]struct{}
}

func NewNormalizer(boilerplate []string) *Normalizer {
	n := &Normalizer{boilerplate: make(map[string]struct{}, len(boilerplate))}
	for _, b := range boilerplate {
		if b = strings.TrimSpace(b); b != "" {
			n.boilerplate[b] = struct{}{}
		}
	}
	return n
}

func (n *Normalizer) Normalize(items []commonModels.Content) []commonModels.Content {
	out := make([]commonModels.Content, 0, len(items))
	hasThai := false
	for _, c := range items {
		c, keep := n.normalizeOne(c)
		if !keep {
			continue
		}
		if c.SourceTag == commonModels.SourceThaiOCR {
			hasThai = true
		}
		out = append(out, c)
	}

	// OCR pages and visual elements arrive separately; put them back in page order
	if hasThai {
		sort.SliceStable(out, func(i, j int) bool {
			return thaiPage(out[i]) < thaiPage(out[j])
		})
	}
	return out
}

func thaiPage(c commonModels.Content) int {
	if c.SourceTag != commonModels.SourceThaiOCR {
		return 0
	}
	return c.Page
}

func (n *Normalizer) normalizeOne(c commonModels.Content) (commonModels.Content, bool) {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.Kind == "" {
		c.Kind = commonModels.KindText
	}
	if c.SourceTag == commonModels.SourceThaiOCR && c.Kind == commonModels.KindText {
		c.Text = cleanThaiOCR(c.Text)
	}
	c.Text = strings.TrimSpace(c.Text)

	if _, ok := n.boilerplate[c.Text]; ok && c.Text != "" {
		return c, false
	}

	switch c.Kind {
	case commonModels.KindTable:
		if c.Text == "" {
			c.Text = tablePlaceholder
			if c.SourceTag == commonModels.SourceThaiOCR {
				c.Text = thaiTablePlaceholder
			}
		}

	case commonModels.KindDiagram:
		runes := utf8.RuneCountInString(c.Text)
		switch c.SourceTag {
		case commonModels.SourceThaiOCR:
			c.Text = thaiDiagramPlaceholder
		case commonModels.SourceSlide:
			// tiny captions on slides are logos
			if runes > 0 && runes < minSlideImageRunes {
				return c, false
			}
			if runes <= maxPlaceholderRunes {
				c.Text = slideDiagramPlaceholder
			}
		default:
			if runes <= maxPlaceholderRunes {
				c.Text = diagramPlaceholder
			}
		}

	default:
		if isPageNumber(c.Text) {
			return c, false
		}
		c.Text = n.stripBoilerplateLines(c.Text)
		if c.SourceTag == commonModels.SourceSlide && utf8.RuneCountInString(c.Text) < minSlideTextRunes {
			return c, false
		}
	}

	if c.Text == "" && c.ImagePayload == "" {
		return c, false
	}
	return c, true
}

func (n *Normalizer) stripBoilerplateLines(text string) string {
	if len(n.boilerplate) == 0 || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if _, ok := n.boilerplate[strings.TrimSpace(l)]; ok {
			continue
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isPageNumber(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func cleanThaiOCR(text string) string {
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = excessSpaces.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "|", "I")
	return strings.TrimSpace(text)
}
