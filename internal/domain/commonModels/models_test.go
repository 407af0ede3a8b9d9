package commonModels

import (
	"strings"
	"testing"
)

func TestFingerprintOf(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short text kept whole", "hello", "hello"},
		{"exactly 100", strings.Repeat("a", 100), strings.Repeat("a", 100)},
		{"long text cut", strings.Repeat("a", 100) + "tail", strings.Repeat("a", 100)},
		{"thai runes", strings.Repeat("ก", 120), strings.Repeat("ก", 100)},
		{"no normalization", "  Mixed CASE  ", "  Mixed CASE  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FingerprintOf(tt.text); string(got) != tt.want {
				t.Errorf("FingerprintOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlideNumber(t *testing.T) {
	if got := (Content{Page: 4}).SlideNumber(); got != 4 {
		t.Errorf("expected page fallback 4, got %d", got)
	}
	if got := (Content{Page: 4, Slide: 2}).SlideNumber(); got != 2 {
		t.Errorf("expected explicit slide 2, got %d", got)
	}
}

func TestParseSourceTag(t *testing.T) {
	tests := map[string]SourceTag{
		"textbook": SourceTextbook,
		"slide":    SourceSlide,
		"thai-ocr": SourceThaiOCR,
		"other":    SourceOther,
		"pdf":      SourceUnknown,
		"":         SourceUnknown,
	}
	for in, want := range tests {
		if got := ParseSourceTag(in); got != want {
			t.Errorf("ParseSourceTag(%q) = %q, want %q", in, got, want)
		}
	}
}
