package ingest

import (
	"testing"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

func TestNormalize_Rules(t *testing.T) {
	n := NewNormalizer([]string{"Health Sector Cybersecurity Coordination Center"})

	tests := []struct {
		name string
		in   commonModels.Content
		keep bool
		text string
		page int
	}{
		{"page number dropped", commonModels.Content{Kind: commonModels.KindText, Text: " 42 ", Page: 3}, false, "", 0},
		{"text trimmed", commonModels.Content{Kind: commonModels.KindText, Text: "  Defense in depth \n", Page: 3}, true, "Defense in depth", 3},
		{"page clamped", commonModels.Content{Kind: commonModels.KindText, Text: "intro", Page: 0}, true, "intro", 1},
		{"short slide text dropped", commonModels.Content{Kind: commonModels.KindText, Text: "ok", SourceTag: commonModels.SourceSlide, Page: 1}, false, "", 0},
		{"boilerplate dropped", commonModels.Content{Kind: commonModels.KindText, Text: "Health Sector Cybersecurity Coordination Center", SourceTag: commonModels.SourceSlide, Page: 1}, false, "", 0},
		{"boilerplate line stripped", commonModels.Content{Kind: commonModels.KindText, Text: "Phishing\nHealth Sector Cybersecurity Coordination Center", SourceTag: commonModels.SourceSlide, Page: 1}, true, "Phishing", 1},
		{"empty table placeholder", commonModels.Content{Kind: commonModels.KindTable, Page: 2}, true, "[Table]", 2},
		{"thai table placeholder", commonModels.Content{Kind: commonModels.KindTable, SourceTag: commonModels.SourceThaiOCR, Page: 2}, true, "[ตาราง]", 2},
		{"textbook diagram placeholder", commonModels.Content{Kind: commonModels.KindDiagram, Text: "fig", Page: 4, ImagePayload: "img"}, true, "[Diagram/Figure]", 4},
		{"textbook diagram caption kept", commonModels.Content{Kind: commonModels.KindDiagram, Text: "TLS handshake flow", Page: 4}, true, "TLS handshake flow", 4},
		{"slide diagram placeholder", commonModels.Content{Kind: commonModels.KindDiagram, SourceTag: commonModels.SourceSlide, Page: 5, ImagePayload: "img"}, true, "[Slide Diagram]", 5},
		{"slide logo dropped", commonModels.Content{Kind: commonModels.KindDiagram, Text: "HHS", SourceTag: commonModels.SourceSlide, Page: 5}, false, "", 0},
		{"thai diagram always placeholder", commonModels.Content{Kind: commonModels.KindDiagram, Text: "long caption text", SourceTag: commonModels.SourceThaiOCR, Page: 1}, true, "[แผนภาพ/รูปภาพ]", 1},
		{"empty text without image dropped", commonModels.Content{Kind: commonModels.KindText, Text: "   ", Page: 1}, false, "", 0},
		{"image only kept", commonModels.Content{Kind: commonModels.KindText, ImagePayload: "img", Page: 1}, true, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize([]commonModels.Content{tt.in})
			if !tt.keep {
				if len(got) != 0 {
					t.Fatalf("expected item dropped, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected item kept, got %d items", len(got))
			}
			if got[0].Text != tt.text || got[0].Page != tt.page {
				t.Errorf("got text=%q page=%d, want text=%q page=%d", got[0].Text, got[0].Page, tt.text, tt.page)
			}
		})
	}
}

func TestNormalize_ThaiOCRCleanup(t *testing.T) {
	n := NewNormalizer(nil)
	in := commonModels.Content{
		Kind:      commonModels.KindText,
		Text:      "  มาตรฐาน|ความมั่นคง\n\n\n\nปลอดภัย    ไซเบอร์ ",
		SourceTag: commonModels.SourceThaiOCR,
		Page:      1,
	}

	got := n.Normalize([]commonModels.Content{in})

	want := "มาตรฐานIความมั่นคง\n\nปลอดภัย ไซเบอร์"
	if len(got) != 1 || got[0].Text != want {
		t.Errorf("got %q, want %q", got[0].Text, want)
	}
}

func TestNormalize_ThaiSortedByPage(t *testing.T) {
	n := NewNormalizer(nil)
	in := []commonModels.Content{
		{Kind: commonModels.KindText, Text: "หน้า 3", SourceTag: commonModels.SourceThaiOCR, Page: 3},
		{Kind: commonModels.KindText, Text: "หน้า 1", SourceTag: commonModels.SourceThaiOCR, Page: 1},
		{Kind: commonModels.KindTable, Text: "ตาราง 3", SourceTag: commonModels.SourceThaiOCR, Page: 3},
		{Kind: commonModels.KindDiagram, SourceTag: commonModels.SourceThaiOCR, Page: 2, ImagePayload: "img"},
	}

	got := n.Normalize(in)

	wantPages := []int{1, 2, 3, 3}
	for i, c := range got {
		if c.Page != wantPages[i] {
			t.Fatalf("position %d: page %d, want %d", i, c.Page, wantPages[i])
		}
	}
	if got[2].Text != "หน้า 3" {
		t.Errorf("expected stable order within page, got %q", got[2].Text)
	}
}
