package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

// source describes the document being extracted; every Content gets its tag.
type source struct {
	path  string
	docId string
	name  string
	tag   commonModels.SourceTag
}

func (s source) content(page int, text string) commonModels.Content {
	c := commonModels.Content{
		Kind:      commonModels.KindText,
		Text:      text,
		SourceTag: s.tag,
		Page:      page,
		DocId:     s.docId,
		DocName:   s.name,
	}
	if s.tag == commonModels.SourceSlide {
		c.Slide = page
	}
	return c
}

func extractPDF(src source, log *logger_i.Logger) ([]commonModels.Content, error) {
	log.Debug("extractPDF", "attempting extraction", src.path)
	f, err := pdf.Open(src.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var contents []commonModels.Content
	numPages := f.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			log.Debug("extractPDF", "null page", i)
			continue
		}

		text, err := protectExtract(page, log)
		if err != nil {
			// one unreadable page should not lose the document
			log.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		contents = append(contents, src.content(i, text))
	}
	return contents, nil
}

// extractDocxTxtRtf reads .odt, .docx, .rtf or plain text. These formats carry
// no page breaks we can see, so the whole file is page 1.
func extractDocxTxtRtf(src source, log *logger_i.Logger) ([]commonModels.Content, error) {
	text, err := cat.File(src.path)
	if err != nil {
		log.Error("Error extracting content from doc", "error", err)
		return nil, fmt.Errorf("failed to extract docx: %w", err)
	}
	return []commonModels.Content{src.content(1, text)}, nil
}

func protectExtract(page pdf.Page, log *logger_i.Logger) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTTL):
		log.Error("pageExtract", "timeout", config.PageExtractTTL)
		return "", errors.New("timeout")
	}
}
