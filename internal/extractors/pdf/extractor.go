package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf", "application/x-pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific extractor
}

// Extract pulls the text of each page, skips pages with no text, and
// joins the remaining page texts with blank lines. A parseable PDF
// whose pages are all empty (scanned images without OCR) extracts to
// the empty string, which is not an error.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (text string, err error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	// The pdf library panics on some malformed files; surface those as
	// corrupt input instead of crashing the pipeline.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrCorruptInput, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCorruptInput, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrCorruptInput, i, err)
		}

		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n\n"), nil
}
