package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// Extractor converts raw document bytes into plain text.
// Each extractor handles specific MIME types (e.g., PDF, plain text).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the document's text content.
	// An empty result is valid: a parseable document with no extractable
	// text (e.g. a scanned PDF) extracts to the empty string.
	// Bytes that cannot be parsed as the declared format return
	// domain.ErrCorruptInput.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// ExtractorRegistry selects the appropriate extractor for a document.
// It maintains a priority-ordered list of extractors and dispatches
// based on MIME type.
type ExtractorRegistry interface {
	// Extract converts a raw document using the best matching extractor.
	// A MIME type no registered extractor handles returns
	// domain.ErrUnsupportedFormat.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
