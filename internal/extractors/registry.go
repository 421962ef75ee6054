package extractors

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the appropriate extractor for a document based on
// MIME type. When several extractors support the same type, the one
// with the highest priority wins.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, extractor)
	sort.SliceStable(r.extractors, func(i, j int) bool {
		return r.extractors[i].Priority() > r.extractors[j].Priority()
	})
}

// Extract converts a raw document using the best matching extractor.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	extractor := r.lookup(raw.MIMEType)
	if extractor == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, raw.MIMEType)
	}

	return extractor.Extract(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be extracted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, e := range r.extractors {
		for _, mt := range e.SupportedMIMETypes() {
			if !seen[mt] {
				seen[mt] = true
				types = append(types, mt)
			}
		}
	}
	sort.Strings(types)
	return types
}

// lookup returns the highest-priority extractor for the MIME type,
// or nil when none supports it.
func (r *Registry) lookup(mimeType string) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := normalizeMIMEType(mimeType)
	for _, e := range r.extractors {
		for _, mt := range e.SupportedMIMETypes() {
			if mt == normalized {
				return e
			}
		}
	}
	return nil
}

// normalizeMIMEType strips parameters and lowercases the type, so
// "text/Plain; charset=utf-8" matches "text/plain".
func normalizeMIMEType(mimeType string) string {
	base, _, found := strings.Cut(mimeType, ";")
	if found {
		base = strings.TrimSpace(base)
	}
	return strings.ToLower(strings.TrimSpace(base))
}
