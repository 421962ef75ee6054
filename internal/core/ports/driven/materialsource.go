package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// MaterialSource fetches course materials in bulk.
// Each source type (filesystem, github, googledrive) implements this interface.
type MaterialSource interface {
	// Type returns the source type identifier.
	Type() string

	// Validate checks if the source is properly configured and reachable.
	// For API sources this typically makes a test API call; for
	// filesystem it checks the path exists and is readable.
	// Returns nil if ready to fetch, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// Fetch streams all matching documents from the source.
	// Both channels close when fetching finishes; the error channel
	// carries per-document failures without stopping the stream.
	Fetch(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Close releases resources.
	Close() error
}
