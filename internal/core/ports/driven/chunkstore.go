package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// ChunkStore persists chunks and serves similarity search.
type ChunkStore interface {
	// SaveChunks atomically replaces the document's chunk set. Within one
	// transaction it removes any existing chunks and writes the new ones
	// with dense sequence indices 0..N-1; readers never observe a partial
	// set. Chunks out of order or with gapped indices are rejected with
	// domain.ErrInvalidInput.
	SaveChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks for a document in sequence order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// DeleteChunks removes all chunks for a document. Deleting a document
	// with no chunks is a no-op, not an error.
	DeleteChunks(ctx context.Context, documentID string) error

	// Search returns up to k chunks from the course whose cosine
	// similarity to the query vector is at least minScore, ordered by
	// descending score with ties broken by ascending sequence index.
	// Scores are clamped to [0, 1]. An empty result is not an error.
	Search(ctx context.Context, courseID string, vector []float32, k int, minScore float64) ([]domain.RetrievedChunk, error)
}
