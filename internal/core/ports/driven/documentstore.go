package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// DocumentStore persists document records.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns documents for a course.
	ListDocuments(ctx context.Context, courseID string) ([]domain.Document, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// UpdateDocumentStatus records a processing state change. ChunkCount
	// and FailureReason on the document row are updated alongside.
	UpdateDocumentStatus(ctx context.Context, id string, status domain.ProcessingStatus, failureReason string, chunkCount int) error
}
