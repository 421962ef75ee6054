package driving

import (
	"context"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// DocumentService manages course materials.
type DocumentService interface {
	// Register records a new document in a course with StatusPending.
	// It does not start processing; callers follow up with the
	// ProcessingOrchestrator.
	Register(ctx context.Context, courseID, filename, mimeType string) (*domain.Document, error)

	// ListByCourse returns all documents for a course.
	ListByCourse(ctx context.Context, courseID string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the concatenated content of all chunks.
	GetContent(ctx context.Context, documentID string) (string, error)

	// GetDetails returns document metadata for display.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// Delete removes a document and its chunks.
	Delete(ctx context.Context, documentID string) error
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// CourseID links to the owning course.
	CourseID string

	// CourseName is the human-readable course name.
	CourseName string

	// Filename is the original file name.
	Filename string

	// MIMEType is the declared content type.
	MIMEType string

	// Status is the current processing state.
	Status domain.ProcessingStatus

	// FailureReason is set when Status is failed.
	FailureReason string

	// ChunkCount is the number of stored chunks.
	ChunkCount int

	// CreatedAt is when the document was registered.
	CreatedAt time.Time

	// UpdatedAt is when the document last changed state.
	UpdatedAt time.Time
}
