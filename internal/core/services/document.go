package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages documents within courses.
type DocumentService struct {
	docStore    driven.DocumentStore
	chunkStore  driven.ChunkStore
	courseStore driven.CourseStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	courseStore driven.CourseStore,
) *DocumentService {
	return &DocumentService{
		docStore:    docStore,
		chunkStore:  chunkStore,
		courseStore: courseStore,
	}
}

// Register records a new document in a course with StatusPending.
func (s *DocumentService) Register(ctx context.Context, courseID, filename, mimeType string) (*domain.Document, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if mimeType == "" {
		return nil, fmt.Errorf("%w: mime type is required", domain.ErrInvalidInput)
	}

	// The course must exist before documents can be attached to it.
	if _, err := s.courseStore.GetCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	now := time.Now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		CourseID:  courseID,
		Filename:  filename,
		MIMEType:  mimeType,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Debug("Registered document %s (%s) in course %s", doc.Filename, doc.ID, courseID)
	return doc, nil
}

// ListByCourse returns all documents for a course.
func (s *DocumentService) ListByCourse(ctx context.Context, courseID string) ([]domain.Document, error) {
	if _, err := s.courseStore.GetCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return s.docStore.ListDocuments(ctx, courseID)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent returns the concatenated content of all chunks.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	// Verify document exists
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return "", err
	}

	// Chunks come back in sequence order.
	chunks, err := s.chunkStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(chunk.Content)
	}

	return builder.String(), nil
}

// GetDetails returns document metadata for display.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	// Course name is display-only; a missing course leaves it blank.
	var courseName string
	if course, err := s.courseStore.GetCourse(ctx, doc.CourseID); err == nil && course != nil {
		courseName = course.Name
	}

	return &driving.DocumentDetails{
		ID:            doc.ID,
		CourseID:      doc.CourseID,
		CourseName:    courseName,
		Filename:      doc.Filename,
		MIMEType:      doc.MIMEType,
		Status:        doc.Status,
		FailureReason: doc.FailureReason,
		ChunkCount:    doc.ChunkCount,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

// Delete removes a document and its chunks.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return err
	}

	if err := s.chunkStore.DeleteChunks(ctx, documentID); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Debug("Deleted document %s", documentID)
	return nil
}
