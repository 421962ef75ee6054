package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

func newTestDocument(id, courseID string) *domain.Document {
	return &domain.Document{
		ID:       id,
		CourseID: courseID,
		Filename: id + ".txt",
		MIMEType: "text/plain",
		Status:   domain.StatusPending,
	}
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, newTestDocument("d1", "c1")))

	got, err := store.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.CourseID)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_SaveInvalidInput(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveDocument(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveDocument(ctx, &domain.Document{ID: "d1"}), domain.ErrInvalidInput)
}

func TestDocumentStore_ListScopedToCourse(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, newTestDocument("d1", "c1")))
	require.NoError(t, store.SaveDocument(ctx, newTestDocument("d2", "c1")))
	require.NoError(t, store.SaveDocument(ctx, newTestDocument("d3", "c2")))

	docs, err := store.ListDocuments(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, "c1", doc.CourseID)
	}
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, newTestDocument("d1", "c1")))
	require.NoError(t, store.DeleteDocument(ctx, "d1"))

	_, err := store.GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UpdateStatus(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, newTestDocument("d1", "c1")))
	require.NoError(t, store.UpdateDocumentStatus(ctx, "d1", domain.StatusFailed, "extraction error", 0))

	got, err := store.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.Equal(t, "extraction error", got.FailureReason)
}

func TestDocumentStore_UpdateStatusNotFound(t *testing.T) {
	store := NewDocumentStore()

	err := store.UpdateDocumentStatus(context.Background(), "missing", domain.StatusDone, "", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
