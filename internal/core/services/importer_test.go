package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/storage/memory"
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// fakeMaterialSource implements driven.MaterialSource from fixed
// slices. Fetch replays the documents and errors, then closes both
// channels the way a real source does.
type fakeMaterialSource struct {
	sourceType  string
	validateErr error
	docs        []domain.RawDocument
	fetchErrs   []error
	blocking    bool
	closed      bool
}

func (f *fakeMaterialSource) Type() string {
	if f.sourceType == "" {
		return driving.ImportSourceDirectory
	}
	return f.sourceType
}

func (f *fakeMaterialSource) Validate(_ context.Context) error { return f.validateErr }

func (f *fakeMaterialSource) Fetch(_ context.Context) (<-chan domain.RawDocument, <-chan error) {
	if f.blocking {
		// A source that never produces anything, for cancellation tests.
		return make(chan domain.RawDocument), make(chan error)
	}
	docsCh := make(chan domain.RawDocument, len(f.docs))
	errsCh := make(chan error, len(f.fetchErrs))
	for _, doc := range f.docs {
		docsCh <- doc
	}
	for _, err := range f.fetchErrs {
		errsCh <- err
	}
	close(docsCh)
	close(errsCh)
	return docsCh, errsCh
}

func (f *fakeMaterialSource) Close() error {
	f.closed = true
	return nil
}

func rawTextDocument(name, content string) domain.RawDocument {
	return domain.RawDocument{
		URI:      "file:///materials/" + name,
		Filename: name,
		MIMEType: "text/plain",
		Content:  []byte(content),
	}
}

// importHarness wires an import service to a real document service and
// processing orchestrator over in-memory stores, so an import run
// exercises the whole registration and processing path.
type importHarness struct {
	svc        *ImportService
	source     *fakeMaterialSource
	factoryErr error
	courses    *memory.CourseStore
	docs       *memory.DocumentStore
	chunks     *memory.ChunkStore
	registry   *mockExtractorRegistry
	lastSpec   driving.ImportSpec
}

func newImportHarness(t *testing.T) *importHarness {
	t.Helper()

	h := &importHarness{
		source:   &fakeMaterialSource{},
		courses:  memory.NewCourseStore(),
		docs:     memory.NewDocumentStore(),
		registry: &mockExtractorRegistry{},
	}
	h.chunks = memory.NewChunkStore(h.docs)

	documents := NewDocumentService(h.docs, h.chunks, h.courses)
	processor := NewProcessingOrchestrator(h.docs, h.chunks, h.registry, &mockPipeline{}, &mockEmbedder{})
	processor.sleep = func(_ context.Context, _ time.Duration) error { return nil }

	factory := func(spec driving.ImportSpec) (driven.MaterialSource, error) {
		h.lastSpec = spec
		if h.factoryErr != nil {
			return nil, h.factoryErr
		}
		return h.source, nil
	}
	h.svc = NewImportService(h.courses, documents, processor, factory)
	return h
}

func (h *importHarness) seedCourse(t *testing.T, id, name string) {
	t.Helper()

	require.NoError(t, h.courses.SaveCourse(context.Background(), &domain.Course{
		ID:   id,
		Name: name,
	}))
}

func TestImportService_Import(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")
	h.source.docs = []domain.RawDocument{
		rawTextDocument("lecture-01.txt", "The cell membrane controls transport."),
		rawTextDocument("lecture-02.txt", "Mitochondria produce ATP."),
	}

	report, err := h.svc.Import(context.Background(), "course-1", driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
		Path:       "/materials",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Errors)
	assert.True(t, h.source.closed)

	// Every fetched file became a processed document with chunks.
	docs, err := h.docs.ListDocuments(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, domain.StatusDone, doc.Status)
		assert.Equal(t, 1, doc.ChunkCount)

		chunks, err := h.chunks.GetChunks(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Len(t, chunks, 1)
	}
}

func TestImportService_Import_EmptyCourseID(t *testing.T) {
	h := newImportHarness(t)

	_, err := h.svc.Import(context.Background(), "", driving.ImportSpec{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportService_Import_UnknownCourse(t *testing.T) {
	h := newImportHarness(t)

	_, err := h.svc.Import(context.Background(), "nonexistent", driving.ImportSpec{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportService_Import_FactoryError(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")
	h.factoryErr = fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, "ftp")

	_, err := h.svc.Import(context.Background(), "course-1", driving.ImportSpec{SourceType: "ftp"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "create ftp source")
}

func TestImportService_Import_ValidateError(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")
	h.source.validateErr = errors.New("directory does not exist")

	_, err := h.svc.Import(context.Background(), "course-1", driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
		Path:       "/nonexistent",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate filesystem source")
	assert.True(t, h.source.closed, "the source is closed even when validation fails")
}

func TestImportService_Import_SpecReachesFactory(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")

	spec := driving.ImportSpec{
		SourceType: driving.ImportSourceGitHub,
		Repo:       "clarity-labs/bio-notes",
		Patterns:   []string{"*.md"},
	}
	_, err := h.svc.Import(context.Background(), "course-1", spec)

	require.NoError(t, err)
	assert.Equal(t, spec, h.lastSpec)
}

func TestImportService_Import_PerDocumentFailure(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")
	h.source.docs = []domain.RawDocument{
		rawTextDocument("good.txt", "Readable material."),
		rawTextDocument("broken.txt", "Unreadable material."),
	}
	h.registry.errByURI = map[string]error{
		"broken.txt": fmt.Errorf("%w: not parseable", domain.ErrCorruptInput),
	}

	report, err := h.svc.Import(context.Background(), "course-1", driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
	})

	require.NoError(t, err, "per-document failures do not fail the run")
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "broken.txt")

	// The failed document keeps its row so the reason stays visible.
	docs, err := h.docs.ListDocuments(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	statuses := map[domain.ProcessingStatus]int{}
	for _, doc := range docs {
		statuses[doc.Status]++
		if doc.Status == domain.StatusFailed {
			assert.Contains(t, doc.FailureReason, "extract")
		}
	}
	assert.Equal(t, 1, statuses[domain.StatusDone])
	assert.Equal(t, 1, statuses[domain.StatusFailed])
}

func TestImportService_Import_FetchErrors(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")
	h.source.docs = []domain.RawDocument{
		rawTextDocument("good.txt", "Readable material."),
	}
	h.source.fetchErrs = []error{
		errors.New("drive file abc123: export failed"),
	}

	report, err := h.svc.Import(context.Background(), "course-1", driving.ImportSpec{
		SourceType: driving.ImportSourceGoogleDrive,
		FolderID:   "folder-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Fetched, "fetch errors are not counted as fetched documents")
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "export failed")
}

func TestImportService_Import_EmptySource(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")

	report, err := h.svc.Import(context.Background(), "course-1", driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, report.Fetched)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, report.Failed)
}

func TestImportService_Import_ContextCanceled(t *testing.T) {
	h := newImportHarness(t)
	h.seedCourse(t, "course-1", "Biology 101")
	h.source.blocking = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := h.svc.Import(ctx, "course-1", driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, report, "the partial report is returned alongside the error")
}

func TestImportService_Import_MaterialSourceTypes(t *testing.T) {
	assert.Equal(t, "filesystem", driving.ImportSourceDirectory)
	assert.Equal(t, "github", driving.ImportSourceGitHub)
	assert.Equal(t, "googledrive", driving.ImportSourceGoogleDrive)
}
