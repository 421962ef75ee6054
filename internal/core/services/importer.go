package services

import (
	"context"
	"fmt"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// SourceFactory builds a material source from an import spec.
// The wiring layer supplies a factory that knows every configured
// source type.
type SourceFactory func(spec driving.ImportSpec) (driven.MaterialSource, error)

// ImportService drains material sources into courses: every fetched
// file is registered as a document and run through the processing
// pipeline.
type ImportService struct {
	courseStore driven.CourseStore
	documents   driving.DocumentService
	processor   driving.ProcessingOrchestrator
	newSource   SourceFactory
}

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// NewImportService creates a new import service.
func NewImportService(
	courseStore driven.CourseStore,
	documents driving.DocumentService,
	processor driving.ProcessingOrchestrator,
	newSource SourceFactory,
) *ImportService {
	return &ImportService{
		courseStore: courseStore,
		documents:   documents,
		processor:   processor,
		newSource:   newSource,
	}
}

// Import fetches every document the spec's source yields and processes
// it into the course. Per-document failures are recorded in the report
// and do not stop the import.
func (s *ImportService) Import(ctx context.Context, courseID string, spec driving.ImportSpec) (*driving.ImportReport, error) {
	if courseID == "" {
		return nil, fmt.Errorf("%w: course id must not be empty", domain.ErrInvalidInput)
	}

	course, err := s.courseStore.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	source, err := s.newSource(spec)
	if err != nil {
		return nil, fmt.Errorf("create %s source: %w", spec.SourceType, err)
	}
	defer source.Close()

	if err := source.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate %s source: %w", source.Type(), err)
	}

	logger.Section("Import")
	logger.Info("Importing from %s into course %q", source.Type(), course.Name)

	report := &driving.ImportReport{}
	docsCh, errsCh := source.Fetch(ctx)

	// Drain both channels until the source closes them.
	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return report, ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			report.Failed++
			report.Errors = append(report.Errors, err.Error())
			logger.Warn("Fetch failed: %v", err)

		case raw, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			report.Fetched++

			logger.Debug("Importing: %s", raw.URI)
			if err := s.importOne(ctx, courseID, raw); err != nil {
				report.Failed++
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", raw.Filename, err))
				logger.Warn("Import failed for %s: %v", raw.Filename, err)
				continue
			}
			report.Processed++
		}
	}

	logger.Info("Import finished: %d fetched, %d processed, %d failed",
		report.Fetched, report.Processed, report.Failed)
	return report, nil
}

// importOne registers a fetched document and runs it through the
// pipeline. Failed documents keep their row so the failure reason stays
// visible in listings.
func (s *ImportService) importOne(ctx context.Context, courseID string, raw domain.RawDocument) error {
	doc, err := s.documents.Register(ctx, courseID, raw.Filename, raw.MIMEType)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	if _, err := s.processor.Process(ctx, doc.ID, raw.Content); err != nil {
		return fmt.Errorf("process: %w", err)
	}
	return nil
}
