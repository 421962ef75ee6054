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

// Ensure CourseService implements the interface.
var _ driving.CourseService = (*CourseService)(nil)

// CourseService manages courses.
type CourseService struct {
	courseStore driven.CourseStore
}

// NewCourseService creates a new course service.
func NewCourseService(courseStore driven.CourseStore) *CourseService {
	return &CourseService{
		courseStore: courseStore,
	}
}

// Add creates a new course.
func (s *CourseService) Add(ctx context.Context, name, description string) (*domain.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: course name is required", domain.ErrInvalidInput)
	}

	// Reject duplicate names so attributions stay unambiguous.
	existing, err := s.courseStore.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	for i := range existing {
		if strings.EqualFold(existing[i].Name, name) {
			return nil, fmt.Errorf("%w: course %q", domain.ErrAlreadyExists, name)
		}
	}

	now := time.Now()
	course := &domain.Course{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.courseStore.SaveCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("save course: %w", err)
	}

	logger.Info("Created course %s (%s)", course.Name, course.ID)
	return course, nil
}

// Get retrieves a course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: course id is required", domain.ErrInvalidInput)
	}
	return s.courseStore.GetCourse(ctx, id)
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courseStore.ListCourses(ctx)
}

// Remove deletes a course with all its documents and chunks.
func (s *CourseService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: course id is required", domain.ErrInvalidInput)
	}

	// Verify the course exists so callers get ErrNotFound, not a silent no-op.
	if _, err := s.courseStore.GetCourse(ctx, id); err != nil {
		return err
	}

	if err := s.courseStore.DeleteCourse(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	logger.Info("Removed course %s", id)
	return nil
}
