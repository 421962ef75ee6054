package driving

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// CourseService manages courses.
type CourseService interface {
	// Add creates a new course.
	Add(ctx context.Context, name, description string) (*domain.Course, error)

	// Get retrieves a course by ID.
	Get(ctx context.Context, id string) (*domain.Course, error)

	// List returns all courses.
	List(ctx context.Context) ([]domain.Course, error)

	// Remove deletes a course with all its documents and chunks.
	Remove(ctx context.Context, id string) error
}
