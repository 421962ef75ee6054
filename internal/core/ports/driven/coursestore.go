package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// CourseStore persists courses.
type CourseStore interface {
	// SaveCourse stores or updates a course.
	SaveCourse(ctx context.Context, course *domain.Course) error

	// GetCourse retrieves a course by ID.
	GetCourse(ctx context.Context, id string) (*domain.Course, error)

	// ListCourses returns all courses.
	ListCourses(ctx context.Context) ([]domain.Course, error)

	// DeleteCourse removes a course, its documents, and their chunks.
	DeleteCourse(ctx context.Context, id string) error
}
