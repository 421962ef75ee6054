package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure CourseStore implements the interface.
var _ driven.CourseStore = (*CourseStore)(nil)

// CourseStore is an in-memory implementation of driven.CourseStore.
type CourseStore struct {
	mu      sync.RWMutex
	courses map[string]domain.Course
}

// NewCourseStore creates a new in-memory course store.
func NewCourseStore() *CourseStore {
	return &CourseStore{
		courses: make(map[string]domain.Course),
	}
}

// SaveCourse stores or updates a course.
func (s *CourseStore) SaveCourse(_ context.Context, course *domain.Course) error {
	if course == nil || course.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[course.ID] = *course
	return nil
}

// GetCourse retrieves a course by ID.
func (s *CourseStore) GetCourse(_ context.Context, id string) (*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	course, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &course, nil
}

// ListCourses returns all courses sorted by name.
func (s *CourseStore) ListCourses(_ context.Context) ([]domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]domain.Course, 0, len(s.courses))
	for _, course := range s.courses {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Name != courses[j].Name {
			return courses[i].Name < courses[j].Name
		}
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

// DeleteCourse removes a course.
func (s *CourseStore) DeleteCourse(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	return nil
}
