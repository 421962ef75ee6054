package domain

import "time"

// Course groups related study materials. All retrieval is scoped to a
// single course: a question asked against one course never sees another
// course's chunks.
type Course struct {
	// ID is the unique identifier for the course.
	ID string

	// Name is the human-readable course name.
	Name string

	// Description is an optional free-form summary.
	Description string

	// CreatedAt is when the course was created.
	CreatedAt time.Time

	// UpdatedAt is when the course was last modified.
	UpdatedAt time.Time
}
