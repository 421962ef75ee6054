// Package tui provides the interactive chat view for CourseMate.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the chat view.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions grounded in course materials.
	Ask driving.AskService

	// Course resolves the course shown in the header.
	Course driving.CourseService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(ask driving.AskService, course driving.CourseService) *Ports {
	return &Ports{
		Ask:    ask,
		Course: course,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	if p.Course == nil {
		return ErrMissingCourseService
	}
	return nil
}
