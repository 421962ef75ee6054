package mcp

import (
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions grounded in course materials.
	Ask driving.AskService

	// Study generates flashcards, quizzes, and notes.
	Study driving.StudyService

	// Course manages courses.
	Course driving.CourseService

	// Document manages documents within courses.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Study, Course, and Document are optional; their tools and
	// resources report themselves unavailable.
	return nil
}
