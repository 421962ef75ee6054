// Package messages defines Bubbletea message types for the chat view.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// CourseLoaded carries the course shown in the chat header.
type CourseLoaded struct {
	Course *domain.Course
	Err    error
}

// AnswerReceived carries the outcome of an ask back to the model.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
