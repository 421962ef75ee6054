package tui

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("tui: ask service is required")

// ErrMissingCourseService is returned when the course service is not provided.
var ErrMissingCourseService = errors.New("tui: course service is required")

// ErrMissingCourseID is returned when no course is selected for the chat.
var ErrMissingCourseID = errors.New("tui: course id is required")
