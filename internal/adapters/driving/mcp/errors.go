// Package mcp provides an MCP (Model Context Protocol) server adapter for
// CourseMate. It lets AI assistants like Claude ask questions against course
// materials and generate study artifacts.
package mcp

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")
