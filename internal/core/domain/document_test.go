package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProcessingStatus_IsValid tests recognised and unrecognised statuses
func TestProcessingStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   ProcessingStatus
		expected bool
	}{
		{name: "pending is valid", status: StatusPending, expected: true},
		{name: "extracting is valid", status: StatusExtracting, expected: true},
		{name: "chunking is valid", status: StatusChunking, expected: true},
		{name: "embedding is valid", status: StatusEmbedding, expected: true},
		{name: "storing is valid", status: StatusStoring, expected: true},
		{name: "done is valid", status: StatusDone, expected: true},
		{name: "failed is valid", status: StatusFailed, expected: true},
		{name: "empty string is invalid", status: ProcessingStatus(""), expected: false},
		{name: "unknown status is invalid", status: ProcessingStatus("queued"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsValid())
		})
	}
}

// TestProcessingStatus_CanTransitionTo tests the pipeline state machine
func TestProcessingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     ProcessingStatus
		to       ProcessingStatus
		expected bool
	}{
		{name: "pending to extracting", from: StatusPending, to: StatusExtracting, expected: true},
		{name: "extracting to chunking", from: StatusExtracting, to: StatusChunking, expected: true},
		{name: "chunking to embedding", from: StatusChunking, to: StatusEmbedding, expected: true},
		{name: "embedding to storing", from: StatusEmbedding, to: StatusStoring, expected: true},
		{name: "storing to done", from: StatusStoring, to: StatusDone, expected: true},
		{name: "pending cannot skip to embedding", from: StatusPending, to: StatusEmbedding, expected: false},
		{name: "extracting cannot go back to pending", from: StatusExtracting, to: StatusPending, expected: false},
		{name: "pending can fail", from: StatusPending, to: StatusFailed, expected: true},
		{name: "extracting can fail", from: StatusExtracting, to: StatusFailed, expected: true},
		{name: "embedding can fail", from: StatusEmbedding, to: StatusFailed, expected: true},
		{name: "storing can fail", from: StatusStoring, to: StatusFailed, expected: true},
		{name: "done cannot fail", from: StatusDone, to: StatusFailed, expected: false},
		{name: "failed cannot fail again", from: StatusFailed, to: StatusFailed, expected: false},
		{name: "done can reprocess to pending", from: StatusDone, to: StatusPending, expected: true},
		{name: "failed can reprocess to pending", from: StatusFailed, to: StatusPending, expected: true},
		{name: "done cannot resume mid-pipeline", from: StatusDone, to: StatusExtracting, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// TestProcessingStatus_IsTerminal tests terminal state detection
func TestProcessingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusExtracting.IsTerminal())
	assert.False(t, StatusStoring.IsTerminal())
}

// TestProcessingStatus_IsActive tests in-flight state detection
func TestProcessingStatus_IsActive(t *testing.T) {
	assert.False(t, StatusPending.IsActive())
	assert.True(t, StatusExtracting.IsActive())
	assert.True(t, StatusChunking.IsActive())
	assert.True(t, StatusEmbedding.IsActive())
	assert.True(t, StatusStoring.IsActive())
	assert.False(t, StatusDone.IsActive())
	assert.False(t, StatusFailed.IsActive())
}
