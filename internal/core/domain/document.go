package domain

import "time"

// ProcessingStatus is the lifecycle state of a document's ingestion
// pipeline. A document moves through the stages in order and ends in
// either StatusDone or StatusFailed.
type ProcessingStatus string

// Document processing states, in pipeline order.
const (
	// StatusPending means the document is registered but not yet processed.
	StatusPending ProcessingStatus = "pending"

	// StatusExtracting means text extraction is running.
	StatusExtracting ProcessingStatus = "extracting"

	// StatusChunking means the extracted text is being split.
	StatusChunking ProcessingStatus = "chunking"

	// StatusEmbedding means chunk embeddings are being computed.
	StatusEmbedding ProcessingStatus = "embedding"

	// StatusStoring means chunks are being written to storage.
	StatusStoring ProcessingStatus = "storing"

	// StatusDone means all chunks are stored and retrievable.
	StatusDone ProcessingStatus = "done"

	// StatusFailed means processing stopped with an error. The reason is
	// recorded on the document.
	StatusFailed ProcessingStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusExtracting, StatusChunking,
		StatusEmbedding, StatusStoring, StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions leave this status
// except an explicit reprocess.
func (s ProcessingStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// IsActive returns true if a processing run currently owns the document.
func (s ProcessingStatus) IsActive() bool {
	switch s {
	case StatusExtracting, StatusChunking, StatusEmbedding, StatusStoring:
		return true
	default:
		return false
	}
}

// next maps each pipeline stage to its successor.
var next = map[ProcessingStatus]ProcessingStatus{
	StatusPending:    StatusExtracting,
	StatusExtracting: StatusChunking,
	StatusChunking:   StatusEmbedding,
	StatusEmbedding:  StatusStoring,
	StatusStoring:    StatusDone,
}

// CanTransitionTo reports whether moving from s to target is a legal
// step. StatusFailed is reachable from any non-terminal state; terminal
// states only move back to StatusPending (reprocess).
func (s ProcessingStatus) CanTransitionTo(target ProcessingStatus) bool {
	if target == StatusFailed {
		return !s.IsTerminal()
	}
	if s.IsTerminal() {
		return target == StatusPending
	}
	return next[s] == target
}

// String returns the string representation.
func (s ProcessingStatus) String() string {
	return string(s)
}

// Document represents one course material: the original file identity
// plus its processing state. The extracted text is not retained; chunks
// are the persistent derived form.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// CourseID links to the owning Course.
	CourseID string

	// Filename is the original file name, shown in source attributions.
	Filename string

	// MIMEType is the declared content type (e.g. "application/pdf").
	MIMEType string

	// Status is the current processing state.
	Status ProcessingStatus

	// FailureReason holds the error message when Status is StatusFailed.
	FailureReason string

	// ChunkCount is the number of stored chunks. Zero until StatusDone.
	ChunkCount int

	// CreatedAt is when the document was registered.
	CreatedAt time.Time

	// UpdatedAt is when the document last changed state.
	UpdatedAt time.Time
}

// Chunk is the retrieval unit: a contiguous span of extracted text with
// its embedding vector. Chunks are immutable; reprocessing a document
// deletes and recreates them.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// SequenceIndex is the chunk's position within the document.
	// Indices are dense: 0..N-1 with no gaps.
	SequenceIndex int

	// Content is the chunk text. Never empty for a stored chunk.
	Content string

	// Embedding is the vector representation used for similarity search.
	Embedding []float32
}
