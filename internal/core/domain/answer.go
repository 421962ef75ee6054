package domain

import "math"

// Confidence grades how well retrieved material supported an answer.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Confidence thresholds on the best retrieval score.
const (
	highConfidenceScore   = 0.75
	mediumConfidenceScore = 0.6
)

// ConfidenceFromScore maps the best retrieval score to a confidence
// level. It is a pure function of the top score alone.
func ConfidenceFromScore(score float64) Confidence {
	switch {
	case score >= highConfidenceScore:
		return ConfidenceHigh
	case score >= mediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// String returns the string representation.
func (c Confidence) String() string {
	return string(c)
}

// previewLength is the maximum chunk text shown in a source attribution.
const previewLength = 200

// RetrievedChunk pairs a chunk with its similarity score for a query.
type RetrievedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is cosine similarity clamped to [0, 1]. Higher is closer.
	Score float64
}

// SourceRef attributes part of an answer to a stored chunk.
type SourceRef struct {
	// ChunkID identifies the supporting chunk.
	ChunkID string

	// DocumentID identifies the document the chunk came from.
	DocumentID string

	// Filename is the document's original file name.
	Filename string

	// Preview is the chunk text truncated for display.
	Preview string

	// Score is the similarity score rounded to three decimals.
	Score float64

	// SequenceIndex is the chunk's position within its document.
	SequenceIndex int
}

// NewSourceRef builds the display attribution for a retrieved chunk.
func NewSourceRef(rc RetrievedChunk, filename string) SourceRef {
	preview := rc.Chunk.Content
	if len(preview) > previewLength {
		preview = preview[:previewLength] + "..."
	}
	return SourceRef{
		ChunkID:       rc.Chunk.ID,
		DocumentID:    rc.Chunk.DocumentID,
		Filename:      filename,
		Preview:       preview,
		Score:         math.Round(rc.Score*1000) / 1000,
		SequenceIndex: rc.Chunk.SequenceIndex,
	}
}

// Answer is a synthesized response grounded in retrieved chunks.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Confidence grades the retrieval support behind the answer.
	Confidence Confidence

	// Sources lists the chunks the answer was grounded in, in the order
	// they were presented to the model.
	Sources []SourceRef
}
