package driving

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// AskService answers questions grounded in a course's materials.
type AskService interface {
	// Ask embeds the question, retrieves the most relevant chunks from
	// the course, and synthesizes an answer citing them. A question no
	// chunk is relevant to returns domain.ErrNoRelevantContent.
	Ask(ctx context.Context, req AskRequest) (*domain.Answer, error)
}

// AskRequest is one question against one course.
type AskRequest struct {
	// CourseID scopes retrieval to a single course.
	CourseID string

	// Question is the student's question text.
	Question string

	// TopK caps how many chunks ground the answer. Zero means the
	// configured default.
	TopK int

	// MinScore is the relevance threshold. Zero means the configured
	// default; pass a negative value to disable filtering entirely.
	MinScore float64
}
