package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// StudyStore persists generated study artifacts as typed records.
type StudyStore interface {
	// SaveFlashcardSet stores a flashcard set and its cards.
	SaveFlashcardSet(ctx context.Context, set *domain.FlashcardSet) error

	// ListFlashcardSets returns a document's flashcard sets, newest first.
	ListFlashcardSets(ctx context.Context, documentID string) ([]domain.FlashcardSet, error)

	// SaveQuizSet stores a quiz and its questions.
	SaveQuizSet(ctx context.Context, set *domain.QuizSet) error

	// ListQuizSets returns a document's quizzes, newest first.
	ListQuizSets(ctx context.Context, documentID string) ([]domain.QuizSet, error)

	// SaveStudyNote stores a generated note.
	SaveStudyNote(ctx context.Context, note *domain.StudyNote) error

	// ListStudyNotes returns a document's notes, newest first.
	ListStudyNotes(ctx context.Context, documentID string) ([]domain.StudyNote, error)
}
