package driving

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// StudyService generates study artifacts from processed documents.
// Every operation requires the document to have stored chunks;
// unprocessed documents return domain.ErrDocumentNotProcessed.
type StudyService interface {
	// GenerateFlashcards creates a flashcard set from the document.
	// Zero count means the default (10).
	GenerateFlashcards(ctx context.Context, documentID string, count int) (*domain.FlashcardSet, error)

	// GenerateQuiz creates a multiple-choice quiz from the document.
	// Zero count means the default (5).
	GenerateQuiz(ctx context.Context, documentID string, count int) (*domain.QuizSet, error)

	// GenerateNotes creates a markdown study note from the document.
	GenerateNotes(ctx context.Context, documentID string, mode domain.NoteMode) (*domain.StudyNote, error)

	// ListFlashcardSets returns previously generated flashcard sets.
	ListFlashcardSets(ctx context.Context, documentID string) ([]domain.FlashcardSet, error)

	// ListQuizSets returns previously generated quizzes.
	ListQuizSets(ctx context.Context, documentID string) ([]domain.QuizSet, error)

	// ListStudyNotes returns previously generated notes.
	ListStudyNotes(ctx context.Context, documentID string) ([]domain.StudyNote, error)
}
