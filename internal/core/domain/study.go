package domain

import (
	"fmt"
	"time"
)

// Study artifact size bounds. Generated sets outside these bounds are
// rejected rather than trimmed.
const (
	MinFlashcards = 5
	MaxFlashcards = 15

	MinQuizQuestions = 3
	MaxQuizQuestions = 10

	MinQuizOptions = 2
	MaxQuizOptions = 6
)

// Flashcard is one front/back study card.
type Flashcard struct {
	// Front is the question or term.
	Front string

	// Back is the answer or definition.
	Back string
}

// Validate checks the card's field bounds.
func (f Flashcard) Validate() error {
	if n := len(f.Front); n < 3 || n > 500 {
		return fmt.Errorf("%w: flashcard front must be 3-500 characters, got %d", ErrInvalidInput, n)
	}
	if n := len(f.Back); n < 3 || n > 1000 {
		return fmt.Errorf("%w: flashcard back must be 3-1000 characters, got %d", ErrInvalidInput, n)
	}
	return nil
}

// FlashcardSet is a generated deck of flashcards for one document.
type FlashcardSet struct {
	// ID is the unique identifier for the set.
	ID string

	// DocumentID links to the source document.
	DocumentID string

	// Cards are the flashcards, in generation order.
	Cards []Flashcard

	// CreatedAt is when the set was generated.
	CreatedAt time.Time
}

// Validate checks the set and every card in it.
func (s FlashcardSet) Validate() error {
	if n := len(s.Cards); n < MinFlashcards || n > MaxFlashcards {
		return fmt.Errorf("%w: flashcard set must have %d-%d cards, got %d",
			ErrInvalidInput, MinFlashcards, MaxFlashcards, n)
	}
	for i, card := range s.Cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
	}
	return nil
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	// Question is the question text.
	Question string

	// Options are the answer choices.
	Options []string

	// CorrectAnswerIndex is the 0-based index of the correct option.
	CorrectAnswerIndex int

	// Explanation says why the correct answer is correct.
	Explanation string
}

// Validate checks the question's field bounds. An out-of-range
// CorrectAnswerIndex is ErrInvalidAnswerIndex: the index is never
// clamped into range.
func (q QuizQuestion) Validate() error {
	if n := len(q.Question); n < 10 || n > 500 {
		return fmt.Errorf("%w: question must be 10-500 characters, got %d", ErrInvalidInput, n)
	}
	if n := len(q.Options); n < MinQuizOptions || n > MaxQuizOptions {
		return fmt.Errorf("%w: question must have %d-%d options, got %d",
			ErrInvalidInput, MinQuizOptions, MaxQuizOptions, n)
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return fmt.Errorf("%w: index %d with %d options",
			ErrInvalidAnswerIndex, q.CorrectAnswerIndex, len(q.Options))
	}
	if n := len(q.Explanation); n < 10 || n > 500 {
		return fmt.Errorf("%w: explanation must be 10-500 characters, got %d", ErrInvalidInput, n)
	}
	return nil
}

// QuizSet is a generated quiz for one document.
type QuizSet struct {
	// ID is the unique identifier for the set.
	ID string

	// DocumentID links to the source document.
	DocumentID string

	// Questions are the quiz questions, in generation order.
	Questions []QuizQuestion

	// CreatedAt is when the set was generated.
	CreatedAt time.Time
}

// Validate checks the set and every question in it. Any invalid
// question rejects the whole set.
func (s QuizSet) Validate() error {
	if n := len(s.Questions); n < MinQuizQuestions || n > MaxQuizQuestions {
		return fmt.Errorf("%w: quiz must have %d-%d questions, got %d",
			ErrInvalidInput, MinQuizQuestions, MaxQuizQuestions, n)
	}
	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// NoteMode selects the depth of a generated study note.
type NoteMode string

// Available note modes.
const (
	// NoteModeBrief is a condensed summary of the key points.
	NoteModeBrief NoteMode = "brief"

	// NoteModeThorough is a detailed walkthrough of the material.
	NoteModeThorough NoteMode = "thorough"
)

// IsValid returns true if the note mode is recognised.
func (m NoteMode) IsValid() bool {
	return m == NoteModeBrief || m == NoteModeThorough
}

// String returns the string representation.
func (m NoteMode) String() string {
	return string(m)
}

// StudyNote is a generated markdown summary of one document.
type StudyNote struct {
	// ID is the unique identifier for the note.
	ID string

	// DocumentID links to the source document.
	DocumentID string

	// Mode is the depth the note was generated at.
	Mode NoteMode

	// Content is the note body in markdown.
	Content string

	// CreatedAt is when the note was generated.
	CreatedAt time.Time
}
