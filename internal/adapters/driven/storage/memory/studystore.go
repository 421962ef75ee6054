package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure StudyStore implements the interface.
var _ driven.StudyStore = (*StudyStore)(nil)

// StudyStore is an in-memory implementation of driven.StudyStore.
type StudyStore struct {
	mu            sync.RWMutex
	flashcardSets map[string][]domain.FlashcardSet
	quizSets      map[string][]domain.QuizSet
	notes         map[string][]domain.StudyNote
}

// NewStudyStore creates a new in-memory study store.
func NewStudyStore() *StudyStore {
	return &StudyStore{
		flashcardSets: make(map[string][]domain.FlashcardSet),
		quizSets:      make(map[string][]domain.QuizSet),
		notes:         make(map[string][]domain.StudyNote),
	}
}

// SaveFlashcardSet stores a flashcard set.
func (s *StudyStore) SaveFlashcardSet(_ context.Context, set *domain.FlashcardSet) error {
	if set == nil || set.ID == "" || set.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashcardSets[set.DocumentID] = append(s.flashcardSets[set.DocumentID], *set)
	return nil
}

// ListFlashcardSets returns a document's flashcard sets, newest first.
func (s *StudyStore) ListFlashcardSets(_ context.Context, documentID string) ([]domain.FlashcardSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := make([]domain.FlashcardSet, len(s.flashcardSets[documentID]))
	copy(sets, s.flashcardSets[documentID])
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].CreatedAt.After(sets[j].CreatedAt)
	})
	return sets, nil
}

// SaveQuizSet stores a quiz.
func (s *StudyStore) SaveQuizSet(_ context.Context, set *domain.QuizSet) error {
	if set == nil || set.ID == "" || set.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizSets[set.DocumentID] = append(s.quizSets[set.DocumentID], *set)
	return nil
}

// ListQuizSets returns a document's quizzes, newest first.
func (s *StudyStore) ListQuizSets(_ context.Context, documentID string) ([]domain.QuizSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := make([]domain.QuizSet, len(s.quizSets[documentID]))
	copy(sets, s.quizSets[documentID])
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].CreatedAt.After(sets[j].CreatedAt)
	})
	return sets, nil
}

// SaveStudyNote stores a generated note.
func (s *StudyStore) SaveStudyNote(_ context.Context, note *domain.StudyNote) error {
	if note == nil || note.ID == "" || note.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.DocumentID] = append(s.notes[note.DocumentID], *note)
	return nil
}

// ListStudyNotes returns a document's notes, newest first.
func (s *StudyStore) ListStudyNotes(_ context.Context, documentID string) ([]domain.StudyNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]domain.StudyNote, len(s.notes[documentID]))
	copy(notes, s.notes[documentID])
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}
