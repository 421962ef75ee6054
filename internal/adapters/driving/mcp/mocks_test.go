package mcp

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _ driving.AskRequest) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockStudyService is a mock implementation of driving.StudyService.
type mockStudyService struct {
	flashcards    *domain.FlashcardSet
	quiz          *domain.QuizSet
	note          *domain.StudyNote
	flashcardSets []domain.FlashcardSet
	quizSets      []domain.QuizSet
	notes         []domain.StudyNote
	err           error
}

func (m *mockStudyService) GenerateFlashcards(_ context.Context, _ string, _ int) (*domain.FlashcardSet, error) {
	return m.flashcards, m.err
}

func (m *mockStudyService) GenerateQuiz(_ context.Context, _ string, _ int) (*domain.QuizSet, error) {
	return m.quiz, m.err
}

func (m *mockStudyService) GenerateNotes(_ context.Context, _ string, _ domain.NoteMode) (*domain.StudyNote, error) {
	return m.note, m.err
}

func (m *mockStudyService) ListFlashcardSets(_ context.Context, _ string) ([]domain.FlashcardSet, error) {
	return m.flashcardSets, m.err
}

func (m *mockStudyService) ListQuizSets(_ context.Context, _ string) ([]domain.QuizSet, error) {
	return m.quizSets, m.err
}

func (m *mockStudyService) ListStudyNotes(_ context.Context, _ string) ([]domain.StudyNote, error) {
	return m.notes, m.err
}

// mockCourseService is a mock implementation of driving.CourseService.
type mockCourseService struct {
	courses []domain.Course
	course  *domain.Course
	err     error
}

func (m *mockCourseService) Add(_ context.Context, _, _ string) (*domain.Course, error) {
	return m.course, m.err
}

func (m *mockCourseService) Get(_ context.Context, _ string) (*domain.Course, error) {
	return m.course, m.err
}

func (m *mockCourseService) List(_ context.Context) ([]domain.Course, error) {
	return m.courses, m.err
}

func (m *mockCourseService) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	details   *driving.DocumentDetails
	err       error
}

func (m *mockDocumentService) Register(_ context.Context, _, _, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) ListByCourse(_ context.Context, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}
