package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// Study generation parameters.
const (
	// maxStudyContentLength caps how much document text is sent to the
	// model. Longer documents are truncated, not rejected.
	maxStudyContentLength = 15000

	defaultFlashcardCount    = 10
	defaultQuizQuestionCount = 5

	flashcardsTemperature = 0.7
	flashcardsMaxTokens   = 2000

	quizTemperature = 0.8
	quizMaxTokens   = 3000

	notesTemperature = 0.7
	notesMaxTokens   = 2000
)

// Response-format contracts appended to the editable system prompts.
// Parsing depends on these shapes, so they live in code rather than in
// the prompt files.
const (
	flashcardsFormatSuffix = "\n\nRespond with only a JSON object in this exact shape, with no surrounding text:\n" +
		`{"flashcards": [{"front": "question or term", "back": "answer or definition"}]}`

	quizFormatSuffix = "\n\nRespond with only a JSON object in this exact shape, with no surrounding text:\n" +
		`{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer_index": 0, "explanation": "..."}]}`
)

// Ensure StudyService implements the interface.
var _ driving.StudyService = (*StudyService)(nil)

// StudyService generates study artifacts from processed documents.
type StudyService struct {
	docStore   driven.DocumentStore
	chunkStore driven.ChunkStore
	studyStore driven.StudyStore
	llm        driven.LLMService
	prompts    driven.PromptStore
}

// NewStudyService creates a new study service.
func NewStudyService(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	studyStore driven.StudyStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *StudyService {
	return &StudyService{
		docStore:   docStore,
		chunkStore: chunkStore,
		studyStore: studyStore,
		llm:        llm,
		prompts:    prompts,
	}
}

// flashcardsPayload is the JSON shape the model is instructed to return.
type flashcardsPayload struct {
	Flashcards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"flashcards"`
}

// quizPayload is the JSON shape the model is instructed to return.
type quizPayload struct {
	Questions []struct {
		Question           string   `json:"question"`
		Options            []string `json:"options"`
		CorrectAnswerIndex int      `json:"correct_answer_index"`
		Explanation        string   `json:"explanation"`
	} `json:"questions"`
}

// GenerateFlashcards creates a flashcard set from the document.
func (s *StudyService) GenerateFlashcards(ctx context.Context, documentID string, count int) (*domain.FlashcardSet, error) {
	logger.Section("Flashcard Generation")

	if count == 0 {
		count = defaultFlashcardCount
	}
	if count < domain.MinFlashcards || count > domain.MaxFlashcards {
		return nil, fmt.Errorf("%w: flashcard count must be %d-%d, got %d",
			domain.ErrInvalidInput, domain.MinFlashcards, domain.MaxFlashcards, count)
	}

	doc, content, err := s.loadStudyContent(ctx, documentID)
	if err != nil {
		return nil, err
	}

	systemTemplate, err := s.prompts.Load(driven.PromptFlashcardsSystem)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", driven.PromptFlashcardsSystem, err)
	}
	userTemplate, err := s.prompts.Load(driven.PromptFlashcardsUser)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", driven.PromptFlashcardsUser, err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(systemTemplate, count) + flashcardsFormatSuffix},
		{Role: "user", Content: fmt.Sprintf(userTemplate, doc.Filename, content, count)},
	}

	response, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		Temperature: flashcardsTemperature,
		MaxTokens:   flashcardsMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}

	var payload flashcardsPayload
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &payload); err != nil {
		return nil, fmt.Errorf("parse flashcards response: %w", err)
	}

	cards := make([]domain.Flashcard, len(payload.Flashcards))
	for i, card := range payload.Flashcards {
		cards[i] = domain.Flashcard{Front: card.Front, Back: card.Back}
	}

	set := &domain.FlashcardSet{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Cards:      cards,
		CreatedAt:  time.Now(),
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("generated flashcards: %w", err)
	}

	if err := s.studyStore.SaveFlashcardSet(ctx, set); err != nil {
		return nil, fmt.Errorf("save flashcard set: %w", err)
	}

	logger.Info("Generated %d flashcards for document %s", len(set.Cards), documentID)
	return set, nil
}

// GenerateQuiz creates a multiple-choice quiz from the document. A quiz
// with any out-of-range answer index is rejected as a whole.
func (s *StudyService) GenerateQuiz(ctx context.Context, documentID string, count int) (*domain.QuizSet, error) {
	logger.Section("Quiz Generation")

	if count == 0 {
		count = defaultQuizQuestionCount
	}
	if count < domain.MinQuizQuestions || count > domain.MaxQuizQuestions {
		return nil, fmt.Errorf("%w: question count must be %d-%d, got %d",
			domain.ErrInvalidInput, domain.MinQuizQuestions, domain.MaxQuizQuestions, count)
	}

	doc, content, err := s.loadStudyContent(ctx, documentID)
	if err != nil {
		return nil, err
	}

	systemTemplate, err := s.prompts.Load(driven.PromptQuizSystem)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", driven.PromptQuizSystem, err)
	}
	userTemplate, err := s.prompts.Load(driven.PromptQuizUser)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", driven.PromptQuizUser, err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(systemTemplate, count) + quizFormatSuffix},
		{Role: "user", Content: fmt.Sprintf(userTemplate, doc.Filename, content, count)},
	}

	response, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		Temperature: quizTemperature,
		MaxTokens:   quizMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var payload quizPayload
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &payload); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	questions := make([]domain.QuizQuestion, len(payload.Questions))
	for i, q := range payload.Questions {
		questions[i] = domain.QuizQuestion{
			Question:           q.Question,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			Explanation:        q.Explanation,
		}
	}

	set := &domain.QuizSet{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Questions:  questions,
		CreatedAt:  time.Now(),
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("generated quiz: %w", err)
	}

	if err := s.studyStore.SaveQuizSet(ctx, set); err != nil {
		return nil, fmt.Errorf("save quiz set: %w", err)
	}

	logger.Info("Generated %d quiz questions for document %s", len(set.Questions), documentID)
	return set, nil
}

// GenerateNotes creates a markdown study note from the document.
func (s *StudyService) GenerateNotes(ctx context.Context, documentID string, mode domain.NoteMode) (*domain.StudyNote, error) {
	logger.Section("Notes Generation")

	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown note mode %q", domain.ErrInvalidInput, mode)
	}

	doc, content, err := s.loadStudyContent(ctx, documentID)
	if err != nil {
		return nil, err
	}

	promptName := driven.PromptNotesBrief
	if mode == domain.NoteModeThorough {
		promptName = driven.PromptNotesThorough
	}
	template, err := s.prompts.Load(promptName)
	if err != nil {
		return nil, fmt.Errorf("load prompt %s: %w", promptName, err)
	}

	response, err := s.llm.Generate(ctx, fmt.Sprintf(template, doc.Filename, content), driven.GenerateOptions{
		Temperature: notesTemperature,
		MaxTokens:   notesMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate notes: %w", err)
	}

	body := strings.TrimSpace(response)
	if body == "" {
		return nil, fmt.Errorf("generated notes: model returned no content")
	}

	note := &domain.StudyNote{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Mode:       mode,
		Content:    body,
		CreatedAt:  time.Now(),
	}

	if err := s.studyStore.SaveStudyNote(ctx, note); err != nil {
		return nil, fmt.Errorf("save study note: %w", err)
	}

	logger.Info("Generated %s notes for document %s", mode, documentID)
	return note, nil
}

// ListFlashcardSets returns previously generated flashcard sets.
func (s *StudyService) ListFlashcardSets(ctx context.Context, documentID string) ([]domain.FlashcardSet, error) {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.studyStore.ListFlashcardSets(ctx, documentID)
}

// ListQuizSets returns previously generated quizzes.
func (s *StudyService) ListQuizSets(ctx context.Context, documentID string) ([]domain.QuizSet, error) {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.studyStore.ListQuizSets(ctx, documentID)
}

// ListStudyNotes returns previously generated notes.
func (s *StudyService) ListStudyNotes(ctx context.Context, documentID string) ([]domain.StudyNote, error) {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.studyStore.ListStudyNotes(ctx, documentID)
}

// loadStudyContent loads a processed document and its chunk text joined
// into one capped string.
func (s *StudyService) loadStudyContent(ctx context.Context, documentID string) (*domain.Document, string, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("get document: %w", err)
	}
	if doc.Status != domain.StatusDone {
		return nil, "", fmt.Errorf("document %q: %w", doc.Filename, domain.ErrDocumentNotProcessed)
	}

	chunks, err := s.chunkStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("get chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, "", fmt.Errorf("%w: document %q has no content to study", domain.ErrInvalidInput, doc.Filename)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	content := strings.Join(texts, "\n\n")
	if len(content) > maxStudyContentLength {
		content = content[:maxStudyContentLength]
		logger.Debug("Study content truncated to %d characters", maxStudyContentLength)
	}

	return doc, content, nil
}

// stripCodeFences removes a surrounding markdown code fence from a
// model response, including an optional language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
