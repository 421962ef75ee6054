package cli

import (
	"context"
	"errors"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// errMock is the error every *Error mock returns.
var errMock = errors.New("mock failure")

// setupTestServices wires happy-path mocks into every service slot and
// returns a cleanup that restores the previous services.
func setupTestServices() func() {
	oldCourse := courseService
	oldDocument := documentService
	oldProcessing := processingService
	oldAsk := askService
	oldStudy := studyService
	oldImport := importService
	oldConnect := connectService
	oldSettings := settingsService

	courseService = &mockCourseService{}
	documentService = &mockDocumentService{}
	processingService = &mockProcessingService{}
	askService = &mockAskService{}
	studyService = &mockStudyService{}
	importService = &mockImporter{}
	connectService = &mockConnectService{}
	settingsService = &mockSettingsService{}

	return func() {
		courseService = oldCourse
		documentService = oldDocument
		processingService = oldProcessing
		askService = oldAsk
		studyService = oldStudy
		importService = oldImport
		connectService = oldConnect
		settingsService = oldSettings
	}
}

// Course service mocks

type mockCourseService struct{}

func (m *mockCourseService) Add(_ context.Context, name, description string) (*domain.Course, error) {
	return &domain.Course{ID: "course-1", Name: name, Description: description, CreatedAt: time.Now()}, nil
}

func (m *mockCourseService) Get(_ context.Context, id string) (*domain.Course, error) {
	return &domain.Course{ID: id, Name: "Biology 101", CreatedAt: time.Now()}, nil
}

func (m *mockCourseService) List(_ context.Context) ([]domain.Course, error) {
	return []domain.Course{
		{ID: "course-1", Name: "Biology 101", Description: "Intro biology", CreatedAt: time.Now()},
	}, nil
}

func (m *mockCourseService) Remove(_ context.Context, _ string) error {
	return nil
}

type mockCourseServiceEmpty struct {
	mockCourseService
}

func (m *mockCourseServiceEmpty) List(_ context.Context) ([]domain.Course, error) {
	return nil, nil
}

type mockCourseServiceError struct{}

func (m *mockCourseServiceError) Add(_ context.Context, _, _ string) (*domain.Course, error) {
	return nil, errMock
}

func (m *mockCourseServiceError) Get(_ context.Context, _ string) (*domain.Course, error) {
	return nil, errMock
}

func (m *mockCourseServiceError) List(_ context.Context) ([]domain.Course, error) {
	return nil, errMock
}

func (m *mockCourseServiceError) Remove(_ context.Context, _ string) error {
	return errMock
}

// Document service mocks

type mockDocumentService struct{}

func (m *mockDocumentService) Register(_ context.Context, courseID, filename, mimeType string) (*domain.Document, error) {
	return &domain.Document{
		ID:       "doc-1",
		CourseID: courseID,
		Filename: filename,
		MIMEType: mimeType,
		Status:   domain.StatusPending,
	}, nil
}

func (m *mockDocumentService) ListByCourse(_ context.Context, courseID string) ([]domain.Document, error) {
	return []domain.Document{
		{ID: "doc-1", CourseID: courseID, Filename: "lecture.md", Status: domain.StatusDone, ChunkCount: 3},
	}, nil
}

func (m *mockDocumentService) Get(_ context.Context, documentID string) (*domain.Document, error) {
	return &domain.Document{
		ID:       documentID,
		CourseID: "course-1",
		Filename: "lecture.md",
		MIMEType: "text/markdown",
		Status:   domain.StatusDone,
	}, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return "This is the content of the test document.", nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, documentID string) (*driving.DocumentDetails, error) {
	return &driving.DocumentDetails{
		ID:         documentID,
		CourseID:   "course-1",
		CourseName: "Biology 101",
		Filename:   "lecture.md",
		MIMEType:   "text/markdown",
		Status:     domain.StatusDone,
		ChunkCount: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return nil
}

type mockDocumentServiceEmpty struct {
	mockDocumentService
}

func (m *mockDocumentServiceEmpty) ListByCourse(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, nil
}

type mockDocumentServiceError struct{}

func (m *mockDocumentServiceError) Register(_ context.Context, _, _, _ string) (*domain.Document, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) ListByCourse(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) GetContent(_ context.Context, _ string) (string, error) {
	return "", errMock
}

func (m *mockDocumentServiceError) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) Delete(_ context.Context, _ string) error {
	return errMock
}

// Processing orchestrator mocks

type mockProcessingService struct{}

func (m *mockProcessingService) Process(_ context.Context, _ string, _ []byte) (int, error) {
	return 3, nil
}

func (m *mockProcessingService) Reprocess(_ context.Context, _ string, _ []byte) (int, error) {
	return 3, nil
}

func (m *mockProcessingService) Status(_ context.Context, documentID string) (*driving.RunStatus, error) {
	return &driving.RunStatus{DocumentID: documentID, Running: false}, nil
}

type mockProcessingServiceError struct{}

func (m *mockProcessingServiceError) Process(_ context.Context, _ string, _ []byte) (int, error) {
	return 0, errMock
}

func (m *mockProcessingServiceError) Reprocess(_ context.Context, _ string, _ []byte) (int, error) {
	return 0, errMock
}

func (m *mockProcessingServiceError) Status(_ context.Context, _ string) (*driving.RunStatus, error) {
	return nil, errMock
}

// Ask service mocks

type mockAskService struct{}

func (m *mockAskService) Ask(_ context.Context, _ driving.AskRequest) (*domain.Answer, error) {
	return &domain.Answer{
		Text:       "Osmosis is the movement of water across a membrane.",
		Confidence: domain.ConfidenceHigh,
		Sources: []domain.SourceRef{
			{ChunkID: "chunk-1", DocumentID: "doc-1", Filename: "lecture.md", Score: 0.87, SequenceIndex: 2},
		},
	}, nil
}

type mockAskServiceNoContent struct{}

func (m *mockAskServiceNoContent) Ask(_ context.Context, _ driving.AskRequest) (*domain.Answer, error) {
	return nil, domain.ErrNoRelevantContent
}

type mockAskServiceError struct{}

func (m *mockAskServiceError) Ask(_ context.Context, _ driving.AskRequest) (*domain.Answer, error) {
	return nil, errMock
}

// Study service mocks

type mockStudyService struct{}

func (m *mockStudyService) GenerateFlashcards(_ context.Context, documentID string, _ int) (*domain.FlashcardSet, error) {
	return &domain.FlashcardSet{
		ID:         "set-1",
		DocumentID: documentID,
		Cards: []domain.Flashcard{
			{Front: "What is osmosis?", Back: "Movement of water across a membrane."},
			{Front: "What is diffusion?", Back: "Movement of particles down a gradient."},
			{Front: "What is a solute?", Back: "The dissolved substance in a solution."},
			{Front: "What is a solvent?", Back: "The dissolving medium of a solution."},
			{Front: "What is tonicity?", Back: "The relative solute concentration outside a cell."},
		},
		CreatedAt: time.Now(),
	}, nil
}

func (m *mockStudyService) GenerateQuiz(_ context.Context, documentID string, _ int) (*domain.QuizSet, error) {
	return &domain.QuizSet{
		ID:         "quiz-1",
		DocumentID: documentID,
		Questions: []domain.QuizQuestion{
			{
				Question:           "Which process moves water across a membrane?",
				Options:            []string{"Osmosis", "Mitosis", "Glycolysis", "Translation"},
				CorrectAnswerIndex: 0,
				Explanation:        "Osmosis moves water toward higher solute concentration.",
			},
			{
				Question:           "What does a hypertonic solution do to a cell?",
				Options:            []string{"Swells it", "Shrinks it", "Divides it", "Nothing"},
				CorrectAnswerIndex: 1,
				Explanation:        "Water leaves the cell toward the solute outside.",
			},
			{
				Question:           "Which molecule is the universal solvent?",
				Options:            []string{"Ethanol", "Glucose", "Water", "Lipid"},
				CorrectAnswerIndex: 2,
				Explanation:        "Water dissolves more substances than any other liquid.",
			},
		},
		CreatedAt: time.Now(),
	}, nil
}

func (m *mockStudyService) GenerateNotes(_ context.Context, documentID string, mode domain.NoteMode) (*domain.StudyNote, error) {
	return &domain.StudyNote{
		ID:         "note-1",
		DocumentID: documentID,
		Mode:       mode,
		Content:    "# Key Points\n\n- Osmosis moves water across membranes.",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *mockStudyService) ListFlashcardSets(_ context.Context, documentID string) ([]domain.FlashcardSet, error) {
	return []domain.FlashcardSet{
		{ID: "set-1", DocumentID: documentID, Cards: make([]domain.Flashcard, 5), CreatedAt: time.Now()},
	}, nil
}

func (m *mockStudyService) ListQuizSets(_ context.Context, documentID string) ([]domain.QuizSet, error) {
	return []domain.QuizSet{
		{ID: "quiz-1", DocumentID: documentID, Questions: make([]domain.QuizQuestion, 3), CreatedAt: time.Now()},
	}, nil
}

func (m *mockStudyService) ListStudyNotes(_ context.Context, documentID string) ([]domain.StudyNote, error) {
	return []domain.StudyNote{
		{ID: "note-1", DocumentID: documentID, Mode: domain.NoteModeBrief, CreatedAt: time.Now()},
	}, nil
}

type mockStudyServiceError struct{}

func (m *mockStudyServiceError) GenerateFlashcards(_ context.Context, _ string, _ int) (*domain.FlashcardSet, error) {
	return nil, errMock
}

func (m *mockStudyServiceError) GenerateQuiz(_ context.Context, _ string, _ int) (*domain.QuizSet, error) {
	return nil, errMock
}

func (m *mockStudyServiceError) GenerateNotes(_ context.Context, _ string, _ domain.NoteMode) (*domain.StudyNote, error) {
	return nil, errMock
}

func (m *mockStudyServiceError) ListFlashcardSets(_ context.Context, _ string) ([]domain.FlashcardSet, error) {
	return nil, errMock
}

func (m *mockStudyServiceError) ListQuizSets(_ context.Context, _ string) ([]domain.QuizSet, error) {
	return nil, errMock
}

func (m *mockStudyServiceError) ListStudyNotes(_ context.Context, _ string) ([]domain.StudyNote, error) {
	return nil, errMock
}

// Importer mocks

type mockImporter struct{}

func (m *mockImporter) Import(_ context.Context, _ string, _ driving.ImportSpec) (*driving.ImportReport, error) {
	return &driving.ImportReport{Fetched: 2, Processed: 2}, nil
}

type mockImporterWithFailures struct{}

func (m *mockImporterWithFailures) Import(_ context.Context, _ string, _ driving.ImportSpec) (*driving.ImportReport, error) {
	return &driving.ImportReport{
		Fetched:   3,
		Processed: 2,
		Failed:    1,
		Errors:    []string{"broken.pdf: extraction failed"},
	}, nil
}

type mockImporterError struct{}

func (m *mockImporterError) Import(_ context.Context, _ string, _ driving.ImportSpec) (*driving.ImportReport, error) {
	return nil, errMock
}

// Connect service mocks

type mockConnectService struct{}

func (m *mockConnectService) ConnectGoogle(_ context.Context) error {
	return nil
}

func (m *mockConnectService) ConnectGitHub(_ context.Context, _ string) error {
	return nil
}

func (m *mockConnectService) GoogleConnected() bool {
	return true
}

func (m *mockConnectService) GitHubConnected() bool {
	return false
}

type mockConnectServiceError struct{}

func (m *mockConnectServiceError) ConnectGoogle(_ context.Context) error {
	return errMock
}

func (m *mockConnectServiceError) ConnectGitHub(_ context.Context, _ string) error {
	return errMock
}

func (m *mockConnectServiceError) GoogleConnected() bool {
	return false
}

func (m *mockConnectServiceError) GitHubConnected() bool {
	return false
}

// Settings service mocks

type mockSettingsService struct{}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			Model:    "llama3.2",
			BaseURL:  "http://localhost:11434",
		},
		Ask: domain.AskSettings{
			TopK:     domain.DefaultTopK,
			MinScore: domain.DefaultMinScore,
		},
	}, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(_ domain.AIProvider, _, _ string) error {
	return nil
}

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error {
	return nil
}

func (m *mockSettingsService) SetAskDefaults(_ int, _ float64) error {
	return nil
}

func (m *mockSettingsService) Validate() error {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return nil
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return nil
}

type mockSettingsServiceError struct {
	mockSettingsService
}

func (m *mockSettingsServiceError) Get() (*domain.AppSettings, error) {
	return nil, errMock
}
