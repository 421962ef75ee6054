package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// Answer synthesis parameters.
const (
	askTemperature = 0.7
	askMaxTokens   = 500
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService answers questions grounded in a course's materials.
type AskService struct {
	courseStore driven.CourseStore
	docStore    driven.DocumentStore
	chunkStore  driven.ChunkStore
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	prompts     driven.PromptStore
}

// NewAskService creates a new ask service.
func NewAskService(
	courseStore driven.CourseStore,
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *AskService {
	return &AskService{
		courseStore: courseStore,
		docStore:    docStore,
		chunkStore:  chunkStore,
		embedder:    embedder,
		llm:         llm,
		prompts:     prompts,
	}
}

// Ask embeds the question, retrieves the most relevant chunks from the
// course, and synthesizes an answer citing them.
func (s *AskService) Ask(ctx context.Context, req driving.AskRequest) (*domain.Answer, error) {
	logger.Section("Question Answering")

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if req.CourseID == "" {
		return nil, fmt.Errorf("%w: course id is required", domain.ErrInvalidInput)
	}
	if req.TopK < 0 {
		return nil, fmt.Errorf("%w: top k must not be negative", domain.ErrInvalidInput)
	}

	if _, err := s.courseStore.GetCourse(ctx, req.CourseID); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	topK := req.TopK
	if topK == 0 {
		topK = domain.DefaultTopK
	}
	minScore := req.MinScore
	switch {
	case minScore == 0:
		minScore = domain.DefaultMinScore
	case minScore < 0:
		minScore = 0
	}
	logger.Debug("Question: %q (top_k=%d, min_score=%.2f)", question, topK, minScore)

	// 1. EMBED THE QUESTION
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	logger.Debug("Question embedding: %d dimensions", len(vector))

	// 2. RETRIEVE RELEVANT CHUNKS
	retrieved, err := s.chunkStore.Search(ctx, req.CourseID, vector, topK, minScore)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(retrieved))

	// Nothing relevant means no LLM call at all.
	if len(retrieved) == 0 {
		return nil, fmt.Errorf("%w for this question", domain.ErrNoRelevantContent)
	}

	// 3. SYNTHESIZE THE ANSWER
	answerText, err := s.synthesize(ctx, question, retrieved)
	if err != nil {
		return nil, err
	}

	// Confidence is a function of the best retrieval score alone.
	confidence := domain.ConfidenceFromScore(retrieved[0].Score)
	logger.Debug("Top score %.3f, confidence %s", retrieved[0].Score, confidence)

	return &domain.Answer{
		Text:       answerText,
		Confidence: confidence,
		Sources:    s.buildSources(ctx, retrieved),
	}, nil
}

// synthesize builds the grounding context and asks the model.
func (s *AskService) synthesize(ctx context.Context, question string, retrieved []domain.RetrievedChunk) (string, error) {
	systemPrompt, err := s.prompts.Load(driven.PromptAskSystem)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", driven.PromptAskSystem, err)
	}
	userTemplate, err := s.prompts.Load(driven.PromptAskUser)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", driven.PromptAskUser, err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userTemplate, buildContext(retrieved), question)},
	}

	answer, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		Temperature: askTemperature,
		MaxTokens:   askMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// buildContext formats retrieved chunks into numbered source blocks the
// model can cite.
func buildContext(retrieved []domain.RetrievedChunk) string {
	blocks := make([]string, len(retrieved))
	for i, rc := range retrieved {
		blocks[i] = fmt.Sprintf("[Source %d] (Relevance: %.2f)\n%s\n", i+1, rc.Score, rc.Chunk.Content)
	}
	return strings.Join(blocks, "\n")
}

// buildSources attributes each retrieved chunk to its document, in the
// order the chunks were presented to the model.
func (s *AskService) buildSources(ctx context.Context, retrieved []domain.RetrievedChunk) []domain.SourceRef {
	filenames := make(map[string]string)
	sources := make([]domain.SourceRef, 0, len(retrieved))

	for _, rc := range retrieved {
		filename, ok := filenames[rc.Chunk.DocumentID]
		if !ok {
			doc, err := s.docStore.GetDocument(ctx, rc.Chunk.DocumentID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					logger.Debug("Lookup for document %s failed: %v", rc.Chunk.DocumentID, err)
				}
				filename = ""
			} else {
				filename = doc.Filename
			}
			filenames[rc.Chunk.DocumentID] = filename
		}
		sources = append(sources, domain.NewSourceRef(rc, filename))
	}

	return sources
}
