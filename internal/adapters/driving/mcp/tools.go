package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// errStudyUnavailable is returned by study tools when no study service is wired.
var errStudyUnavailable = errors.New("study service not available")

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	CourseID string  `json:"course_id" jsonschema:"the course whose materials answer the question"`
	Question string  `json:"question" jsonschema:"the question to answer"`
	TopK     int     `json:"top_k,omitempty" jsonschema:"maximum chunks to ground the answer in (0 = configured default)"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"relevance threshold between 0 and 1 (0 = configured default)"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Found      bool           `json:"found"`
	Answer     string         `json:"answer,omitempty"`
	Confidence string         `json:"confidence,omitempty"`
	Sources    []SourceOutput `json:"sources,omitempty"`
}

// SourceOutput attributes part of an answer to a stored chunk.
type SourceOutput struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Preview    string  `json:"preview,omitempty"`
	Score      float64 `json:"score"`
}

// FlashcardsInput is the input schema for the generate_flashcards tool.
type FlashcardsInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to generate flashcards from"`
	Count      int    `json:"count,omitempty" jsonschema:"how many cards to generate (0 = default)"`
}

// FlashcardsOutput is the output schema for the generate_flashcards tool.
type FlashcardsOutput struct {
	SetID string          `json:"set_id"`
	Cards []FlashcardPair `json:"cards"`
	Count int             `json:"count"`
}

// FlashcardPair is a single front/back card.
type FlashcardPair struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizInput is the input schema for the generate_quiz tool.
type QuizInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to generate a quiz from"`
	Count      int    `json:"count,omitempty" jsonschema:"how many questions to generate (0 = default)"`
}

// QuizOutput is the output schema for the generate_quiz tool.
type QuizOutput struct {
	QuizID    string           `json:"quiz_id"`
	Questions []QuizItemOutput `json:"questions"`
	Count     int              `json:"count"`
}

// QuizItemOutput is a single multiple-choice question.
type QuizItemOutput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using one course's materials, with source citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_flashcards",
		Description: "Generate front/back flashcards from a processed document",
	}, s.handleFlashcards)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate a multiple-choice quiz from a processed document",
	}, s.handleQuiz)
}

// handleAsk handles the ask_question tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	req := driving.AskRequest{
		CourseID: input.CourseID,
		Question: input.Question,
		TopK:     input.TopK,
		MinScore: input.MinScore,
	}

	answer, err := s.ports.Ask.Ask(ctx, req)
	if errors.Is(err, domain.ErrNoRelevantContent) {
		return nil, AskOutput{Found: false}, nil
	}
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Found:      true,
		Answer:     answer.Text,
		Confidence: answer.Confidence.String(),
		Sources:    make([]SourceOutput, len(answer.Sources)),
	}

	for i := range answer.Sources {
		output.Sources[i] = SourceOutput{
			ChunkID:    answer.Sources[i].ChunkID,
			DocumentID: answer.Sources[i].DocumentID,
			Filename:   answer.Sources[i].Filename,
			Preview:    answer.Sources[i].Preview,
			Score:      answer.Sources[i].Score,
		}
	}

	return nil, output, nil
}

// handleFlashcards handles the generate_flashcards tool invocation.
func (s *Server) handleFlashcards(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FlashcardsInput,
) (*mcp.CallToolResult, FlashcardsOutput, error) {
	if s.ports.Study == nil {
		return nil, FlashcardsOutput{}, errStudyUnavailable
	}

	set, err := s.ports.Study.GenerateFlashcards(ctx, input.DocumentID, input.Count)
	if err != nil {
		return nil, FlashcardsOutput{}, err
	}

	output := FlashcardsOutput{
		SetID: set.ID,
		Cards: make([]FlashcardPair, len(set.Cards)),
		Count: len(set.Cards),
	}

	for i := range set.Cards {
		output.Cards[i] = FlashcardPair{
			Front: set.Cards[i].Front,
			Back:  set.Cards[i].Back,
		}
	}

	return nil, output, nil
}

// handleQuiz handles the generate_quiz tool invocation.
func (s *Server) handleQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuizInput,
) (*mcp.CallToolResult, QuizOutput, error) {
	if s.ports.Study == nil {
		return nil, QuizOutput{}, errStudyUnavailable
	}

	set, err := s.ports.Study.GenerateQuiz(ctx, input.DocumentID, input.Count)
	if err != nil {
		return nil, QuizOutput{}, err
	}

	output := QuizOutput{
		QuizID:    set.ID,
		Questions: make([]QuizItemOutput, len(set.Questions)),
		Count:     len(set.Questions),
	}

	for i := range set.Questions {
		output.Questions[i] = QuizItemOutput{
			Question:           set.Questions[i].Question,
			Options:            set.Questions[i].Options,
			CorrectAnswerIndex: set.Questions[i].CorrectAnswerIndex,
			Explanation:        set.Questions[i].Explanation,
		}
	}

	return nil, output, nil
}
