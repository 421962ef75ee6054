package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyCmd_Use(t *testing.T) {
	assert.Equal(t, "study", studyCmd.Use)
	assert.NotEmpty(t, studyCmd.Short)
	assert.True(t, studyCmd.HasSubCommands())
}

func TestStudyFlashcardsCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "flashcards"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestStudyFlashcardsCmd_ExecutesWithArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "flashcards", "doc-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Generating flashcards...")
	assert.Contains(t, buf.String(), "Generated 5 flashcards (set set-1):")
	assert.Contains(t, buf.String(), "Front: What is osmosis?")
	assert.Contains(t, buf.String(), "Back:  Movement of water across a membrane.")
}

func TestStudyFlashcardsCmd_ListFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { studyList = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "flashcards", "doc-1", "--list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Flashcard sets for document doc-1:")
	assert.Contains(t, buf.String(), "set-1 (5 cards,")
}

func TestStudyFlashcardsCmd_ServiceNotConfigured(t *testing.T) {
	old := studyService
	studyService = nil
	defer func() { studyService = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "flashcards", "doc-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "study service not configured")
}

func TestStudyFlashcardsCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	studyService = &mockStudyServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "flashcards", "doc-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate flashcards")
}

func TestStudyQuizCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "quiz"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestStudyQuizCmd_ExecutesWithArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "quiz", "doc-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Generating quiz...")
	assert.Contains(t, buf.String(), "Generated 3 questions (quiz quiz-1):")
	assert.Contains(t, buf.String(), "a) Osmosis")
	assert.Contains(t, buf.String(), "Answer key:")
	assert.Contains(t, buf.String(), "2. b) Water leaves the cell toward the solute outside.")
}

func TestStudyQuizCmd_ListFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { studyList = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "quiz", "doc-1", "--list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Quizzes for document doc-1:")
	assert.Contains(t, buf.String(), "quiz-1 (3 questions,")
}

func TestStudyQuizCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	studyService = &mockStudyServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "quiz", "doc-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate quiz")
}

func TestStudyNotesCmd_ExecutesWithArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "notes", "doc-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Generating note...")
	assert.Contains(t, buf.String(), "# Key Points")
}

func TestStudyNotesCmd_ThoroughMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { studyNoteMode = "brief" }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "notes", "doc-1", "--mode", "thorough"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# Key Points")
}

func TestStudyNotesCmd_InvalidMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { studyNoteMode = "brief" }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "notes", "doc-1", "--mode", "exhaustive"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid note mode "exhaustive"`)
}

func TestStudyNotesCmd_ListFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { studyList = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"study", "notes", "doc-1", "--list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Notes for document doc-1:")
	assert.Contains(t, buf.String(), "note-1 (brief,")
}
