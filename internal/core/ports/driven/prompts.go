package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptAskSystem is the system prompt for grounded question answering.
	// This prompt has no format placeholders.
	PromptAskSystem = "ask_system"

	// PromptAskUser is the user prompt for grounded question answering.
	// The template expects %s (context) and %s (question) placeholders.
	PromptAskUser = "ask_user"

	// PromptFlashcardsSystem instructs the model to produce flashcards.
	// The template expects a %d placeholder for the card count.
	PromptFlashcardsSystem = "flashcards_system"

	// PromptFlashcardsUser carries the material for flashcard generation.
	// The template expects %s (document name), %s (content) and %d (count).
	PromptFlashcardsUser = "flashcards_user"

	// PromptQuizSystem instructs the model to produce quiz questions.
	// The template expects a %d placeholder for the question count.
	PromptQuizSystem = "quiz_system"

	// PromptQuizUser carries the material for quiz generation.
	// The template expects %s (document name), %s (content) and %d (count).
	PromptQuizUser = "quiz_user"

	// PromptNotesBrief instructs the model to produce a condensed note.
	// The template expects %s (document name) and %s (content).
	PromptNotesBrief = "notes_brief"

	// PromptNotesThorough instructs the model to produce a detailed note.
	// The template expects %s (document name) and %s (content).
	PromptNotesThorough = "notes_thorough"
)
