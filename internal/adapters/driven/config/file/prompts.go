package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAskSystem: `You are a helpful teaching assistant for this course.
Your role is to answer student questions based ONLY on the provided course materials.

Guidelines:
- Answer questions clearly and concisely
- Base your answer ONLY on the provided context
- If the context doesn't contain enough information, say "I don't have enough information in the course materials to answer that question"
- If the question is unclear, ask for clarification
- Cite specific sources when possible (e.g., "According to Source 1...")
- Be helpful and encouraging`,

	driven.PromptAskUser: `Context from course materials:

%s

Student Question: %s

Please provide a clear, helpful answer based on the context above.`,

	driven.PromptFlashcardsSystem: `You are an expert educator creating study flashcards.

Your task is to generate high-quality flashcards from the provided educational material.

Guidelines:
- Create exactly %d flashcards that cover the most important concepts
- Front of card: Clear, concise question or term
- Back of card: Complete, accurate answer or definition
- Focus on key concepts, definitions, processes, and important facts
- Use clear, student-friendly language
- Ensure answers are self-contained (don't assume card order)
- Vary question types (what, why, how, define, etc.)
- Prioritize depth over breadth - cover important topics thoroughly`,

	driven.PromptFlashcardsUser: `Document: %s

Content:
%s

Generate %d flashcards covering the most important concepts from this material.`,

	driven.PromptQuizSystem: `You are an expert educator creating multiple-choice quiz questions.

Your task is to generate high-quality quiz questions from the provided educational material.

Guidelines:
- Create exactly %d multiple-choice questions covering key concepts
- Each question should have 4 answer options
- Ensure exactly one option is correct
- Write clear, unambiguous questions
- Make distractors plausible but clearly incorrect
- Provide a concise explanation for the correct answer
- Focus on understanding, not just recall
- Vary difficulty levels (mix easy, medium, hard)
- Cover different topics from the material`,

	driven.PromptQuizUser: `Document: %s

Content:
%s

Generate %d multiple-choice quiz questions testing understanding of this material.`,

	driven.PromptNotesBrief: `You are an expert educator writing condensed revision notes.

Create brief study notes from the provided educational material.

Guidelines:
- Capture only the most important concepts, definitions and facts
- Use short bullet points grouped under clear headings
- Use markdown formatting
- Keep the notes concise enough to review in a few minutes

Document: %s

Content:
%s

Generate brief study notes for this material.`,

	driven.PromptNotesThorough: `You are an expert educator writing comprehensive study notes.

Create thorough study notes from the provided educational material.

Guidelines:
- Cover every major concept in the material
- Explain each concept in complete sentences, not just bullet fragments
- Include definitions, processes and important facts
- Use markdown formatting with headings, bullet points and emphasis
- Include worked examples from the material where they aid understanding

Document: %s

Content:
%s

Generate thorough study notes for this material.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.coursemate/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".coursemate", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# CourseMate Prompts

This directory contains customisable prompts used by CourseMate's LLM features.

## Files

- ` + "`ask_system.txt`" + ` / ` + "`ask_user.txt`" + ` - Grounded question answering
- ` + "`flashcards_system.txt`" + ` / ` + "`flashcards_user.txt`" + ` - Flashcard generation
- ` + "`quiz_system.txt`" + ` / ` + "`quiz_user.txt`" + ` - Quiz generation
- ` + "`notes_brief.txt`" + ` / ` + "`notes_thorough.txt`" + ` - Study note generation

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command or after restarting the chat view.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the question or document content)
- ` + "`%d`" + ` - Integer (e.g., how many flashcards to generate)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
