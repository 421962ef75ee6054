// Package transcript provides the scrollable question and answer log for the chat view.
package transcript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/styles"
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// Entry is a single question with its answer or error.
type Entry struct {
	Question string
	Answer   *domain.Answer
	Err      error
	Pending  bool
}

// Transcript holds the conversation history and renders a scrollable window over it.
type Transcript struct {
	entries []Entry
	styles  *styles.Styles
	width   int
	height  int
	scroll  int // lines scrolled up from the bottom
}

// NewTranscript creates an empty transcript.
func NewTranscript(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Transcript{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Append adds a pending entry for a question awaiting its answer.
func (t *Transcript) Append(question string) {
	t.entries = append(t.entries, Entry{Question: question, Pending: true})
	t.scroll = 0
}

// Resolve fills in the most recent pending entry with the answer or error.
func (t *Transcript) Resolve(question string, answer *domain.Answer, err error) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Pending && t.entries[i].Question == question {
			t.entries[i].Answer = answer
			t.entries[i].Err = err
			t.entries[i].Pending = false
			break
		}
	}
	t.scroll = 0
}

// Entries returns the conversation history.
func (t *Transcript) Entries() []Entry {
	return t.entries
}

// ScrollUp moves the window one line toward older entries.
func (t *Transcript) ScrollUp() {
	maxScroll := len(t.renderLines()) - t.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.scroll < maxScroll {
		t.scroll++
	}
}

// ScrollDown moves the window one line toward the latest entry.
func (t *Transcript) ScrollDown() {
	if t.scroll > 0 {
		t.scroll--
	}
}

// SetDimensions sets the visible width and height.
func (t *Transcript) SetDimensions(width, height int) {
	if width > 0 {
		t.width = width
	}
	if height > 0 {
		t.height = height
	}
}

// View renders the visible window of the transcript.
func (t *Transcript) View() string {
	if len(t.entries) == 0 {
		return t.styles.Muted.Render("Ask your first question to get started.")
	}

	lines := t.renderLines()
	if len(lines) <= t.height {
		return strings.Join(lines, "\n")
	}

	start := len(lines) - t.height - t.scroll
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:start+t.height], "\n")
}

func (t *Transcript) renderLines() []string {
	var lines []string
	for i, entry := range t.entries {
		if i > 0 {
			lines = append(lines, "")
		}
		rendered := t.renderEntry(entry)
		lines = append(lines, strings.Split(rendered, "\n")...)
	}
	return lines
}

func (t *Transcript) renderEntry(entry Entry) string {
	var b strings.Builder
	b.WriteString(t.styles.Question.Render("You: " + entry.Question))
	b.WriteString("\n")

	switch {
	case entry.Pending:
		b.WriteString(t.styles.Muted.Render("Thinking..."))
	case errors.Is(entry.Err, domain.ErrNoRelevantContent):
		b.WriteString(t.styles.Muted.Render("No relevant material found for this question."))
	case entry.Err != nil:
		b.WriteString(t.styles.Error.Render("Error: " + entry.Err.Error()))
	case entry.Answer != nil:
		b.WriteString(t.styles.Normal.Width(t.width).Render(entry.Answer.Text))
		b.WriteString("\n")
		b.WriteString(t.confidenceStyle(entry.Answer.Confidence).Render("Confidence: " + string(entry.Answer.Confidence)))
		for i, src := range entry.Answer.Sources {
			b.WriteString("\n")
			line := fmt.Sprintf("  [%d] %s (score %.2f)", i+1, src.Filename, src.Score)
			b.WriteString(t.styles.Muted.Render(line))
		}
	}

	return b.String()
}

func (t *Transcript) confidenceStyle(c domain.Confidence) lipgloss.Style {
	switch c {
	case domain.ConfidenceHigh:
		return t.styles.Success
	case domain.ConfidenceMedium:
		return t.styles.Warning
	default:
		return t.styles.Error
	}
}
