// Package status provides the status bar component for the chat view.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/keymap"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/styles"
)

// State represents the current status bar state.
type State string

const (
	// StateReady indicates the app is idle and ready for a question.
	StateReady State = "ready"
	// StateThinking indicates a question is being answered.
	StateThinking State = "thinking"
	// StateError indicates an error occurred.
	StateError State = "error"
)

// Bar renders status information and key hints at the bottom of the screen.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	message    string
	courseName string
	width      int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if m, ok := msg.(tea.WindowSizeMsg); ok {
		b.width = m.Width
	}
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := b.width - leftWidth - rightWidth - 2
	if padding < 1 {
		padding = 1
	}

	content := left + strings.Repeat(" ", padding) + right
	return b.styles.StatusBar.Width(b.width).Render(content)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateThinking:
		return b.styles.Warning.Render("Thinking...")
	case StateError:
		return b.styles.Error.Render("Error: " + b.message)
	default:
		if b.courseName != "" {
			return b.styles.Success.Render(b.courseName)
		}
		return b.styles.Muted.Render("Ready")
	}
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, 3)
	for _, binding := range b.keymap.ShortHelp() {
		hint := fmt.Sprintf("%s: %s", binding.Help().Key, binding.Help().Desc)
		hints = append(hints, hint)
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the status bar state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the status message shown in the error state.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetCourseName sets the course name shown when ready.
func (b *Bar) SetCourseName(name string) {
	b.courseName = name
}

// SetWidth sets the width of the status bar.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
