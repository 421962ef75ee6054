package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/components/input"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/components/status"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/keymap"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/messages"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui/styles"
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// App is the root Bubbletea model for the course chat.
type App struct {
	ctx      context.Context
	ports    *Ports
	courseID string

	courseName string
	thinking   bool
	ready      bool
	err        error

	width  int
	height int

	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QuestionInput
	transcript *transcript.Transcript
	statusBar  *status.Bar
}

// Compile-time check that App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat application for a course.
func NewApp(ports *Ports, courseID string) (*App, error) {
	if ports == nil {
		return nil, ErrMissingAskService
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	if courseID == "" {
		return nil, ErrMissingCourseID
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ctx:        context.Background(),
		ports:      ports,
		courseID:   courseID,
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		transcript: transcript.NewTranscript(s),
		statusBar:  status.NewBar(s, km),
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("coursemate - Course Chat"),
		a.input.Init(),
		a.loadCourse(),
	)
}

// Update handles all application messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.CourseLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.courseName = msg.Course.Name
		a.statusBar.SetCourseName(msg.Course.Name)
		return a, nil

	case messages.AnswerReceived:
		a.thinking = false
		a.transcript.Resolve(msg.Question, msg.Answer, msg.Err)
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrNoRelevantContent) {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
		} else {
			a.statusBar.Clear()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil
	}

	return a.updateInput(msg)
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderHeader(),
		a.transcript.View(),
		a.input.View(),
		a.statusBar.View(),
	)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.Up):
		a.transcript.ScrollUp()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Down):
		a.transcript.ScrollDown()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Ask):
		return a.submit()
	}

	return a.updateInput(msg)
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	if a.thinking {
		return a, nil
	}

	question := strings.TrimSpace(a.input.Value())
	if question == "" {
		return a, nil
	}

	a.transcript.Append(question)
	a.input.Reset()
	a.thinking = true
	a.statusBar.SetState(status.StateThinking)
	return a, a.ask(question)
}

func (a *App) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)

	transcriptHeight := height - 6
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	a.transcript.SetDimensions(width, transcriptHeight)
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render("CourseMate")
	if a.courseName != "" {
		return title + a.styles.Muted.Render("  "+a.courseName)
	}
	return title
}

// loadCourse fetches the course shown in the header.
func (a *App) loadCourse() tea.Cmd {
	return func() tea.Msg {
		course, err := a.ports.Course.Get(a.ctx, a.courseID)
		return messages.CourseLoaded{Course: course, Err: err}
	}
}

// ask submits a question to the ask service asynchronously.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Ask.Ask(a.ctx, driving.AskRequest{
			CourseID: a.courseID,
			Question: question,
		})
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// Ready returns whether the app has received its initial window size.
func (a *App) Ready() bool {
	return a.ready
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// CourseName returns the resolved course name.
func (a *App) CourseName() string {
	return a.courseName
}

// Thinking returns whether a question is currently being answered.
func (a *App) Thinking() bool {
	return a.thinking
}

// Question returns the current input value.
func (a *App) Question() string {
	return a.input.Value()
}

// Entries returns the conversation history.
func (a *App) Entries() []transcript.Entry {
	return a.transcript.Entries()
}

// SetDimensions sets the window dimensions.
func (a *App) SetDimensions(width, height int) {
	a.resize(width, height)
	a.ready = true
}
