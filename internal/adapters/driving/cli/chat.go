package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/tui"
)

// chatCourseID is a flag for the chat command.
var chatCourseID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat view",
	Long: `Launch a terminal chat view for asking questions against one course.

Each answer shows its confidence and the materials it was grounded in.

Controls:
  Enter     - Ask the question
  ↑/↓       - Scroll the transcript
  Ctrl+C    - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatCourseID, "course", "c", "", "course to chat about (required)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}
	if courseService == nil {
		return errors.New("course service not configured")
	}
	if chatCourseID == "" {
		return errors.New("--course is required")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat view: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Ask:    askService,
		Course: courseService,
	}

	app, err := tui.NewApp(ports, chatCourseID)
	if err != nil {
		return fmt.Errorf("failed to create chat view: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat view error: %w", err)
	}

	return nil
}
