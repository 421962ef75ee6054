package cli

import (
	"github.com/spf13/cobra"

	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// version is set at startup via SetVersion; builds inject it through
// main.
var version = "dev"

// Services the commands call. Nil services make their commands fail
// with a configuration error instead of panicking.
var (
	courseService     driving.CourseService
	documentService   driving.DocumentService
	processingService driving.ProcessingOrchestrator
	askService        driving.AskService
	studyService      driving.StudyService
	importService     driving.Importer
	connectService    driving.ConnectService
	settingsService   driving.SettingsService
)

// Services bundles everything the CLI commands depend on.
type Services struct {
	Course     driving.CourseService
	Document   driving.DocumentService
	Processing driving.ProcessingOrchestrator
	Ask        driving.AskService
	Study      driving.StudyService
	Import     driving.Importer
	Connect    driving.ConnectService
	Settings   driving.SettingsService
}

// SetServices wires the services the commands call. Call once at
// startup before Execute.
func SetServices(s Services) {
	courseService = s.Course
	documentService = s.Document
	processingService = s.Processing
	askService = s.Ask
	studyService = s.Study
	importService = s.Import
	connectService = s.Connect
	settingsService = s.Settings
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "coursemate",
	Short: "Ask questions about your course materials",
	Long: `CourseMate indexes lecture notes, slides and readings per course and
answers questions grounded in them, with citations back to the material.

Import materials from a directory, a GitHub repository or a Google Drive
folder, then ask away:

  coursemate course add "Biology 101"
  coursemate import dir ./materials --course <course-id>
  coursemate ask "What is osmosis?" --course <course-id>`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

var verboseFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
