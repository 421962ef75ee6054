package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/watch"
)

var (
	watchCourseID string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and import new materials",
	Long: `Watches a directory and imports files into a course as they appear.

Created and modified .pdf/.txt/.md files are imported after the directory
settles (no further changes for the debounce window). Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCourseID, "course", "c", "", "course to import into (required)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "how long to wait after the last change before importing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	if watchCourseID == "" {
		return errors.New("--course is required")
	}

	dir := args[0]

	watcher, err := watch.New(importService, watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new materials (Ctrl+C to stop)...\n", dir)

	if err := watcher.Run(ctx, dir, watchCourseID); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Watch stopped.")
	return nil
}
