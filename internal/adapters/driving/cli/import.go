package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

var (
	importCourseID string
	importPatterns []string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import course materials from a source",
	Long: `Imports materials into a course from a directory, a GitHub repository,
or a Google Drive folder. Every fetched file is registered and processed;
failures are reported per file without stopping the import.`,
}

var importDirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Import .pdf/.txt/.md files from a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportDir,
}

var importGitHubCmd = &cobra.Command{
	Use:   "github [owner/repo]",
	Short: "Import material files from a GitHub repository",
	Long: `Fetches course-material files from the repository's default branch.
Private repositories need a token: coursemate connect github --token <pat>.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportGitHub,
}

var importDriveCmd = &cobra.Command{
	Use:   "drive [folder-id]",
	Short: "Import files from a Google Drive folder",
	Long: `Downloads text and PDF files and exports Google Docs from the folder.
Requires a linked Google account: coursemate connect google.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportDrive,
}

func init() {
	importCmd.PersistentFlags().StringVarP(&importCourseID, "course", "c", "", "course to import into (required)")
	importCmd.PersistentFlags().StringSliceVarP(&importPatterns, "pattern", "p", nil, "glob patterns restricting which files are fetched (e.g. \"*.pdf\")")

	importCmd.AddCommand(importDirCmd)
	importCmd.AddCommand(importGitHubCmd)
	importCmd.AddCommand(importDriveCmd)
	rootCmd.AddCommand(importCmd)
}

func runImportDir(cmd *cobra.Command, args []string) error {
	return runImport(cmd, driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
		Path:       args[0],
		Patterns:   importPatterns,
	}, args[0])
}

func runImportGitHub(cmd *cobra.Command, args []string) error {
	return runImport(cmd, driving.ImportSpec{
		SourceType: driving.ImportSourceGitHub,
		Repo:       args[0],
		Patterns:   importPatterns,
	}, args[0])
}

func runImportDrive(cmd *cobra.Command, args []string) error {
	return runImport(cmd, driving.ImportSpec{
		SourceType: driving.ImportSourceGoogleDrive,
		FolderID:   args[0],
		Patterns:   importPatterns,
	}, args[0])
}

func runImport(cmd *cobra.Command, spec driving.ImportSpec, location string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	if importCourseID == "" {
		return errors.New("--course is required")
	}

	ctx := context.Background()

	cmd.Printf("Importing from %s...\n", location)

	report, err := importService.Import(ctx, importCourseID, spec)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d of %d documents (%d failed).\n",
		report.Processed, report.Fetched, report.Failed)
	for _, msg := range report.Errors {
		cmd.Printf("  error: %s\n", msg)
	}

	return nil
}
