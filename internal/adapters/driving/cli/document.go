package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// materialMIMETypes maps the file extensions the add and reprocess
// commands accept to their MIME types.
var materialMIMETypes = map[string]string{
	".pdf":      "application/pdf",
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
}

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage course materials",
	Long:  `Add, list, view, and reprocess the documents of a course.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [course-id] [file-path]",
	Short: "Add a file to a course and process it",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list [course-id]",
	Short: "List documents in a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [document-id]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [document-id]",
	Short: "Print the extracted document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentReprocessCmd = &cobra.Command{
	Use:   "reprocess [document-id] [file-path]",
	Short: "Run a document through the pipeline again",
	Long:  `Replaces the document's stored chunks with the result of processing the given file.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentReprocess,
}

var documentStatusCmd = &cobra.Command{
	Use:   "status [document-id]",
	Short: "Show the document's processing state",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentStatus,
}

func init() {
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentReprocessCmd)
	documentCmd.AddCommand(documentStatusCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if processingService == nil {
		return errors.New("processing service not configured")
	}

	courseID, path := args[0], args[1]
	ctx := context.Background()

	mimeType, err := mimeTypeForFile(path)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := documentService.Register(ctx, courseID, filepath.Base(path), mimeType)
	if err != nil {
		return fmt.Errorf("failed to register document: %w", err)
	}

	cmd.Printf("Processing %s...\n", doc.Filename)

	chunks, err := processingService.Process(ctx, doc.ID, raw)
	if err != nil {
		return fmt.Errorf("failed to process document: %w", err)
	}

	cmd.Printf("Document %s processed: %d chunks stored.\n", doc.ID, chunks)
	return nil
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	courseID := args[0]
	ctx := context.Background()

	docs, err := documentService.ListByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for course: %s\n", courseID)
		return nil
	}

	cmd.Printf("Documents for course %s:\n\n", courseID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File: %s\n", docs[i].Filename)
		cmd.Printf("    Status: %s\n", docs[i].Status)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	details, err := documentService.GetDetails(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", details.ID)
	cmd.Printf("  File:     %s\n", details.Filename)
	cmd.Printf("  Type:     %s\n", details.MIMEType)
	cmd.Printf("  Course:   %s (%s)\n", details.CourseName, details.CourseID)
	cmd.Printf("  Status:   %s\n", details.Status)
	if details.FailureReason != "" {
		cmd.Printf("  Failure:  %s\n", details.FailureReason)
	}
	cmd.Printf("  Chunks:   %d\n", details.ChunkCount)
	cmd.Printf("  Created:  %s\n", details.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", details.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	content, err := documentService.GetContent(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := documentService.Delete(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document: %s\n", docID)
	return nil
}

func runDocumentReprocess(cmd *cobra.Command, args []string) error {
	if processingService == nil {
		return errors.New("processing service not configured")
	}

	docID, path := args[0], args[1]
	ctx := context.Background()

	if _, err := mimeTypeForFile(path); err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cmd.Printf("Reprocessing document %s...\n", docID)

	chunks, err := processingService.Reprocess(ctx, docID, raw)
	if err != nil {
		return fmt.Errorf("failed to reprocess document: %w", err)
	}

	cmd.Printf("Document %s reprocessed: %d chunks stored.\n", docID, chunks)
	return nil
}

func runDocumentStatus(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if processingService == nil {
		return errors.New("processing service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := documentService.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document %s: %s\n", doc.ID, doc.Status)
	if doc.FailureReason != "" {
		cmd.Printf("  Failure: %s\n", doc.FailureReason)
	}

	run, err := processingService.Status(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get processing status: %w", err)
	}
	if run != nil && run.Running {
		cmd.Printf("  Processing now: stage %s, attempt %d\n", run.Stage, run.Attempt)
	}

	return nil
}

// mimeTypeForFile maps a file path to its material MIME type.
func mimeTypeForFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := materialMIMETypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q (supported: .pdf, .txt, .md)", ext)
	}
	return mimeType, nil
}
