package googledrive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
)

// Google Workspace MIME types that can be exported.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
)

// Export formats for Google Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
)

// MaxFetchSize is the maximum size for fetched content (5MB).
const MaxFetchSize = 5 * 1024 * 1024

// fetchFileContent retrieves the content of a Drive file. Google
// Workspace files are exported; regular files are downloaded.
// Returns (content, mimeType) where mimeType is the export format for
// converted files and the original MIME type otherwise.
func fetchFileContent(ctx context.Context, svc *drive.Service, file *drive.File) ([]byte, string, error) {
	switch file.MimeType {
	case MimeTypeGoogleDoc, MimeTypeGoogleSlides:
		content, err := exportGoogleFile(ctx, svc, file.Id, ExportMimeText)
		return content, ExportMimeText, err
	case MimeTypeGoogleSheet:
		content, err := exportGoogleFile(ctx, svc, file.Id, ExportMimeCSV)
		return content, ExportMimeCSV, err
	}

	resp, err := svc.Files.Get(file.Id).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize))
	if err != nil {
		return nil, "", fmt.Errorf("read file content: %w", err)
	}

	return data, file.MimeType, nil
}

// exportGoogleFile exports a Google Workspace file to the given format.
func exportGoogleFile(ctx context.Context, svc *drive.Service, fileID, exportMime string) ([]byte, error) {
	resp, err := svc.Files.Export(fileID, exportMime).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("export file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize))
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	return data, nil
}

// isTextFile checks if a MIME type is likely text content.
func isTextFile(mimeType string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}

	textTypes := []string{
		"application/json",
		"application/xml",
		"application/x-yaml",
	}

	for _, t := range textTypes {
		if mimeType == t {
			return true
		}
	}

	return false
}

// isFetchableMIMEType checks if a Drive file's MIME type is one this
// source imports: exportable Workspace files, text files, and PDFs.
func isFetchableMIMEType(mimeType string) bool {
	switch mimeType {
	case MimeTypeGoogleDoc, MimeTypeGoogleSheet, MimeTypeGoogleSlides:
		return true
	case "application/pdf":
		return true
	}
	return isTextFile(mimeType)
}
