package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest blob the source fetches (5MB). Anything
// bigger is skipped.
const MaxFileSize = 5 * 1024 * 1024

// materialMIMETypes maps the file extensions this source fetches to
// their MIME types. Files with other extensions are skipped.
var materialMIMETypes = map[string]string{
	".pdf":      "application/pdf",
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
}

// fetchBlobContent fetches the content of a blob and decodes it.
func fetchBlobContent(ctx context.Context, client *Client, owner, repo, sha string) ([]byte, error) {
	blob, err := client.GetBlob(ctx, owner, repo, sha)
	if err != nil {
		return nil, err
	}

	if blob.GetEncoding() == "base64" {
		// The API wraps base64 content with newlines.
		content := strings.ReplaceAll(blob.GetContent(), "\n", "")
		return base64.StdEncoding.DecodeString(content)
	}

	return []byte(blob.GetContent()), nil
}

// buildFileURI creates a URI for a file.
func buildFileURI(owner, repo, branch, path string) string {
	return fmt.Sprintf("github://%s/%s/blob/%s/%s", owner, repo, branch, path)
}

// isSupportedPath checks if a path has a course-material extension.
func isSupportedPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := materialMIMETypes[ext]
	return ok
}

// detectFileMIMEType determines the MIME type from the file extension.
func detectFileMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mimeType, ok := materialMIMETypes[ext]; ok {
		return mimeType
	}
	return "text/plain"
}

// matchesPatterns checks if a path matches any of the glob patterns.
// An empty pattern list matches everything.
func matchesPatterns(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
		// Also try matching against full path
		matched, err = filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// splitRepo parses an "owner/name" repository reference.
func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, repo)
	}
	return parts[0], parts[1], nil
}
