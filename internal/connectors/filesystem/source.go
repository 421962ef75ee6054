package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.MaterialSource = (*Source)(nil)

// materialMIMETypes maps the file extensions this source fetches to
// their MIME types. Files with other extensions are skipped.
var materialMIMETypes = map[string]string{
	".pdf":      "application/pdf",
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
}

// Source fetches course materials from a local directory tree.
type Source struct {
	rootPath string
	patterns []string
	mu       sync.Mutex
	closed   bool
}

// New creates a filesystem source rooted at the given directory.
// Patterns optionally restrict fetched files; empty means all
// supported files.
func New(rootPath string, patterns []string) *Source {
	return &Source{
		rootPath: rootPath,
		patterns: patterns,
	}
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return "filesystem"
}

// Validate checks that the root path exists and is a readable directory.
func (s *Source) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("source is closed")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	info, err := os.Stat(s.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", s.rootPath)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", s.rootPath)
	}
	return nil
}

// Fetch walks the directory tree and streams every supported file.
// Hidden files and directories are skipped. Unreadable files are
// reported on the error channel without stopping the walk.
func (s *Source) Fetch(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docsChan := make(chan domain.RawDocument)
	errsChan := make(chan error, 1)

	go func() {
		defer close(docsChan)
		defer close(errsChan)

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			errsChan <- fmt.Errorf("source is closed")
			return
		}
		s.mu.Unlock()

		if _, err := os.Stat(s.rootPath); os.IsNotExist(err) {
			errsChan <- fmt.Errorf("directory does not exist: %s", s.rootPath)
			return
		}

		walkErr := filepath.WalkDir(s.rootPath, func(path string, entry fs.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case errsChan <- fmt.Errorf("walk %s: %w", path, err):
				}
				return nil
			}

			name := entry.Name()

			// Skip hidden directories entirely (.git, .cache, ...).
			if entry.IsDir() {
				if path != s.rootPath && strings.HasPrefix(name, ".") {
					return fs.SkipDir
				}
				return nil
			}

			if strings.HasPrefix(name, ".") {
				return nil
			}
			if !s.shouldFetch(path) {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case errsChan <- fmt.Errorf("read %s: %w", path, err):
				}
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case docsChan <- s.buildDocument(path, name, content, entry):
			}
			return nil
		})

		// Walk aborted by context cancellation; the channels just close.
		if walkErr != nil && !isContextError(walkErr) {
			errsChan <- walkErr
		}
	}()

	return docsChan, errsChan
}

// Close marks the source closed. Subsequent calls are no-ops.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// shouldFetch reports whether a file has a supported extension and
// matches the configured patterns.
func (s *Source) shouldFetch(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := materialMIMETypes[ext]; !ok {
		return false
	}
	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil {
		rel = path
	}
	return matchesPatterns(rel, s.patterns)
}

// buildDocument converts a walked file into a RawDocument. The filename
// is the path relative to the root so nested files stay distinguishable.
func (s *Source) buildDocument(path, name string, content []byte, entry fs.DirEntry) domain.RawDocument {
	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil {
		rel = name
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	metadata := map[string]any{
		"filename":  name,
		"extension": strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."),
	}
	if info, err := entry.Info(); err == nil {
		metadata["size"] = info.Size()
		metadata["modified"] = info.ModTime()
	}

	return domain.RawDocument{
		URI:      "file://" + abs,
		Filename: rel,
		MIMEType: detectMIMEType(name),
		Content:  content,
		Metadata: metadata,
	}
}

// detectMIMEType determines the MIME type from the file extension.
func detectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mimeType, ok := materialMIMETypes[ext]; ok {
		return mimeType
	}
	return "application/octet-stream"
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
		// Also try matching against the full relative path.
		matched, err = filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
