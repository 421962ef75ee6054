package googledrive

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.MaterialSource = (*Source)(nil)

// defaultPageSize is the Files.List page size.
const defaultPageSize = 100

// listFields selects the file attributes each listing page carries.
const listFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink)"

// Source fetches course materials from one Google Drive folder.
type Source struct {
	folderID string
	patterns []string
	tokens   driven.TokenProvider
	svc      *drive.Service
	limiter  *RateLimiter
	mu       sync.Mutex
	closed   bool
}

// New creates a Drive source for the given folder. Patterns optionally
// restrict fetched files by name; empty means all supported files.
func New(folderID string, patterns []string, tokens driven.TokenProvider) *Source {
	return &Source{
		folderID: folderID,
		patterns: patterns,
		tokens:   tokens,
		limiter:  NewRateLimiter(),
	}
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return "googledrive"
}

// ensureService initializes the Drive client if not already done.
// This is called lazily so the token is fetched when needed.
func (s *Source) ensureService(ctx context.Context) error {
	if s.svc != nil {
		return nil
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(NewTokenSource(ctx, s.tokens)))
	if err != nil {
		return fmt.Errorf("create drive service: %w", err)
	}
	s.svc = svc
	return nil
}

// Validate checks the credentials and that the folder exists and is a
// folder.
func (s *Source) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("source is closed")
	}
	if s.folderID == "" {
		return fmt.Errorf("%w: folder id must not be empty", domain.ErrInvalidInput)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.ensureService(ctx); err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	folder, err := s.svc.Files.Get(s.folderID).Fields("id, name, mimeType").Context(ctx).Do()
	if err != nil {
		err = WrapError(err)
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: google drive token rejected", domain.ErrAuthRequired)
		}
		if IsNotFound(err) {
			return fmt.Errorf("%w: drive folder %s", domain.ErrNotFound, s.folderID)
		}
		return fmt.Errorf("get folder: %w", err)
	}

	if folder.MimeType != MimeTypeFolder {
		return fmt.Errorf("%w: %s is not a folder", domain.ErrInvalidInput, s.folderID)
	}

	return nil
}

// Fetch lists the folder and streams every supported file. Per-file
// failures go to the error channel without stopping the stream.
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

		if err := s.ensureService(ctx); err != nil {
			errsChan <- err
			return
		}

		query := fmt.Sprintf("'%s' in parents and trashed = false", s.folderID)
		pageToken := ""

		for {
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}

			call := s.svc.Files.List().
				Q(query).
				Fields(listFields).
				PageSize(defaultPageSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			page, err := call.Do()
			if err != nil {
				err = WrapError(err)
				if IsRateLimited(err) {
					s.limiter.RecordRateLimitError(0)
				}
				errsChan <- fmt.Errorf("list folder: %w", err)
				return
			}

			for _, file := range page.Files {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if !s.shouldFetch(file) {
					continue
				}

				if err := s.limiter.Wait(ctx); err != nil {
					return
				}

				doc, err := s.fileToDocument(ctx, file)
				if err != nil {
					err = WrapError(err)
					if IsRateLimited(err) {
						s.limiter.RecordRateLimitError(0)
					}
					select {
					case <-ctx.Done():
						return
					case errsChan <- fmt.Errorf("fetch %s: %w", file.Name, err):
					}
					continue
				}

				select {
				case <-ctx.Done():
					return
				case docsChan <- doc:
				}
			}

			if page.NextPageToken == "" {
				return
			}
			pageToken = page.NextPageToken
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

// shouldFetch reports whether a listed file is one this source imports.
func (s *Source) shouldFetch(file *drive.File) bool {
	if file.MimeType == MimeTypeFolder {
		return false
	}
	if !isFetchableMIMEType(file.MimeType) {
		return false
	}
	if file.Size > MaxFetchSize {
		return false
	}
	return matchesPatterns(file.Name, s.patterns)
}

// fileToDocument fetches a file's content and converts it to a
// RawDocument.
func (s *Source) fileToDocument(ctx context.Context, file *drive.File) (domain.RawDocument, error) {
	content, mimeType, err := fetchFileContent(ctx, s.svc, file)
	if err != nil {
		return domain.RawDocument{}, err
	}

	return domain.RawDocument{
		URI:      fmt.Sprintf("gdrive://files/%s", file.Id),
		Filename: file.Name,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]any{
			"file_id":       file.Id,
			"title":         file.Name,
			"size":          file.Size,
			"web_link":      file.WebViewLink,
			"modified_time": file.ModifiedTime,
			"source_mime":   file.MimeType,
		},
	}, nil
}

// matchesPatterns checks if a file name matches any of the glob
// patterns. An empty pattern list matches everything.
func matchesPatterns(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}
	return false
}
