package github

import (
	"context"
	"fmt"
	"sync"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.MaterialSource = (*Source)(nil)

// Source fetches course materials from a single GitHub repository.
type Source struct {
	owner    string
	repo     string
	patterns []string
	client   *Client
	mu       sync.Mutex
	closed   bool
}

// New creates a GitHub source for an "owner/name" repository.
// Patterns optionally restrict fetched files; empty means all
// supported files.
func New(repo string, patterns []string, tokenProvider driven.TokenProvider) (*Source, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	return &Source{
		owner:    owner,
		repo:     name,
		patterns: patterns,
		client:   NewClient(tokenProvider),
	}, nil
}

// Type returns the source type identifier.
func (s *Source) Type() string {
	return "github"
}

// Validate checks the token and that the repository is reachable.
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

	if err := s.client.ValidateCredentials(ctx); err != nil {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: github token rejected", domain.ErrAuthRequired)
		}
		return fmt.Errorf("validate credentials: %w", err)
	}

	if _, err := s.client.GetRepository(ctx, s.owner, s.repo); err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%w: repository %s/%s", domain.ErrNotFound, s.owner, s.repo)
		}
		return fmt.Errorf("get repository: %w", err)
	}

	return nil
}

// Fetch walks the repository tree at the default branch and streams
// every supported file. Per-file fetch failures go to the error channel
// without stopping the stream.
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

		repo, err := s.client.GetRepository(ctx, s.owner, s.repo)
		if err != nil {
			errsChan <- fmt.Errorf("get repository: %w", err)
			return
		}
		branch := repo.GetDefaultBranch()

		tree, err := s.client.GetTree(ctx, s.owner, s.repo, branch)
		if err != nil {
			errsChan <- fmt.Errorf("get tree: %w", err)
			return
		}

		if tree.GetTruncated() {
			select {
			case <-ctx.Done():
				return
			case errsChan <- fmt.Errorf("repository tree truncated by the API, some files were not listed"):
			}
		}

		for _, entry := range tree.Entries {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if entry.GetType() != "blob" {
				continue
			}

			path := entry.GetPath()
			if !isSupportedPath(path) {
				continue
			}
			if !matchesPatterns(path, s.patterns) {
				continue
			}
			if entry.GetSize() > MaxFileSize {
				continue
			}

			content, err := fetchBlobContent(ctx, s.client, s.owner, s.repo, entry.GetSHA())
			if err != nil {
				select {
				case <-ctx.Done():
					return
				case errsChan <- fmt.Errorf("fetch %s: %w", path, err):
				}
				continue
			}

			doc := domain.RawDocument{
				URI:      buildFileURI(s.owner, s.repo, branch, path),
				Filename: path,
				MIMEType: detectFileMIMEType(path),
				Content:  content,
				Metadata: map[string]any{
					"owner":  s.owner,
					"repo":   s.repo,
					"branch": branch,
					"path":   path,
					"sha":    entry.GetSHA(),
					"size":   entry.GetSize(),
					"html_url": fmt.Sprintf(
						"https://github.com/%s/%s/blob/%s/%s",
						s.owner, s.repo, branch, path,
					),
				},
			}

			select {
			case <-ctx.Done():
				return
			case docsChan <- doc:
			}
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
