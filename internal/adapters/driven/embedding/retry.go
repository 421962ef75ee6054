// Package embedding provides decorators shared by the embedding service
// adapters.
package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure RetryService implements the interface.
var _ driven.EmbeddingService = (*RetryService)(nil)

// Default retry behaviour.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
	DefaultMaxDelay    = 10 * time.Second
)

// RetryConfig holds configuration for the retry decorator.
type RetryConfig struct {
	// MaxAttempts is the total number of tries per call (default: 3).
	MaxAttempts int

	// BaseDelay is the wait before the first retry; it doubles per
	// attempt (default: 2s).
	BaseDelay time.Duration

	// MaxDelay caps the per-retry wait (default: 10s).
	MaxDelay time.Duration
}

// RetryService wraps an EmbeddingService and retries transient failures
// with exponential backoff. Permanent failures surface immediately, and
// a call that exhausts its attempts reports ErrEmbeddingUnavailable.
type RetryService struct {
	inner       driven.EmbeddingService
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration

	// sleep is replaceable so tests do not wait out real backoff.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryService wraps inner with retry behaviour.
func NewRetryService(inner driven.EmbeddingService, cfg RetryConfig) *RetryService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}

	return &RetryService{
		inner:       inner,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
		sleep:       sleepContext,
	}
}

// Embed generates an embedding, retrying transient failures.
func (s *RetryService) Embed(ctx context.Context, text string) ([]float32, error) {
	var result []float32
	err := s.retry(ctx, func() error {
		var innerErr error
		result, innerErr = s.inner.Embed(ctx, text)
		return innerErr
	})
	return result, err
}

// EmbedBatch generates embeddings, retrying transient failures. Each
// retry re-submits the whole batch; there are never partial results.
func (s *RetryService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var result [][]float32
	err := s.retry(ctx, func() error {
		var innerErr error
		result, innerErr = s.inner.EmbedBatch(ctx, texts)
		return innerErr
	})
	return result, err
}

// retry runs fn up to maxAttempts times, backing off between transient
// failures.
func (s *RetryService) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !domain.IsTransient(lastErr) {
			return lastErr
		}
		if attempt == s.maxAttempts {
			break
		}
		if err := s.sleep(ctx, s.backoff(attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d attempts exhausted: %v",
		domain.ErrEmbeddingUnavailable, s.maxAttempts, lastErr)
}

// backoff returns the wait before the retry following the given attempt:
// baseDelay doubled per attempt, capped at maxDelay.
func (s *RetryService) backoff(attempt int) time.Duration {
	delay := s.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= s.maxDelay {
			return s.maxDelay
		}
	}
	if delay > s.maxDelay {
		return s.maxDelay
	}
	return delay
}

// Dimensions returns the embedding vector size.
func (s *RetryService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (s *RetryService) ModelName() string {
	return s.inner.ModelName()
}

// Ping checks the inner service once; health checks are not retried.
func (s *RetryService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the inner service's resources.
func (s *RetryService) Close() error {
	return s.inner.Close()
}

// sleepContext waits for d or the context, whichever ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
