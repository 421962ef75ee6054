package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// scriptedEmbedder returns one scripted error per call, then succeeds.
type scriptedEmbedder struct {
	errs    []error
	calls   int
	vectors [][]float32
}

func (s *scriptedEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	vecs, err := s.next(1)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *scriptedEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	return s.next(len(texts))
}

func (s *scriptedEmbedder) next(n int) ([][]float32, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	if s.vectors != nil {
		return s.vectors, nil
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func (s *scriptedEmbedder) Dimensions() int              { return 2 }
func (s *scriptedEmbedder) ModelName() string            { return "scripted" }
func (s *scriptedEmbedder) Ping(_ context.Context) error { return nil }
func (s *scriptedEmbedder) Close() error                 { return nil }

// newTestRetryService wraps inner with a sleep that records waits
// instead of actually waiting.
func newTestRetryService(inner *scriptedEmbedder, cfg RetryConfig) (*RetryService, *[]time.Duration) {
	svc := NewRetryService(inner, cfg)
	var sleeps []time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return svc, &sleeps
}

func TestRetryService_EmbedBatch_SucceedsFirstTry(t *testing.T) {
	inner := &scriptedEmbedder{}
	svc, sleeps := newTestRetryService(inner, RetryConfig{})

	result, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *sleeps)
}

func TestRetryService_EmbedBatch_RetriesTransientFailures(t *testing.T) {
	inner := &scriptedEmbedder{
		errs: []error{
			fmt.Errorf("%w: connection refused", domain.ErrEmbeddingUnavailable),
			fmt.Errorf("%w: server busy", domain.ErrRateLimited),
		},
	}
	svc, sleeps := newTestRetryService(inner, RetryConfig{})

	result, err := svc.EmbedBatch(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps)
}

func TestRetryService_EmbedBatch_ExhaustsAttempts(t *testing.T) {
	transient := fmt.Errorf("%w: connection refused", domain.ErrEmbeddingUnavailable)
	inner := &scriptedEmbedder{errs: []error{transient, transient, transient}}
	svc, sleeps := newTestRetryService(inner, RetryConfig{})

	_, err := svc.EmbedBatch(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Equal(t, 3, inner.calls)
	assert.Len(t, *sleeps, 2)
}

func TestRetryService_EmbedBatch_PermanentErrorNotRetried(t *testing.T) {
	permanent := errors.New("embedding API error (status 400): bad input")
	inner := &scriptedEmbedder{errs: []error{permanent}}
	svc, sleeps := newTestRetryService(inner, RetryConfig{})

	_, err := svc.EmbedBatch(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *sleeps)
}

func TestRetryService_EmbedBatch_BackoffCappedAtMaxDelay(t *testing.T) {
	transient := fmt.Errorf("%w: timeout", domain.ErrEmbeddingUnavailable)
	inner := &scriptedEmbedder{errs: []error{transient, transient}}
	svc, sleeps := newTestRetryService(inner, RetryConfig{
		BaseDelay: 8 * time.Second,
		MaxDelay:  10 * time.Second,
	})

	_, err := svc.EmbedBatch(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{8 * time.Second, 10 * time.Second}, *sleeps)
}

func TestRetryService_EmbedBatch_ContextCancelledDuringBackoff(t *testing.T) {
	transient := fmt.Errorf("%w: timeout", domain.ErrEmbeddingUnavailable)
	inner := &scriptedEmbedder{errs: []error{transient, transient, transient}}
	svc := NewRetryService(inner, RetryConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	svc.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := svc.EmbedBatch(ctx, []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryService_Embed_RetriesTransientFailures(t *testing.T) {
	inner := &scriptedEmbedder{
		errs:    []error{fmt.Errorf("%w: blip", domain.ErrEmbeddingUnavailable)},
		vectors: [][]float32{{0.1, 0.2}},
	}
	svc, sleeps := newTestRetryService(inner, RetryConfig{})

	result, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, result)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, []time.Duration{2 * time.Second}, *sleeps)
}

func TestRetryService_Delegates(t *testing.T) {
	inner := &scriptedEmbedder{}
	svc := NewRetryService(inner, RetryConfig{})

	assert.Equal(t, 2, svc.Dimensions())
	assert.Equal(t, "scripted", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

func TestRetryService_DefaultsApplied(t *testing.T) {
	svc := NewRetryService(&scriptedEmbedder{}, RetryConfig{})

	assert.Equal(t, DefaultMaxAttempts, svc.maxAttempts)
	assert.Equal(t, DefaultBaseDelay, svc.baseDelay)
	assert.Equal(t, DefaultMaxDelay, svc.maxDelay)
}

func TestRetryService_Backoff(t *testing.T) {
	svc := NewRetryService(&scriptedEmbedder{}, RetryConfig{})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 10 * time.Second},
		{5, 10 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.backoff(tt.attempt), "attempt %d", tt.attempt)
	}
}
