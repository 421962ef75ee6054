package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// Whole-run retry policy for transient pipeline failures.
const (
	processMaxAttempts = 3
	processBaseDelay   = 2 * time.Second
	processMaxDelay    = 10 * time.Second
)

// Ensure ProcessingOrchestrator implements the interface.
var _ driving.ProcessingOrchestrator = (*ProcessingOrchestrator)(nil)

// ProcessingOrchestrator runs documents through the ingestion pipeline:
// extract, chunk, embed, store. Each document is processed by at most
// one run at a time; independent documents process concurrently.
type ProcessingOrchestrator struct {
	docStore   driven.DocumentStore
	chunkStore driven.ChunkStore
	registry   driven.ExtractorRegistry
	pipeline   driven.PostProcessorPipeline
	embedder   driven.EmbeddingService

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleep       func(ctx context.Context, d time.Duration) error

	// Status tracking
	mu         sync.RWMutex
	activeRuns map[string]*driving.RunStatus
}

// NewProcessingOrchestrator creates a new processing orchestrator.
func NewProcessingOrchestrator(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	registry driven.ExtractorRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
) *ProcessingOrchestrator {
	return &ProcessingOrchestrator{
		docStore:    docStore,
		chunkStore:  chunkStore,
		registry:    registry,
		pipeline:    pipeline,
		embedder:    embedder,
		maxAttempts: processMaxAttempts,
		baseDelay:   processBaseDelay,
		maxDelay:    processMaxDelay,
		sleep:       sleepContext,
		activeRuns:  make(map[string]*driving.RunStatus),
	}
}

// Process ingests a document's raw bytes and returns the number of
// chunks stored. A document that is already processing returns
// domain.ErrProcessingInProgress; a document in a terminal state must
// go through Reprocess instead.
func (o *ProcessingOrchestrator) Process(ctx context.Context, documentID string, raw []byte) (int, error) {
	doc, err := o.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("get document: %w", err)
	}
	if doc.Status.IsTerminal() {
		return 0, fmt.Errorf("%w: document %s is %s, use reprocess to run again",
			domain.ErrInvalidInput, documentID, doc.Status)
	}
	if doc.Status.IsActive() {
		return 0, fmt.Errorf("%w: document %s", domain.ErrProcessingInProgress, documentID)
	}

	if !o.tryAcquire(documentID) {
		return 0, fmt.Errorf("%w: document %s", domain.ErrProcessingInProgress, documentID)
	}
	defer o.release(documentID)

	return o.runWithRetry(ctx, doc, raw)
}

// Reprocess deletes the document's existing chunks and runs the
// pipeline again on the given bytes. It also recovers documents left
// in a stale mid-pipeline status by a crashed run.
func (o *ProcessingOrchestrator) Reprocess(ctx context.Context, documentID string, raw []byte) (int, error) {
	doc, err := o.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("get document: %w", err)
	}

	if !o.tryAcquire(documentID) {
		return 0, fmt.Errorf("%w: document %s", domain.ErrProcessingInProgress, documentID)
	}
	defer o.release(documentID)

	// Chunks go first: a reprocessed document never keeps stale chunks.
	if err := o.chunkStore.DeleteChunks(ctx, documentID); err != nil {
		return 0, fmt.Errorf("delete chunks: %w", err)
	}
	if err := o.docStore.UpdateDocumentStatus(ctx, documentID, domain.StatusPending, "", 0); err != nil {
		return 0, fmt.Errorf("reset status: %w", err)
	}
	doc.Status = domain.StatusPending
	doc.FailureReason = ""
	doc.ChunkCount = 0

	logger.Info("Reprocessing document %s", documentID)
	return o.runWithRetry(ctx, doc, raw)
}

// Status returns the live run state for a document.
func (o *ProcessingOrchestrator) Status(_ context.Context, documentID string) (*driving.RunStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if status, ok := o.activeRuns[documentID]; ok {
		// Return a copy so callers never share the tracked struct.
		return &driving.RunStatus{
			DocumentID: status.DocumentID,
			Running:    status.Running,
			Stage:      status.Stage,
			Attempt:    status.Attempt,
		}, nil
	}

	// Not running - return idle status
	return &driving.RunStatus{
		DocumentID: documentID,
		Running:    false,
	}, nil
}

// runWithRetry executes the pipeline, retrying transient failures with
// the whole run. Permanent failures mark the document failed at once.
func (o *ProcessingOrchestrator) runWithRetry(ctx context.Context, doc *domain.Document, raw []byte) (int, error) {
	var lastErr error

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		o.setAttempt(doc.ID, attempt)

		count, err := o.runOnce(ctx, doc, raw)
		if err == nil {
			logger.Info("Processed document %s: %d chunks", doc.ID, count)
			return count, nil
		}
		lastErr = err

		if !domain.IsTransient(err) {
			logger.Warn("Processing document %s failed: %v", doc.ID, err)
			break
		}
		if attempt == o.maxAttempts {
			logger.Warn("Processing document %s failed after %d attempts: %v", doc.ID, attempt, err)
			break
		}

		delay := o.backoff(attempt)
		logger.Warn("Processing document %s attempt %d/%d failed: %v (retrying in %s)",
			doc.ID, attempt, o.maxAttempts, err, delay)
		if sleepErr := o.sleep(ctx, delay); sleepErr != nil {
			lastErr = sleepErr
			break
		}
	}

	if err := o.markFailed(ctx, doc, lastErr); err != nil {
		logger.Warn("Failed to record failure for document %s: %v", doc.ID, err)
	}
	return 0, lastErr
}

// runOnce executes one pass of the pipeline. Retried passes restart at
// extraction; the persisted status never moves backwards.
func (o *ProcessingOrchestrator) runOnce(ctx context.Context, doc *domain.Document, raw []byte) (int, error) {
	rawDoc := &domain.RawDocument{
		URI:      doc.Filename,
		Filename: doc.Filename,
		MIMEType: doc.MIMEType,
		Content:  raw,
	}

	// 1. EXTRACT TEXT
	o.setStage(doc.ID, domain.StatusExtracting)
	if err := o.advance(ctx, doc, domain.StatusExtracting); err != nil {
		return 0, err
	}
	text, err := o.registry.Extract(ctx, rawDoc)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	// 2. CHUNK (produces chunks with dense sequence indices)
	o.setStage(doc.ID, domain.StatusChunking)
	if err := o.advance(ctx, doc, domain.StatusChunking); err != nil {
		return 0, err
	}
	chunks, err := o.pipeline.Process(ctx, doc.ID, text)
	if err != nil {
		return 0, fmt.Errorf("chunk: %w", err)
	}

	// 3. GENERATE EMBEDDINGS (one batch, all or nothing)
	o.setStage(doc.ID, domain.StatusEmbedding)
	if err := o.advance(ctx, doc, domain.StatusEmbedding); err != nil {
		return 0, err
	}
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Content
		}
		vectors, err := o.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embed %d chunks: %w", len(chunks), err)
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
	}

	// 4. STORE CHUNKS (transactional replace)
	o.setStage(doc.ID, domain.StatusStoring)
	if err := o.advance(ctx, doc, domain.StatusStoring); err != nil {
		return 0, err
	}
	if err := o.chunkStore.SaveChunks(ctx, doc.ID, chunks); err != nil {
		return 0, fmt.Errorf("save chunks: %w", err)
	}

	// Done only after the store commit.
	if err := o.docStore.UpdateDocumentStatus(ctx, doc.ID, domain.StatusDone, "", len(chunks)); err != nil {
		return 0, fmt.Errorf("mark done: %w", err)
	}
	doc.Status = domain.StatusDone
	doc.ChunkCount = len(chunks)

	return len(chunks), nil
}

// advance persists a forward status transition. Equal states are
// no-ops and backward steps (a retried run re-walking earlier stages)
// leave the persisted status at its furthest point.
func (o *ProcessingOrchestrator) advance(ctx context.Context, doc *domain.Document, target domain.ProcessingStatus) error {
	if doc.Status == target || !doc.Status.CanTransitionTo(target) {
		return nil
	}
	if err := o.docStore.UpdateDocumentStatus(ctx, doc.ID, target, "", 0); err != nil {
		return fmt.Errorf("update status to %s: %w", target, err)
	}
	doc.Status = target
	return nil
}

// markFailed records the failure reason on the document.
func (o *ProcessingOrchestrator) markFailed(ctx context.Context, doc *domain.Document, cause error) error {
	if doc.Status.IsTerminal() {
		return nil
	}
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	if err := o.docStore.UpdateDocumentStatus(ctx, doc.ID, domain.StatusFailed, reason, 0); err != nil {
		return err
	}
	doc.Status = domain.StatusFailed
	doc.FailureReason = reason
	return nil
}

// backoff returns the delay before the next attempt, doubling from the
// base and capped at the maximum.
func (o *ProcessingOrchestrator) backoff(attempt int) time.Duration {
	delay := o.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= o.maxDelay {
			return o.maxDelay
		}
	}
	return delay
}

// tryAcquire registers an active run for the document. It returns
// false if a run already owns the document.
func (o *ProcessingOrchestrator) tryAcquire(documentID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.activeRuns[documentID]; ok {
		return false
	}
	o.activeRuns[documentID] = &driving.RunStatus{
		DocumentID: documentID,
		Running:    true,
		Attempt:    1,
	}
	return true
}

// release removes the active run for a document.
func (o *ProcessingOrchestrator) release(documentID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeRuns, documentID)
}

// setStage records the live pipeline stage for a document.
func (o *ProcessingOrchestrator) setStage(documentID string, stage domain.ProcessingStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.activeRuns[documentID]; ok {
		status.Stage = stage.String()
	}
}

// setAttempt records the current retry attempt for a document.
func (o *ProcessingOrchestrator) setAttempt(documentID string, attempt int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.activeRuns[documentID]; ok {
		status.Attempt = attempt
	}
}

// sleepContext waits for the delay or the context, whichever ends first.
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
