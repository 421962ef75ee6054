package driving

import "context"

// ProcessingOrchestrator runs documents through the ingestion pipeline:
// extract, chunk, embed, store.
type ProcessingOrchestrator interface {
	// Process ingests a document's raw bytes and returns the number of
	// chunks stored. A document that is already processing returns
	// domain.ErrProcessingInProgress. Transient failures are retried
	// internally; the document ends in StatusDone or StatusFailed.
	Process(ctx context.Context, documentID string, raw []byte) (int, error)

	// Reprocess deletes the document's existing chunks and runs the
	// pipeline again on the given bytes.
	Reprocess(ctx context.Context, documentID string, raw []byte) (int, error)

	// Status returns the live run state for a document.
	Status(ctx context.Context, documentID string) (*RunStatus, error)
}

// RunStatus reports the state of a processing run.
type RunStatus struct {
	// DocumentID identifies the document.
	DocumentID string

	// Running indicates if processing is currently in flight.
	Running bool

	// Stage is the pipeline stage the run is in, empty when not running.
	Stage string

	// Attempt is the current retry attempt, starting at 1.
	Attempt int
}
