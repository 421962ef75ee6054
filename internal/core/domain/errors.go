package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Processing errors.

	// ErrUnsupportedFormat indicates a document type no extractor handles.
	// Permanent: retrying the same bytes cannot succeed.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptInput indicates document bytes that cannot be parsed as
	// their declared format. Permanent, like ErrUnsupportedFormat.
	ErrCorruptInput = errors.New("corrupt input")

	// ErrProcessingInProgress indicates the document already has an active
	// processing run. The caller should wait for it to finish.
	ErrProcessingInProgress = errors.New("processing already in progress")

	// AI service errors.

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// unreachable. Answers and study generation are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service failed after
	// retries or is not configured. Transient: a later run may succeed.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRateLimited indicates an API rate limit was exceeded. Transient.
	ErrRateLimited = errors.New("rate limited")

	// Retrieval and generation errors.

	// ErrNoRelevantContent indicates retrieval found no chunk above the
	// relevance threshold. Expected for off-topic questions; callers
	// should present it as "nothing found", not as a failure.
	ErrNoRelevantContent = errors.New("no relevant course materials found")

	// ErrInvalidAnswerIndex indicates a generated quiz question references
	// an answer option that does not exist. The whole set is rejected.
	ErrInvalidAnswerIndex = errors.New("invalid correct answer index")

	// ErrDocumentNotProcessed indicates an operation needs chunks but the
	// document has none yet.
	ErrDocumentNotProcessed = errors.New("document has not been processed yet")

	// Material source errors.

	// ErrAuthRequired indicates the material source requires authentication
	// but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the authentication has expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrSourceValidation indicates a material source is misconfigured or
	// its credentials are invalid.
	ErrSourceValidation = errors.New("source validation failed")

	// ErrSourceClosed indicates the material source has been closed.
	ErrSourceClosed = errors.New("source closed")
)

// IsTransient reports whether err is worth retrying: the failure came
// from a service that may recover, not from the input itself.
func IsTransient(err error) bool {
	return errors.Is(err, ErrEmbeddingUnavailable) || errors.Is(err, ErrRateLimited)
}

// IsPermanent reports whether err can never succeed on retry because the
// input is at fault.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrCorruptInput) ||
		errors.Is(err, ErrInvalidInput)
}
