package domain

import "errors"

// Common domain errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity with the same identity exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the caller supplied invalid parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates a sync is already running for a source.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrConnectorValidation indicates a connector's configuration is invalid.
	ErrConnectorValidation = errors.New("connector validation failed")

	// ErrConnectorClosed indicates an operation on a closed connector.
	ErrConnectorClosed = errors.New("connector is closed")

	// ErrRateLimited indicates an upstream API rejected the request
	// due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingUnavailable indicates no embedding provider is
	// configured or reachable.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrLLMUnavailable indicates no LLM provider is configured or
	// reachable.
	ErrLLMUnavailable = errors.New("llm provider unavailable")

	// ErrUnsupportedUnit indicates a unit conversion between
	// incompatible or unknown units.
	ErrUnsupportedUnit = errors.New("unsupported unit")

	// ErrFactorNotFound indicates no emission factor matched the query.
	ErrFactorNotFound = errors.New("emission factor not found")

	// ErrInvalidPDF indicates downloaded content is not a usable PDF.
	ErrInvalidPDF = errors.New("invalid pdf content")

	// ErrUnsupportedType indicates an unknown connector type.
	ErrUnsupportedType = errors.New("unsupported connector type")

	// ErrUnsupportedFormat indicates no normaliser handles the
	// document's MIME type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNotImplemented indicates the operation has no backing
	// implementation in the current configuration.
	ErrNotImplemented = errors.New("not implemented")
)
