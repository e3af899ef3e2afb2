package tui

import "errors"

// Errors returned when required ports are missing.
var (
	// ErrMissingSearchService indicates the search service port is nil.
	ErrMissingSearchService = errors.New("search service is required")

	// ErrMissingSourceService indicates the source service port is nil.
	ErrMissingSourceService = errors.New("source service is required")

	// ErrMissingSyncOrchestrator indicates the sync orchestrator port is nil.
	ErrMissingSyncOrchestrator = errors.New("sync orchestrator is required")
)
