package domain

import "time"

// Source represents a configured data source.
// Each source produces documents via a connector.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (e.g., "ademe", "filesystem").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration
	// (root path for filesystem, theme filter for ademe, ...).
	Config map[string]string

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// SyncState tracks the synchronisation progress for a source.
type SyncState struct {
	// SourceID links to the Source being synced.
	SourceID string

	// Cursor is an opaque token for incremental sync.
	Cursor string

	// LastSync is when the last successful sync completed.
	LastSync time.Time
}
