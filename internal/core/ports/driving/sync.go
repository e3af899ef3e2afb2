package driving

import "context"

// SyncOrchestrator coordinates document ingestion from configured
// sources (local directories, the ADEME librairie connector).
type SyncOrchestrator interface {
	// Sync ingests new and changed documents for one source.
	Sync(ctx context.Context, sourceID string) error

	// SyncAll runs Sync for every configured source.
	SyncAll(ctx context.Context) error

	// Status reports the state of the most recent sync for a source.
	Status(ctx context.Context, sourceID string) (*SyncStatus, error)
}

// SyncStatus is the observable state of a sync run.
type SyncStatus struct {
	// SourceID identifies the source.
	SourceID string

	// Running is true while a sync is in progress.
	Running bool

	// DocumentsProcessed counts documents handled so far.
	DocumentsProcessed int

	// ErrorCount counts per-document failures.
	ErrorCount int
}
