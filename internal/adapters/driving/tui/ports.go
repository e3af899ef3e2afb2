// Package tui provides the interactive terminal user interface.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Source manages source configurations.
	Source driving.SourceService

	// Sync orchestrates document synchronisation.
	Sync driving.SyncOrchestrator

	// Document manages documents within sources.
	Document driving.DocumentService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Source == nil {
		return ErrMissingSourceService
	}
	if p.Sync == nil {
		return ErrMissingSyncOrchestrator
	}
	return nil
}
