package mcp

import (
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Source manages source configurations.
	Source driving.SourceService

	// Document manages documents within sources.
	Document driving.DocumentService

	// Score computes scope 1 carbon assessments.
	Score driving.ScoreService

	// Assistant answers questions grounded in indexed publications.
	Assistant driving.AssistantService

	// Harvest manages ADEME publication harvesting.
	Harvest driving.HarvestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// The remaining ports are optional. Tools and resources backed by
	// a nil port report that the capability is unavailable.
	return nil
}
