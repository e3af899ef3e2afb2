package driving

import "github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"

// ConnectorRegistry provides information about available connector types.
type ConnectorRegistry interface {
	// List returns all available connector types.
	List() []domain.ConnectorType

	// Get returns a specific connector type by ID.
	Get(id string) (*domain.ConnectorType, error)

	// ValidateConfig validates configuration for a connector type.
	ValidateConfig(connectorID string, config map[string]string) error
}
