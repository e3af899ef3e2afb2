package services

import (
	"github.com/carbonscore-labs/carbonscore-cli/internal/connectors/filesystem"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// Ensure ConnectorRegistry implements the interface.
var _ driving.ConnectorRegistry = (*ConnectorRegistry)(nil)

// ConnectorRegistry provides information about available connector types.
type ConnectorRegistry struct {
	connectors map[string]domain.ConnectorType
}

// NewConnectorRegistry creates a new connector registry with built-in connectors.
func NewConnectorRegistry() *ConnectorRegistry {
	r := &ConnectorRegistry{
		connectors: make(map[string]domain.ConnectorType),
	}
	r.registerBuiltinConnectors()
	return r
}

func (r *ConnectorRegistry) registerBuiltinConnectors() {
	r.registerADEME()
	r.registerFilesystem()
}

func (r *ConnectorRegistry) registerADEME() {
	r.connectors["ademe"] = domain.ConnectorType{
		ID:          "ademe",
		Name:        "ADEME Library",
		Description: "Harvest publications from the ADEME library RSS feeds",
		ConfigKeys:  ademeConfigKeys(),
	}
}

func ademeConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "themes",
			Label:       "Themes",
			Description: "Comma-separated theme names to harvest (empty for all)",
		},
		{
			Key:         "pdf_dir",
			Label:       "PDF Directory",
			Description: "Directory where downloaded PDFs are stored",
		},
		{
			Key:         "download_pdfs",
			Label:       "Download PDFs",
			Description: "Download linked PDF attachments (true/false)",
			Default:     "true",
		},
	}
}

func (r *ConnectorRegistry) registerFilesystem() {
	r.connectors["filesystem"] = domain.ConnectorType{
		ID:             "filesystem",
		Name:           "Local Filesystem",
		Description:    "Index files from a local directory",
		ConfigKeys:     filesystemConfigKeys(),
		WebURLResolver: filesystem.ResolveWebURL,
	}
}

func filesystemConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "path",
			Label:       "Directory Path",
			Description: "Path to the directory to index",
			Required:    true,
		},
		{
			Key:         "patterns",
			Label:       "File Patterns",
			Description: "Glob patterns to match (e.g., *.md,*.txt)",
		},
	}
}

// List returns all available connector types.
func (r *ConnectorRegistry) List() []domain.ConnectorType {
	result := make([]domain.ConnectorType, 0, len(r.connectors))
	for _, c := range r.connectors {
		result = append(result, c)
	}
	return result
}

// Get returns a specific connector type by ID.
func (r *ConnectorRegistry) Get(id string) (*domain.ConnectorType, error) {
	c, ok := r.connectors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// ValidateConfig validates configuration for a connector type.
func (r *ConnectorRegistry) ValidateConfig(connectorID string, config map[string]string) error {
	connector, ok := r.connectors[connectorID]
	if !ok {
		return domain.ErrNotFound
	}

	for _, key := range connector.ConfigKeys {
		if key.Required {
			val, exists := config[key.Key]
			if !exists || val == "" {
				return domain.ErrInvalidInput
			}
		}
	}
	return nil
}
