package domain

// ConnectorType describes a supported connector.
type ConnectorType struct {
	// ID is the unique identifier (e.g., "ademe", "filesystem").
	ID string

	// Name is the human-readable display name.
	Name string

	// Description provides a brief explanation of the connector.
	Description string

	// ConfigKeys lists the configuration fields accepted by this connector.
	ConfigKeys []ConfigKey

	// WebURLResolver converts document URIs to web-openable URLs.
	// If nil, the URI is shown as-is.
	WebURLResolver WebURLResolver
}

// WebURLResolver converts a document URI to a web-openable URL.
// Returns empty string if the URI cannot be resolved.
type WebURLResolver func(uri string, metadata map[string]any) string

// ConfigKey describes a configuration field for a connector.
type ConfigKey struct {
	// Key is the configuration key name.
	Key string

	// Label is the human-readable label for display.
	Label string

	// Description explains what this field is for.
	Description string

	// Default is the default value for this field.
	Default string

	// Required indicates whether this field must be provided.
	Required bool
}
