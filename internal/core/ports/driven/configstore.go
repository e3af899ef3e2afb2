package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (the TOML file under
// ~/.carbonscore) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key. The boolean reports
	// whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value. Returns "" when the key is
	// missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 when the key is
	// missing or not an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean value. Returns false when the key is
	// missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value. Returns nil when
	// the key is missing or not a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
