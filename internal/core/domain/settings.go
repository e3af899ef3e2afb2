package domain

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Mode is the search retrieval mode.
	Mode SearchMode
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// VectorIndexSettings holds vector index configuration.
// Vectors are stored as float32 alongside chunks.
type VectorIndexSettings struct {
	// Enabled indicates whether vector indexing is active.
	Enabled bool

	// Dimensions is the embedding vector size.
	Dimensions int
}

// HarvestSettings holds ADEME harvesting configuration.
type HarvestSettings struct {
	// PDFDir is where downloaded publication PDFs are stored.
	PDFDir string

	// Themes restricts harvesting to these theme names.
	// Empty means all themes.
	Themes []string

	// KeepPerTheme is how many recent feed entries to keep active per
	// theme. Zero means the default of 3.
	KeepPerTheme int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// VectorIndex holds vector index settings.
	VectorIndex VectorIndexSettings

	// Harvest holds ADEME harvesting settings.
	Harvest HarvestSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// AI features (Embedding, LLM) are left unconfigured by default and
// must be set up explicitly via the config commands.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Mode: SearchModeTextOnly,
		},
		Embedding: EmbeddingSettings{},
		LLM:       LLMSettings{},
		VectorIndex: VectorIndexSettings{
			Enabled:    false,
			Dimensions: 768, // nomic-embed-text default
		},
		Harvest: HarvestSettings{},
	}
}

// AllSearchModes returns all available search modes.
func AllSearchModes() []SearchMode {
	return []SearchMode{
		SearchModeTextOnly,
		SearchModeHybrid,
		SearchModeLLMAssisted,
		SearchModeFull,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so processors can be added without
// modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// Scrubbing runs before chunking so boilerplate never reaches the index.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"scrub", "chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": 1000,
				"overlap":    200,
			},
		},
	}
}
