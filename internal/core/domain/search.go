package domain

const unknownDescription = "Unknown"

// SearchMode defines how search operations combine different retrieval methods.
type SearchMode string

// Available search modes.
const (
	// SearchModeTextOnly uses only keyword/full-text search.
	SearchModeTextOnly SearchMode = "text_only"

	// SearchModeHybrid combines text and semantic (vector) search.
	SearchModeHybrid SearchMode = "hybrid"

	// SearchModeLLMAssisted uses text search with LLM query expansion.
	SearchModeLLMAssisted SearchMode = "llm_assisted"

	// SearchModeFull combines text, semantic, and LLM query expansion.
	SearchModeFull SearchMode = "full"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeTextOnly, SearchModeHybrid, SearchModeLLMAssisted, SearchModeFull:
		return true
	default:
		return false
	}
}

// RequiresEmbedding returns true if this mode needs an embedding provider.
func (m SearchMode) RequiresEmbedding() bool {
	return m == SearchModeHybrid || m == SearchModeFull
}

// RequiresLLM returns true if this mode needs an LLM provider.
func (m SearchMode) RequiresLLM() bool {
	return m == SearchModeLLMAssisted || m == SearchModeFull
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeTextOnly:
		return "Text Only (keyword search)"
	case SearchModeHybrid:
		return "Hybrid (text + semantic search)"
	case SearchModeLLMAssisted:
		return "LLM Assisted (text + query expansion)"
	case SearchModeFull:
		return "Full (text + semantic + LLM)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// SourceIDs filters to specific sources.
	SourceIDs []string

	// Themes filters to specific ADEME themes.
	Themes []string

	// Semantic enables vector similarity search.
	Semantic bool

	// Hybrid enables combined keyword + semantic search.
	Hybrid bool
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Chunk is the specific chunk that matched.
	Chunk Chunk

	// Score is the relevance score.
	Score float64

	// Highlights contains snippets with matched terms.
	Highlights []string

	// SourceName is the display name of the source.
	SourceName string
}

// Answer is the result of a grounded question to the assistant.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the retrieved results the answer was grounded on,
	// in the order they were presented to the model.
	Sources []SearchResult

	// Model is the LLM that produced the answer.
	Model string
}
