package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt is
	// required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// Useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptQueryRewrite expands search queries for better recall.
	// The prompt template expects a %s placeholder for the original query.
	PromptQueryRewrite = "query_rewrite"

	// PromptSummarise creates summaries of document content.
	// The prompt template expects %d (max length) and %s (content) placeholders.
	PromptSummarise = "summarise"

	// PromptAssistantSystem is the system prompt for grounded answering.
	// It instructs the model to answer only from the supplied excerpts
	// and cite them by number. No format placeholders.
	PromptAssistantSystem = "assistant_system"
)

// PromptStoreAware is an optional interface for services that can use
// custom prompts. Services implementing it can have their prompt
// templates customised by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
