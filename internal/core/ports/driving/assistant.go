package driving

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// AssistantService answers questions grounded in indexed publications.
type AssistantService interface {
	// Ask retrieves relevant chunks and generates a cited answer.
	// Requires a configured LLM provider; returns ErrLLMUnavailable otherwise.
	Ask(ctx context.Context, question string, opts domain.SearchOptions) (*domain.Answer, error)
}
