package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// Ensure AssistantService implements the interfaces.
var (
	_ driving.AssistantService = (*AssistantService)(nil)
	_ driven.PromptStoreAware  = (*AssistantService)(nil)
)

const defaultAssistantSystemPrompt = `You are an assistant answering questions about carbon footprints,
emission factors and the energy transition, grounded in excerpts from
ADEME publications.

Answer only from the numbered excerpts provided. Cite the excerpts you
used by number, like [1] or [2]. If the excerpts do not contain the
answer, say so plainly instead of guessing.`

// Retrieval depth for grounding. More excerpts than this add noise
// faster than they add recall.
const assistantMaxExcerpts = 6

// Excerpts longer than this are truncated before being sent to the
// model.
const assistantMaxExcerptChars = 1500

// AssistantService answers questions grounded in indexed publications.
type AssistantService struct {
	searchService driving.SearchService
	llmService    driven.LLMService
	promptStore   driven.PromptStore
}

// NewAssistantService creates a new assistant service.
// llmService may be nil, in which case Ask returns ErrLLMUnavailable.
func NewAssistantService(searchService driving.SearchService, llmService driven.LLMService) *AssistantService {
	return &AssistantService{
		searchService: searchService,
		llmService:    llmService,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AssistantService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask retrieves relevant chunks and generates a cited answer.
func (s *AssistantService) Ask(
	ctx context.Context,
	question string,
	opts domain.SearchOptions,
) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.llmService == nil {
		return nil, domain.ErrLLMUnavailable
	}

	if opts.Limit <= 0 || opts.Limit > assistantMaxExcerpts {
		opts.Limit = assistantMaxExcerpts
	}

	results, err := s.searchService.Search(ctx, question, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(results) == 0 {
		return &domain.Answer{
			Text:  "No indexed publications match this question.",
			Model: s.llmService.ModelName(),
		}, nil
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.systemPrompt()},
		{Role: "user", Content: buildAssistantPrompt(question, results)},
	}

	text, err := s.llmService.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: results,
		Model:   s.llmService.ModelName(),
	}, nil
}

// systemPrompt returns the custom system prompt if one is configured,
// otherwise the built-in default.
func (s *AssistantService) systemPrompt() string {
	if s.promptStore != nil {
		if prompt, err := s.promptStore.Load(driven.PromptAssistantSystem); err == nil && prompt != "" {
			return prompt
		}
	}
	return defaultAssistantSystemPrompt
}

// buildAssistantPrompt assembles the numbered excerpts and the question
// into one user message.
func buildAssistantPrompt(question string, results []domain.SearchResult) string {
	var builder strings.Builder
	builder.WriteString("Excerpts:\n\n")

	for i, result := range results {
		title := result.Document.Title
		if title == "" {
			title = result.Document.URI
		}
		content := result.Chunk.Content
		if len(content) > assistantMaxExcerptChars {
			content = content[:assistantMaxExcerptChars] + "..."
		}
		fmt.Fprintf(&builder, "[%d] %s\n%s\n\n", i+1, title, content)
	}

	builder.WriteString("Question: ")
	builder.WriteString(question)
	return builder.String()
}
