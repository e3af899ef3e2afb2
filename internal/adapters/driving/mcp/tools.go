package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string   `json:"document_id"`
	Title      string   `json:"title"`
	URI        string   `json:"uri"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
	Content    string   `json:"content,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from indexed ADEME publications"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of source chunks to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string               `json:"answer"`
	Model   string               `json:"model,omitempty"`
	Sources []SearchResultOutput `json:"sources"`
}

// ActivityEntryInput is one activity line for the compute_score tool.
type ActivityEntryInput struct {
	Category string  `json:"category" jsonschema:"scope 1 category: 1A fossil combustion, 1B biomass, 1C industrial processes, 1D refrigerant leakage"`
	Activity string  `json:"activity" jsonschema:"the emission source, e.g. Gaz naturel"`
	Quantity float64 `json:"quantity" jsonschema:"the amount of activity"`
	Unit     string  `json:"unit" jsonschema:"the unit the quantity is expressed in, e.g. kWh, L, kg, t"`
}

// ComputeScoreInput is the input schema for the compute_score tool.
type ComputeScoreInput struct {
	Name    string               `json:"name,omitempty" jsonschema:"label for the assessment"`
	Entries []ActivityEntryInput `json:"entries" jsonschema:"the activity entries to aggregate"`
}

// CategoryResultOutput is a per-category emissions line.
type CategoryResultOutput struct {
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	EmissionsKg float64 `json:"emissions_kg"`
	BiogenicKg  float64 `json:"biogenic_kg,omitempty"`
	Entries     int     `json:"entries"`
}

// ComputeScoreOutput is the output schema for the compute_score tool.
type ComputeScoreOutput struct {
	AssessmentID   string                 `json:"assessment_id"`
	Name           string                 `json:"name,omitempty"`
	Results        []CategoryResultOutput `json:"results"`
	TotalKg        float64                `json:"total_kg"`
	TotalTonnes    float64                `json:"total_tonnes"`
	BiogenicKg     float64                `json:"biogenic_kg,omitempty"`
	BiogenicTonnes float64                `json:"biogenic_tonnes,omitempty"`
}

// SearchFactorsInput is the input schema for the search_factors tool.
type SearchFactorsInput struct {
	Query string `json:"query" jsonschema:"free text to match against Base Carbone emission factors"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of factors to return (default 10)"`
}

// FactorOutput is one emission factor result.
type FactorOutput struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Value         float64 `json:"value_kgco2e_per_unit"`
	BiogenicValue float64 `json:"biogenic_kgco2_per_unit,omitempty"`
	Source        string  `json:"source"`
}

// SearchFactorsOutput is the output schema for the search_factors tool.
type SearchFactorsOutput struct {
	Factors []FactorOutput `json:"factors"`
	Count   int            `json:"count"`
}

// BEGESLookupInput is the input schema for the beges_lookup tool.
type BEGESLookupInput struct {
	Query string `json:"query" jsonschema:"a 9-digit SIREN or an organisation name to look up in the bilan-ges dataset"`
}

// BEGESEntryOutput is one reported assessment.
type BEGESEntryOutput struct {
	SIREN        string  `json:"siren"`
	Name         string  `json:"name"`
	Year         int     `json:"year"`
	Scope1Tonnes float64 `json:"scope1_tonnes"`
}

// BEGESLookupOutput is the output schema for the beges_lookup tool.
type BEGESLookupOutput struct {
	Query   string             `json:"query"`
	Entries []BEGESEntryOutput `json:"entries"`
	Count   int                `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed documents",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question grounded in indexed ADEME publications, with cited sources",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_score",
		Description: "Compute a scope 1 carbon assessment from activity entries",
	}, s.handleComputeScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_factors",
		Description: "Search ADEME Base Carbone emission factors by free text",
	}, s.handleSearchFactors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "beges_lookup",
		Description: "Look up reported BEGES assessments by SIREN or organisation name",
	}, s.handleBEGESLookup)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: searchResultOutputs(results),
		Count:   len(results),
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Assistant == nil {
		return nil, AskOutput{}, ErrAssistantUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	answer, err := s.ports.Assistant.Ask(ctx, input.Question, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Model:   answer.Model,
		Sources: searchResultOutputs(answer.Sources),
	}

	return nil, output, nil
}

// handleComputeScore handles the compute_score tool invocation.
func (s *Server) handleComputeScore(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComputeScoreInput,
) (*mcp.CallToolResult, ComputeScoreOutput, error) {
	if s.ports.Score == nil {
		return nil, ComputeScoreOutput{}, ErrScoreUnavailable
	}

	entries := make([]domain.ActivityEntry, 0, len(input.Entries))
	for _, e := range input.Entries {
		category := domain.EmissionCategory(e.Category)
		if !category.IsValid() {
			return nil, ComputeScoreOutput{}, fmt.Errorf(
				"%w: unknown category %q", domain.ErrInvalidInput, e.Category)
		}
		entries = append(entries, domain.ActivityEntry{
			Category: category,
			Activity: e.Activity,
			Quantity: e.Quantity,
			Unit:     e.Unit,
		})
	}

	assessment, err := s.ports.Score.Compute(ctx, input.Name, entries)
	if err != nil {
		return nil, ComputeScoreOutput{}, err
	}

	output := ComputeScoreOutput{
		AssessmentID:   assessment.ID,
		Name:           assessment.Name,
		Results:        make([]CategoryResultOutput, len(assessment.Results)),
		TotalKg:        assessment.TotalKg,
		TotalTonnes:    assessment.TotalTonnes,
		BiogenicKg:     assessment.BiogenicKg,
		BiogenicTonnes: assessment.BiogenicTonnes,
	}
	for i, r := range assessment.Results {
		output.Results[i] = CategoryResultOutput{
			Category:    string(r.Category),
			Label:       r.Category.Label(),
			EmissionsKg: r.EmissionsKg,
			BiogenicKg:  r.BiogenicKg,
			Entries:     r.Entries,
		}
	}

	return nil, output, nil
}

// handleSearchFactors handles the search_factors tool invocation.
func (s *Server) handleSearchFactors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchFactorsInput,
) (*mcp.CallToolResult, SearchFactorsOutput, error) {
	if s.ports.Score == nil {
		return nil, SearchFactorsOutput{}, ErrScoreUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	factors, err := s.ports.Score.SearchFactors(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchFactorsOutput{}, err
	}

	output := SearchFactorsOutput{
		Factors: make([]FactorOutput, len(factors)),
		Count:   len(factors),
	}
	for i, f := range factors {
		output.Factors[i] = FactorOutput{
			ID:            f.ID,
			Name:          f.Name,
			Unit:          f.Unit,
			Value:         f.Value,
			BiogenicValue: f.BiogenicValue,
			Source:        f.Source,
		}
	}

	return nil, output, nil
}

// handleBEGESLookup handles the beges_lookup tool invocation.
func (s *Server) handleBEGESLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BEGESLookupInput,
) (*mcp.CallToolResult, BEGESLookupOutput, error) {
	if s.ports.Score == nil {
		return nil, BEGESLookupOutput{}, ErrScoreUnavailable
	}

	report, err := s.ports.Score.LookupBEGES(ctx, input.Query)
	if err != nil {
		return nil, BEGESLookupOutput{}, err
	}

	output := BEGESLookupOutput{
		Query:   report.Query,
		Entries: make([]BEGESEntryOutput, len(report.Entries)),
		Count:   len(report.Entries),
	}
	for i, e := range report.Entries {
		output.Entries[i] = BEGESEntryOutput{
			SIREN:        e.SIREN,
			Name:         e.Name,
			Year:         e.Year,
			Scope1Tonnes: e.Scope1Tonnes,
		}
	}

	return nil, output, nil
}

// searchResultOutputs maps domain results to the wire shape shared by
// the search and ask tools.
func searchResultOutputs(results []domain.SearchResult) []SearchResultOutput {
	outputs := make([]SearchResultOutput, len(results))
	for i := range results {
		outputs[i] = SearchResultOutput{
			DocumentID: results[i].Document.ID,
			Title:      results[i].Document.Title,
			URI:        results[i].Document.URI,
			Score:      results[i].Score,
			Highlights: results[i].Highlights,
			Content:    results[i].Chunk.Content,
		}
	}
	return outputs
}
