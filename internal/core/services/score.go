package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// Ensure ScoreService implements the interface.
var _ driving.ScoreService = (*ScoreService)(nil)

// ScoreService computes scope 1 carbon assessments from activity data.
type ScoreService struct {
	factorProvider  driven.FactorProvider
	begesProvider   driven.BEGESProvider
	assessmentStore driven.AssessmentStore
}

// NewScoreService creates a new score service.
func NewScoreService(
	factorProvider driven.FactorProvider,
	begesProvider driven.BEGESProvider,
	assessmentStore driven.AssessmentStore,
) *ScoreService {
	return &ScoreService{
		factorProvider:  factorProvider,
		begesProvider:   begesProvider,
		assessmentStore: assessmentStore,
	}
}

// Compute resolves factors, converts units, and aggregates entries into
// a per-category assessment. Biogenic CO2 is tracked separately and
// never counted in the total.
func (s *ScoreService) Compute(
	ctx context.Context,
	name string,
	entries []domain.ActivityEntry,
) (*domain.Assessment, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no activity entries", domain.ErrInvalidInput)
	}

	byCategory := make(map[domain.EmissionCategory]*domain.CategoryResult)

	for i, entry := range entries {
		if !entry.Category.IsValid() {
			return nil, fmt.Errorf("%w: entry %d has unknown category %q", domain.ErrInvalidInput, i, entry.Category)
		}
		if entry.Quantity < 0 {
			return nil, fmt.Errorf("%w: entry %d has negative quantity", domain.ErrInvalidInput, i)
		}

		factor, err := s.entryFactor(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("resolve factor for %q: %w", entry.Activity, err)
		}

		quantity, err := domain.ConvertAmount(entry.Quantity, entry.Unit, factor.Unit)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry.Activity, err)
		}

		result, ok := byCategory[entry.Category]
		if !ok {
			result = &domain.CategoryResult{Category: entry.Category}
			byCategory[entry.Category] = result
		}
		result.EmissionsKg += quantity * factor.Value
		result.BiogenicKg += quantity * factor.BiogenicValue
		result.Entries++
	}

	assessment := &domain.Assessment{
		ID:        uuid.NewString(),
		Name:      name,
		Entries:   entries,
		CreatedAt: time.Now(),
	}

	for _, result := range byCategory {
		assessment.Results = append(assessment.Results, *result)
		assessment.TotalKg += result.EmissionsKg
		assessment.BiogenicKg += result.BiogenicKg
	}
	assessment.TotalTonnes = assessment.TotalKg / 1000.0
	assessment.BiogenicTonnes = assessment.BiogenicKg / 1000.0
	sort.Slice(assessment.Results, func(i, j int) bool {
		return assessment.Results[i].Category < assessment.Results[j].Category
	})

	if s.assessmentStore != nil {
		if err := s.assessmentStore.Save(ctx, assessment); err != nil {
			return nil, fmt.Errorf("save assessment: %w", err)
		}
	}

	return assessment, nil
}

// entryFactor resolves the factor for one entry. An explicit factor on
// the entry wins, then the provider, then the built-in table.
func (s *ScoreService) entryFactor(ctx context.Context, entry domain.ActivityEntry) (*domain.EmissionFactor, error) {
	if entry.FactorValue > 0 {
		return &domain.EmissionFactor{
			Name:          entry.Activity,
			Category:      entry.Category,
			Unit:          entry.Unit,
			Value:         entry.FactorValue,
			BiogenicValue: entry.BiogenicFactorValue,
			Source:        "explicit",
		}, nil
	}
	return s.resolveFactor(ctx, entry.Activity)
}

// resolveFactor asks the provider first and falls back to the built-in
// reference factors when the provider is unavailable or has no match.
func (s *ScoreService) resolveFactor(ctx context.Context, activity string) (*domain.EmissionFactor, error) {
	if s.factorProvider != nil {
		factor, err := s.factorProvider.Resolve(ctx, activity)
		if err == nil {
			return factor, nil
		}
	}
	return resolveBuiltinFactor(activity)
}

// resolveBuiltinFactor matches an activity name against the built-in
// reference factors, case and accent insensitively enough for exact and
// substring matches.
func resolveBuiltinFactor(activity string) (*domain.EmissionFactor, error) {
	needle := strings.ToLower(strings.TrimSpace(activity))
	if needle == "" {
		return nil, domain.ErrFactorNotFound
	}

	// Exact match wins over substring match.
	for i := range domain.BuiltinFactors {
		if strings.ToLower(domain.BuiltinFactors[i].Name) == needle {
			f := domain.BuiltinFactors[i]
			return &f, nil
		}
	}
	for i := range domain.BuiltinFactors {
		name := strings.ToLower(domain.BuiltinFactors[i].Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			f := domain.BuiltinFactors[i]
			return &f, nil
		}
	}
	return nil, domain.ErrFactorNotFound
}

// SearchFactors looks up emission factors by free text.
func (s *ScoreService) SearchFactors(ctx context.Context, query string, limit int) ([]domain.EmissionFactor, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}

	if s.factorProvider != nil {
		factors, err := s.factorProvider.Search(ctx, query, limit)
		if err == nil && len(factors) > 0 {
			return factors, nil
		}
	}

	// Fallback to built-in reference factors.
	needle := strings.ToLower(query)
	var matches []domain.EmissionFactor
	for _, f := range domain.BuiltinFactors {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			matches = append(matches, f)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

// LookupBEGES finds reported assessments by SIREN or organisation name.
func (s *ScoreService) LookupBEGES(ctx context.Context, query string) (*domain.BEGESReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.begesProvider == nil {
		return nil, domain.ErrNotImplemented
	}

	// All-digit queries are SIREN lookups; a wrong length is a typo,
	// not an organisation name.
	if isDigits(query) {
		if len(query) != 9 {
			return nil, fmt.Errorf("%w: SIREN must be 9 digits, got %d", domain.ErrInvalidInput, len(query))
		}
		return s.begesProvider.LookupSIREN(ctx, query)
	}
	return s.begesProvider.SearchName(ctx, query, 20)
}

// isDigits reports whether the string is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ListAssessments returns previously computed assessments.
func (s *ScoreService) ListAssessments(ctx context.Context, limit int) ([]domain.Assessment, error) {
	if s.assessmentStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit <= 0 {
		limit = 20
	}
	return s.assessmentStore.List(ctx, limit)
}

// GetAssessment retrieves a stored assessment by ID.
func (s *ScoreService) GetAssessment(ctx context.Context, id string) (*domain.Assessment, error) {
	if s.assessmentStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.assessmentStore.Get(ctx, id)
}
