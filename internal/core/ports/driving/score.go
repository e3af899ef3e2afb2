package driving

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// ScoreService computes scope 1 carbon assessments.
type ScoreService interface {
	// Compute resolves factors, converts units, and aggregates the
	// entries into a per-category assessment. Biogenic CO2 is reported
	// separately and never counted in the total.
	Compute(ctx context.Context, name string, entries []domain.ActivityEntry) (*domain.Assessment, error)

	// SearchFactors looks up emission factors by free text.
	SearchFactors(ctx context.Context, query string, limit int) ([]domain.EmissionFactor, error)

	// LookupBEGES finds reported assessments by SIREN or organisation
	// name. A 9-digit numeric query is treated as a SIREN, anything
	// else as a name search.
	LookupBEGES(ctx context.Context, query string) (*domain.BEGESReport, error)

	// ListAssessments returns previously computed assessments.
	ListAssessments(ctx context.Context, limit int) ([]domain.Assessment, error)

	// GetAssessment retrieves a stored assessment by ID.
	GetAssessment(ctx context.Context, id string) (*domain.Assessment, error)
}
