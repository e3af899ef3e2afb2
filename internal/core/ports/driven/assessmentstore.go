package driven

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// AssessmentStore persists computed carbon assessments.
type AssessmentStore interface {
	// Save stores an assessment.
	Save(ctx context.Context, assessment *domain.Assessment) error

	// Get retrieves an assessment by ID.
	Get(ctx context.Context, id string) (*domain.Assessment, error)

	// List returns assessments, most recent first.
	List(ctx context.Context, limit int) ([]domain.Assessment, error)

	// Delete removes an assessment.
	Delete(ctx context.Context, id string) error
}
