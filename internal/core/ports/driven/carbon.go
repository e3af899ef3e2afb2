package driven

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// FactorProvider looks up emission factors.
// Backed by the ADEME Base Carbone dataset, with built-in reference
// factors as fallback when the API is unreachable.
type FactorProvider interface {
	// Search returns factors matching the query text, best match first.
	Search(ctx context.Context, query string, limit int) ([]domain.EmissionFactor, error)

	// Resolve returns the single best factor for an activity name.
	// Returns ErrFactorNotFound when nothing matches.
	Resolve(ctx context.Context, activity string) (*domain.EmissionFactor, error)
}

// BEGESProvider looks up reported assessments in the ADEME bilan-ges
// dataset.
type BEGESProvider interface {
	// LookupSIREN returns reports for a 9-digit SIREN identifier.
	LookupSIREN(ctx context.Context, siren string) (*domain.BEGESReport, error)

	// SearchName returns reports matching an organisation name.
	SearchName(ctx context.Context, name string, limit int) (*domain.BEGESReport, error)
}
