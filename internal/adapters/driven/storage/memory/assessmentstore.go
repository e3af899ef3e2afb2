package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure AssessmentStore implements the interface.
var _ driven.AssessmentStore = (*AssessmentStore)(nil)

// AssessmentStore is an in-memory implementation of driven.AssessmentStore.
type AssessmentStore struct {
	mu          sync.RWMutex
	assessments map[string]domain.Assessment
}

// NewAssessmentStore creates a new in-memory assessment store.
func NewAssessmentStore() *AssessmentStore {
	return &AssessmentStore{
		assessments: make(map[string]domain.Assessment),
	}
}

// Save stores an assessment.
func (s *AssessmentStore) Save(_ context.Context, assessment *domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[assessment.ID] = *assessment
	return nil
}

// Get retrieves an assessment by ID.
func (s *AssessmentStore) Get(_ context.Context, id string) (*domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assessment, ok := s.assessments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &assessment, nil
}

// List returns assessments, most recent first.
func (s *AssessmentStore) List(_ context.Context, limit int) ([]domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Assessment, 0, len(s.assessments))
	for id := range s.assessments {
		result = append(result, s.assessments[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes an assessment.
func (s *AssessmentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assessments, id)
	return nil
}
