package mcp

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.Source
	source  *domain.Source
	err     error
}

func (m *mockSourceService) Add(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return m.source, m.err
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) Update(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) ValidateConfig(_ context.Context, _ string, _ map[string]string) error {
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	details   *driving.DocumentDetails
	err       error
}

func (m *mockDocumentService) ListBySource(_ context.Context, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Exclude(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockDocumentService) Refresh(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}

// mockScoreService is a mock implementation of driving.ScoreService.
type mockScoreService struct {
	assessment  *domain.Assessment
	assessments []domain.Assessment
	factors     []domain.EmissionFactor
	report      *domain.BEGESReport
	err         error
}

func (m *mockScoreService) Compute(
	_ context.Context, _ string, _ []domain.ActivityEntry,
) (*domain.Assessment, error) {
	return m.assessment, m.err
}

func (m *mockScoreService) SearchFactors(
	_ context.Context, _ string, _ int,
) ([]domain.EmissionFactor, error) {
	return m.factors, m.err
}

func (m *mockScoreService) LookupBEGES(_ context.Context, _ string) (*domain.BEGESReport, error) {
	return m.report, m.err
}

func (m *mockScoreService) ListAssessments(_ context.Context, _ int) ([]domain.Assessment, error) {
	return m.assessments, m.err
}

func (m *mockScoreService) GetAssessment(_ context.Context, _ string) (*domain.Assessment, error) {
	return m.assessment, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAssistantService) Ask(
	_ context.Context, _ string, _ domain.SearchOptions,
) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockHarvestService is a mock implementation of driving.HarvestService.
type mockHarvestService struct {
	stats    *driving.HarvestStats
	links    []domain.PDFLink
	articles []domain.Article
	err      error
}

func (m *mockHarvestService) RefreshFeeds(
	_ context.Context, _ []string,
) (*driving.HarvestStats, error) {
	return m.stats, m.err
}

func (m *mockHarvestService) ScanArticle(_ context.Context, _ string) ([]domain.PDFLink, error) {
	return m.links, m.err
}

func (m *mockHarvestService) DownloadPDFs(_ context.Context, _ string) ([]domain.PDFLink, error) {
	return m.links, m.err
}

func (m *mockHarvestService) ListArticles(
	_ context.Context, _ string, _ int,
) ([]domain.Article, error) {
	return m.articles, m.err
}
