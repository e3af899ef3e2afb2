package cli

import (
	"context"
	"errors"
	"time"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
)

// setupTestServices installs working mocks for all services and
// returns a cleanup function restoring the previous wiring.
func setupTestServices() func() {
	oldSearch := searchService
	oldSource := sourceService
	oldDocument := documentService
	oldSync := syncOrchestrator
	oldRegistry := connectorRegistry
	oldScore := scoreService
	oldHarvest := harvestService
	oldAssistant := assistantService

	searchService = &mockSearchService{}
	sourceService = &mockSourceService{}
	documentService = &mockDocumentService{}
	syncOrchestrator = &mockSyncOrchestrator{}
	connectorRegistry = &mockConnectorRegistry{}
	scoreService = &mockScoreService{}
	harvestService = &mockHarvestService{}
	assistantService = &mockAssistantService{}

	return func() {
		searchService = oldSearch
		sourceService = oldSource
		documentService = oldDocument
		syncOrchestrator = oldSync
		connectorRegistry = oldRegistry
		scoreService = oldScore
		harvestService = oldHarvest
		assistantService = oldAssistant
	}
}

var errMock = errors.New("mock failure")

// Search mocks.

type mockSearchService struct{}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return []domain.SearchResult{
		{
			Document:   domain.Document{ID: "doc-1", Title: "Panorama de la chaleur renouvelable"},
			Score:      0.92,
			Highlights: []string{"a matching snippet"},
			SourceName: "librairie ADEME",
		},
	}, nil
}

type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, errMock
}

// Source mocks.

type mockSourceService struct{}

func (m *mockSourceService) Add(_ context.Context, _ domain.Source) error { return nil }

func (m *mockSourceService) Get(_ context.Context, id string) (*domain.Source, error) {
	return &domain.Source{ID: id, Type: "filesystem", Name: "test"}, nil
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return []domain.Source{
		{ID: "source-123", Type: "filesystem", Name: "notes"},
		{ID: "source-456", Type: "ademe", Name: "librairie"},
	}, nil
}

func (m *mockSourceService) Update(_ context.Context, _ domain.Source) error { return nil }

func (m *mockSourceService) Remove(_ context.Context, _ string) error { return nil }

func (m *mockSourceService) ValidateConfig(_ context.Context, _ string, _ map[string]string) error {
	return nil
}

type mockSourceServiceEmpty struct {
	mockSourceService
}

func (m *mockSourceServiceEmpty) List(_ context.Context) ([]domain.Source, error) {
	return nil, nil
}

type mockSourceServiceError struct {
	mockSourceService
}

func (m *mockSourceServiceError) List(_ context.Context) ([]domain.Source, error) {
	return nil, errMock
}

func (m *mockSourceServiceError) Remove(_ context.Context, _ string) error {
	return errMock
}

// Document mocks.

type mockDocumentService struct{}

func (m *mockDocumentService) ListBySource(_ context.Context, sourceID string) ([]domain.Document, error) {
	return []domain.Document{
		{ID: "doc-1", SourceID: sourceID, Title: "Guide BEGES 2024", URI: "file:///tmp/guide-beges.md"},
	}, nil
}

func (m *mockDocumentService) Get(_ context.Context, documentID string) (*domain.Document, error) {
	return &domain.Document{
		ID:        documentID,
		SourceID:  "src-1",
		Title:     "Guide BEGES 2024",
		URI:       "file:///tmp/doc1.md",
		Metadata:  map[string]any{"mime": "text/markdown"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return "La methode BEGES couvre les emissions directes du scope 1.", nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, documentID string) (*driving.DocumentDetails, error) {
	return &driving.DocumentDetails{
		ID:         documentID,
		SourceID:   "src-1",
		SourceName: "librairie ADEME",
		SourceType: "filesystem",
		Title:      "Guide BEGES 2024",
		URI:        "file:///tmp/doc1.md",
		ChunkCount: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		Metadata:   map[string]string{"mime": "text/markdown"},
	}, nil
}

func (m *mockDocumentService) Exclude(_ context.Context, _, _ string) error { return nil }

func (m *mockDocumentService) Refresh(_ context.Context, _ string) error { return nil }

func (m *mockDocumentService) Open(_ context.Context, _ string) error { return nil }

type mockDocumentServiceEmpty struct {
	mockDocumentService
}

func (m *mockDocumentServiceEmpty) ListBySource(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, nil
}

type mockDocumentServiceNoMetadata struct {
	mockDocumentService
}

func (m *mockDocumentServiceNoMetadata) Get(_ context.Context, documentID string) (*domain.Document, error) {
	return &domain.Document{ID: documentID, Title: "Bare"}, nil
}

func (m *mockDocumentServiceNoMetadata) GetDetails(_ context.Context, documentID string) (*driving.DocumentDetails, error) {
	return &driving.DocumentDetails{ID: documentID, Title: "Bare"}, nil
}

type mockDocumentServiceNoURI struct {
	mockDocumentService
}

func (m *mockDocumentServiceNoURI) ListBySource(_ context.Context, sourceID string) ([]domain.Document, error) {
	return []domain.Document{{ID: "doc-1", SourceID: sourceID, Title: "Guide BEGES 2024"}}, nil
}

type mockDocumentServiceError struct{}

func (m *mockDocumentServiceError) ListBySource(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) GetContent(_ context.Context, _ string) (string, error) {
	return "", errMock
}

func (m *mockDocumentServiceError) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return nil, errMock
}

func (m *mockDocumentServiceError) Exclude(_ context.Context, _, _ string) error { return errMock }

func (m *mockDocumentServiceError) Refresh(_ context.Context, _ string) error { return errMock }

func (m *mockDocumentServiceError) Open(_ context.Context, _ string) error { return errMock }

// Sync mocks. The working mockSyncOrchestrator lives in sync_test.go.

type mockSyncOrchestratorError struct{}

func (m *mockSyncOrchestratorError) Sync(_ context.Context, _ string) error { return errMock }

func (m *mockSyncOrchestratorError) SyncAll(_ context.Context) error { return errMock }

func (m *mockSyncOrchestratorError) Status(_ context.Context, _ string) (*driving.SyncStatus, error) {
	return nil, errMock
}

// Connector registry mocks.

type mockConnectorRegistry struct{}

func (m *mockConnectorRegistry) List() []domain.ConnectorType {
	return []domain.ConnectorType{
		{
			ID:          "filesystem",
			Name:        "Local Filesystem",
			Description: "Index documents from a local directory",
			ConfigKeys: []domain.ConfigKey{
				{Key: "path", Label: "Root path", Description: "Directory to index", Required: true},
			},
		},
		{
			ID:          "ademe",
			Name:        "ADEME Librairie",
			Description: "Harvest publications from librairie.ademe.fr",
			ConfigKeys: []domain.ConfigKey{
				{Key: "themes", Label: "Themes", Description: "Comma-separated theme filter"},
			},
		},
	}
}

func (m *mockConnectorRegistry) Get(id string) (*domain.ConnectorType, error) {
	for _, connector := range m.List() {
		if connector.ID == id {
			return &connector, nil
		}
	}
	return nil, domain.ErrUnsupportedType
}

func (m *mockConnectorRegistry) ValidateConfig(_ string, _ map[string]string) error {
	return nil
}

type mockConnectorRegistryEmpty struct{}

func (m *mockConnectorRegistryEmpty) List() []domain.ConnectorType { return nil }

func (m *mockConnectorRegistryEmpty) Get(_ string) (*domain.ConnectorType, error) {
	return nil, domain.ErrUnsupportedType
}

func (m *mockConnectorRegistryEmpty) ValidateConfig(_ string, _ map[string]string) error {
	return nil
}

// Score mocks.

type mockScoreService struct{}

func (m *mockScoreService) Compute(_ context.Context, name string, entries []domain.ActivityEntry) (*domain.Assessment, error) {
	return &domain.Assessment{
		ID:   "assessment-1",
		Name: name,
		Results: []domain.CategoryResult{
			{Category: domain.CategoryFossil, EmissionsKg: 2040, Entries: len(entries)},
		},
		TotalTonnes: 2.04,
		CreatedAt:   time.Now(),
	}, nil
}

func (m *mockScoreService) SearchFactors(_ context.Context, _ string, _ int) ([]domain.EmissionFactor, error) {
	return []domain.EmissionFactor{
		{Name: "Gaz naturel", Unit: "kwh", Value: 0.204, Source: "Base Carbone"},
	}, nil
}

func (m *mockScoreService) LookupBEGES(_ context.Context, query string) (*domain.BEGESReport, error) {
	return &domain.BEGESReport{
		Query: query,
		Entries: []domain.BEGESEntry{
			{SIREN: "552081317", Name: "EDF", Year: 2022, Scope1Tonnes: 980000},
		},
	}, nil
}

func (m *mockScoreService) ListAssessments(_ context.Context, _ int) ([]domain.Assessment, error) {
	return []domain.Assessment{
		{ID: "assessment-1", Name: "Usine Lyon", TotalTonnes: 2.04, CreatedAt: time.Now()},
	}, nil
}

func (m *mockScoreService) GetAssessment(_ context.Context, id string) (*domain.Assessment, error) {
	return &domain.Assessment{
		ID:   id,
		Name: "Usine Lyon",
		Results: []domain.CategoryResult{
			{Category: domain.CategoryFossil, EmissionsKg: 2040, Entries: 1},
		},
		TotalTonnes: 2.04,
		CreatedAt:   time.Now(),
	}, nil
}

type mockScoreServiceError struct{}

func (m *mockScoreServiceError) Compute(_ context.Context, _ string, _ []domain.ActivityEntry) (*domain.Assessment, error) {
	return nil, errMock
}

func (m *mockScoreServiceError) SearchFactors(_ context.Context, _ string, _ int) ([]domain.EmissionFactor, error) {
	return nil, errMock
}

func (m *mockScoreServiceError) LookupBEGES(_ context.Context, _ string) (*domain.BEGESReport, error) {
	return nil, errMock
}

func (m *mockScoreServiceError) ListAssessments(_ context.Context, _ int) ([]domain.Assessment, error) {
	return nil, errMock
}

func (m *mockScoreServiceError) GetAssessment(_ context.Context, _ string) (*domain.Assessment, error) {
	return nil, errMock
}

// Harvest mocks.

type mockHarvestService struct{}

func (m *mockHarvestService) RefreshFeeds(_ context.Context, _ []string) (*driving.HarvestStats, error) {
	return &driving.HarvestStats{FeedsFetched: 2, NewArticles: 5}, nil
}

func (m *mockHarvestService) ScanArticle(_ context.Context, articleID string) ([]domain.PDFLink, error) {
	return []domain.PDFLink{
		{ID: "pdf-1", ArticleID: articleID, URL: "https://librairie.ademe.fr/docs/guide.pdf", Status: domain.PDFDetected},
	}, nil
}

func (m *mockHarvestService) DownloadPDFs(_ context.Context, articleID string) ([]domain.PDFLink, error) {
	return []domain.PDFLink{
		{
			ID:        "pdf-1",
			ArticleID: articleID,
			URL:       "https://librairie.ademe.fr/docs/guide.pdf",
			Filename:  "guide.pdf",
			Size:      204800,
			Status:    domain.PDFDownloaded,
		},
	}, nil
}

func (m *mockHarvestService) ListArticles(_ context.Context, theme string, _ int) ([]domain.Article, error) {
	return []domain.Article{
		{ID: "article-1", Theme: theme, Title: "Chaleur renouvelable", URL: "https://librairie.ademe.fr/a1.html"},
	}, nil
}

type mockHarvestServiceError struct{}

func (m *mockHarvestServiceError) RefreshFeeds(_ context.Context, _ []string) (*driving.HarvestStats, error) {
	return nil, errMock
}

func (m *mockHarvestServiceError) ScanArticle(_ context.Context, _ string) ([]domain.PDFLink, error) {
	return nil, errMock
}

func (m *mockHarvestServiceError) DownloadPDFs(_ context.Context, _ string) ([]domain.PDFLink, error) {
	return nil, errMock
}

func (m *mockHarvestServiceError) ListArticles(_ context.Context, _ string, _ int) ([]domain.Article, error) {
	return nil, errMock
}

// Assistant mocks.

type mockAssistantService struct{}

func (m *mockAssistantService) Ask(_ context.Context, _ string, _ domain.SearchOptions) (*domain.Answer, error) {
	return &domain.Answer{
		Text:  "La chaleur renouvelable couvre 25% des besoins [1].",
		Model: "mock-llm",
		Sources: []domain.SearchResult{
			{Document: domain.Document{ID: "doc-1", Title: "Panorama chaleur", URI: "https://librairie.ademe.fr/a1.html"}},
		},
	}, nil
}

type mockAssistantServiceError struct{}

func (m *mockAssistantServiceError) Ask(_ context.Context, _ string, _ domain.SearchOptions) (*domain.Answer, error) {
	return nil, errMock
}
