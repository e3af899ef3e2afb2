package driving

import (
	"context"
	"time"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// HarvestService manages ADEME publication harvesting.
type HarvestService interface {
	// RefreshFeeds fetches the configured RSS feeds and stores new
	// articles. Empty themes means all configured themes.
	RefreshFeeds(ctx context.Context, themes []string) (*HarvestStats, error)

	// ScanArticle fetches an article page and detects PDF attachments.
	ScanArticle(ctx context.Context, articleID string) ([]domain.PDFLink, error)

	// DownloadPDFs fetches detected PDFs, validates them, and stores
	// them on disk. Returns the links that were attempted.
	DownloadPDFs(ctx context.Context, articleID string) ([]domain.PDFLink, error)

	// ListArticles returns harvested articles for a theme.
	ListArticles(ctx context.Context, theme string, limit int) ([]domain.Article, error)
}

// HarvestStats summarises one feed refresh run.
type HarvestStats struct {
	// FeedsFetched is the number of feeds successfully fetched.
	FeedsFetched int

	// NewArticles is the number of articles seen for the first time.
	NewArticles int

	// UpdatedArticles is the number of known articles refreshed in place.
	UpdatedArticles int

	// ActiveArticles is the number of articles active after the run.
	ActiveArticles int

	// Errors is the number of feeds that failed.
	Errors int

	// RefreshedAt is when the run completed.
	RefreshedAt time.Time
}
