package driven

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// ArticleStore persists harvested ADEME publication entries.
type ArticleStore interface {
	// SaveArticle stores or updates an article, keyed by URL.
	SaveArticle(ctx context.Context, article *domain.Article) error

	// GetArticle retrieves an article by ID.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)

	// GetArticleByURL retrieves an article by its publication URL.
	GetArticleByURL(ctx context.Context, url string) (*domain.Article, error)

	// DeactivateTheme marks every article of a theme inactive. A
	// following SaveArticle reactivates the ones still in the feed.
	DeactivateTheme(ctx context.Context, theme string) error

	// ListArticles returns articles for a theme, most recent first.
	// Empty theme returns articles across all themes.
	ListArticles(ctx context.Context, theme string, limit int) ([]domain.Article, error)

	// CountArticles returns the number of stored articles per theme.
	CountArticles(ctx context.Context) (map[string]int, error)
}

// PDFLinkStore persists PDF attachments discovered on article pages.
type PDFLinkStore interface {
	// SavePDFLink stores or updates a link, keyed by URL.
	SavePDFLink(ctx context.Context, link *domain.PDFLink) error

	// GetPDFLink retrieves a link by ID.
	GetPDFLink(ctx context.Context, id string) (*domain.PDFLink, error)

	// GetPDFLinkByURL retrieves a link by its URL.
	GetPDFLinkByURL(ctx context.Context, url string) (*domain.PDFLink, error)

	// ListPDFLinks returns links for an article.
	ListPDFLinks(ctx context.Context, articleID string) ([]domain.PDFLink, error)

	// ListPDFLinksByStatus returns links in a given lifecycle state.
	ListPDFLinksByStatus(ctx context.Context, status domain.PDFStatus, limit int) ([]domain.PDFLink, error)
}
