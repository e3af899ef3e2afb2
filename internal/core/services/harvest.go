package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driving"
	"github.com/carbonscore-labs/carbonscore-cli/internal/logger"
)

// Ensure HarvestService implements the interface.
var _ driving.HarvestService = (*HarvestService)(nil)

// defaultKeepPerTheme is how many recent feed entries stay active per
// theme when nothing else is configured.
const defaultKeepPerTheme = 3

// HarvestService harvests ADEME publications from the librairie RSS
// feeds and downloads their PDF attachments.
type HarvestService struct {
	feedClient    driven.FeedClient
	pageScanner   driven.PageScanner
	pdfDownloader driven.PDFDownloader
	articleStore  driven.ArticleStore
	pdfLinkStore  driven.PDFLinkStore
	settings      driving.SettingsService
}

// NewHarvestService creates a new harvest service.
func NewHarvestService(
	feedClient driven.FeedClient,
	pageScanner driven.PageScanner,
	pdfDownloader driven.PDFDownloader,
	articleStore driven.ArticleStore,
	pdfLinkStore driven.PDFLinkStore,
	settings driving.SettingsService,
) *HarvestService {
	return &HarvestService{
		feedClient:    feedClient,
		pageScanner:   pageScanner,
		pdfDownloader: pdfDownloader,
		articleStore:  articleStore,
		pdfLinkStore:  pdfLinkStore,
		settings:      settings,
	}
}

// RefreshFeeds fetches the configured feeds and upserts the most
// recent entries of each. Empty themes means the configured themes, or
// all themes when nothing is configured. Articles no longer in a feed
// are deactivated, not deleted. A failing feed is counted and skipped,
// not fatal.
func (s *HarvestService) RefreshFeeds(ctx context.Context, themes []string) (*driving.HarvestStats, error) {
	if s.feedClient == nil || s.articleStore == nil {
		return nil, domain.ErrNotImplemented
	}

	selected, err := s.selectThemes(themes)
	if err != nil {
		return nil, err
	}

	keep := s.keepPerTheme()
	stats := &driving.HarvestStats{}
	for _, theme := range selected {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		articles, err := s.feedClient.Fetch(ctx, theme.FeedURL)
		if err != nil {
			logger.Warn("harvest: feed %s failed: %v", theme.Name, err)
			stats.Errors++
			continue
		}
		stats.FeedsFetched++

		// Keep only the most recent entries per theme.
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Published.After(articles[j].Published)
		})
		if len(articles) > keep {
			articles = articles[:keep]
		}

		// Entries that dropped out of the feed window go inactive;
		// the upserts below reactivate everything still present.
		if err := s.articleStore.DeactivateTheme(ctx, theme.Name); err != nil {
			logger.Warn("harvest: deactivate theme %s: %v", theme.Name, err)
			stats.Errors++
			continue
		}

		for i := range articles {
			isNew, err := s.storeArticle(ctx, theme.Name, &articles[i])
			if err != nil {
				logger.Warn("harvest: store article %s: %v", articles[i].URL, err)
				continue
			}
			if isNew {
				stats.NewArticles++
			} else {
				stats.UpdatedArticles++
			}
			stats.ActiveArticles++
		}
	}
	stats.RefreshedAt = time.Now()

	return stats, nil
}

// keepPerTheme resolves the per-theme retention from settings.
func (s *HarvestService) keepPerTheme() int {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings.Harvest.KeepPerTheme > 0 {
			return settings.Harvest.KeepPerTheme
		}
	}
	return defaultKeepPerTheme
}

// selectThemes resolves theme names to feeds. Unknown names are an
// error so typos surface instead of silently harvesting nothing.
func (s *HarvestService) selectThemes(themes []string) ([]domain.Theme, error) {
	if len(themes) == 0 && s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			themes = settings.Harvest.Themes
		}
	}
	if len(themes) == 0 {
		return domain.Themes, nil
	}

	selected := make([]domain.Theme, 0, len(themes))
	for _, name := range themes {
		theme, ok := domain.ThemeByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, name)
		}
		selected = append(selected, theme)
	}
	return selected, nil
}

// storeArticle upserts an article, keyed by its publication URL.
// Known articles keep their ID and get refreshed metadata; either way
// the article ends up active. Returns true when the article is new.
func (s *HarvestService) storeArticle(ctx context.Context, theme string, article *domain.Article) (bool, error) {
	article.Theme = theme
	article.FetchedAt = time.Now()
	article.Active = true

	existing, err := s.articleStore.GetArticleByURL(ctx, article.URL)
	if err == nil && existing != nil {
		article.ID = existing.ID
	} else {
		article.ID = uuid.NewString()
	}

	if err := s.articleStore.SaveArticle(ctx, article); err != nil {
		return false, err
	}
	return existing == nil, nil
}

// ScanArticle fetches an article page and records detected PDF links.
func (s *HarvestService) ScanArticle(ctx context.Context, articleID string) ([]domain.PDFLink, error) {
	if s.pageScanner == nil || s.pdfLinkStore == nil {
		return nil, domain.ErrNotImplemented
	}

	article, err := s.articleStore.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	urls, err := s.pageScanner.FindPDFLinks(ctx, article.URL)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", article.URL, err)
	}

	var links []domain.PDFLink
	for _, url := range urls {
		existing, err := s.pdfLinkStore.GetPDFLinkByURL(ctx, url)
		if err == nil && existing != nil {
			links = append(links, *existing)
			continue
		}

		link := domain.PDFLink{
			ID:          uuid.NewString(),
			ArticleID:   article.ID,
			URL:         url,
			Status:      domain.PDFDetected,
			HarvestedAt: time.Now(),
		}
		if err := s.pdfLinkStore.SavePDFLink(ctx, &link); err != nil {
			return nil, fmt.Errorf("save pdf link: %w", err)
		}
		links = append(links, link)
	}

	return links, nil
}

// DownloadPDFs fetches the detected PDFs for an article. Failed
// downloads are marked so they can be retried later.
func (s *HarvestService) DownloadPDFs(ctx context.Context, articleID string) ([]domain.PDFLink, error) {
	if s.pdfDownloader == nil || s.pdfLinkStore == nil {
		return nil, domain.ErrNotImplemented
	}

	links, err := s.pdfLinkStore.ListPDFLinks(ctx, articleID)
	if err != nil {
		return nil, err
	}

	dir, err := s.pdfDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create pdf dir: %w", err)
	}

	var attempted []domain.PDFLink
	for i := range links {
		link := links[i]
		if link.Status == domain.PDFDownloaded {
			attempted = append(attempted, link)
			continue
		}

		result, err := s.pdfDownloader.Download(ctx, link.URL, dir)
		if err != nil {
			logger.Warn("harvest: download %s: %v", link.URL, err)
			link.Status = domain.PDFFailed
		} else {
			link.Filename = result.Filename
			link.Size = result.Size
			link.SHA256 = result.SHA256
			link.Status = domain.PDFDownloaded
		}

		if err := s.pdfLinkStore.SavePDFLink(ctx, &link); err != nil {
			return nil, fmt.Errorf("save pdf link: %w", err)
		}
		attempted = append(attempted, link)
	}

	return attempted, nil
}

// pdfDir resolves the configured PDF directory, defaulting to
// ~/.carbonscore/pdfs.
func (s *HarvestService) pdfDir() (string, error) {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings.Harvest.PDFDir != "" {
			return settings.Harvest.PDFDir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".carbonscore", "pdfs"), nil
}

// ListArticles returns harvested articles for a theme.
func (s *HarvestService) ListArticles(ctx context.Context, theme string, limit int) ([]domain.Article, error) {
	if s.articleStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit <= 0 {
		limit = 50
	}
	return s.articleStore.ListArticles(ctx, theme, limit)
}
