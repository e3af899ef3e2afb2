package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure the stores implement their interfaces.
var (
	_ driven.ArticleStore = (*ArticleStore)(nil)
	_ driven.PDFLinkStore = (*PDFLinkStore)(nil)
)

// ArticleStore is an in-memory implementation of driven.ArticleStore.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles: make(map[string]domain.Article),
	}
}

// SaveArticle stores or updates an article, keyed by URL.
func (s *ArticleStore) SaveArticle(_ context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.articles {
		if s.articles[id].URL == article.URL && id != article.ID {
			delete(s.articles, id)
			break
		}
	}
	s.articles[article.ID] = *article
	return nil
}

// DeactivateTheme marks every article of a theme inactive.
func (s *ArticleStore) DeactivateTheme(_ context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.articles {
		if article := s.articles[id]; article.Theme == theme {
			article.Active = false
			s.articles[id] = article
		}
	}
	return nil
}

// GetArticle retrieves an article by ID.
func (s *ArticleStore) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &article, nil
}

// GetArticleByURL retrieves an article by its publication URL.
func (s *ArticleStore) GetArticleByURL(_ context.Context, url string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.articles {
		article := s.articles[id]
		if article.URL == url {
			return &article, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListArticles returns articles for a theme, most recent first.
func (s *ArticleStore) ListArticles(_ context.Context, theme string, limit int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Article, 0)
	for id := range s.articles {
		article := s.articles[id]
		if theme == "" || article.Theme == theme {
			result = append(result, article)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Published.After(result[j].Published)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CountArticles returns the number of stored articles per theme.
func (s *ArticleStore) CountArticles(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for id := range s.articles {
		counts[s.articles[id].Theme]++
	}
	return counts, nil
}

// PDFLinkStore is an in-memory implementation of driven.PDFLinkStore.
type PDFLinkStore struct {
	mu    sync.RWMutex
	links map[string]domain.PDFLink
}

// NewPDFLinkStore creates a new in-memory PDF link store.
func NewPDFLinkStore() *PDFLinkStore {
	return &PDFLinkStore{
		links: make(map[string]domain.PDFLink),
	}
}

// SavePDFLink stores or updates a link.
func (s *PDFLinkStore) SavePDFLink(_ context.Context, link *domain.PDFLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link.ID] = *link
	return nil
}

// GetPDFLink retrieves a link by ID.
func (s *PDFLinkStore) GetPDFLink(_ context.Context, id string) (*domain.PDFLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &link, nil
}

// GetPDFLinkByURL retrieves a link by its URL.
func (s *PDFLinkStore) GetPDFLinkByURL(_ context.Context, url string) (*domain.PDFLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.links {
		link := s.links[id]
		if link.URL == url {
			return &link, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListPDFLinks returns links for an article.
func (s *PDFLinkStore) ListPDFLinks(_ context.Context, articleID string) ([]domain.PDFLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PDFLink, 0)
	for id := range s.links {
		link := s.links[id]
		if link.ArticleID == articleID {
			result = append(result, link)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].URL < result[j].URL
	})
	return result, nil
}

// ListPDFLinksByStatus returns links in a given lifecycle state.
func (s *PDFLinkStore) ListPDFLinksByStatus(
	_ context.Context, status domain.PDFStatus, limit int,
) ([]domain.PDFLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PDFLink, 0)
	for id := range s.links {
		link := s.links[id]
		if link.Status == status {
			result = append(result, link)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].HarvestedAt.Before(result[j].HarvestedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
