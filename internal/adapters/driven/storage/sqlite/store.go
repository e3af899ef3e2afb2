package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.carbonscore/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".carbonscore", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// SyncStateStore returns a SyncStateStore interface backed by this store.
func (s *Store) SyncStateStore() driven.SyncStateStore {
	return &syncStateStore{store: s}
}

// ExclusionStore returns an ExclusionStore interface backed by this store.
func (s *Store) ExclusionStore() driven.ExclusionStore {
	return &exclusionStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// ArticleStore returns an ArticleStore interface backed by this store.
func (s *Store) ArticleStore() driven.ArticleStore {
	return &articleStore{store: s}
}

// PDFLinkStore returns a PDFLinkStore interface backed by this store.
func (s *Store) PDFLinkStore() driven.PDFLinkStore {
	return &pdfLinkStore{store: s}
}

// AssessmentStore returns an AssessmentStore interface backed by this store.
func (s *Store) AssessmentStore() driven.AssessmentStore {
	return &assessmentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	configJSON, err := json.Marshal(source.Config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	now := time.Now().UTC()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	source.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, type, name, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			name = excluded.name,
			config = excluded.config,
			updated_at = excluded.updated_at
	`, source.ID, source.Type, source.Name, string(configJSON),
		source.CreatedAt, source.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, type, name, config, created_at, updated_at
		FROM sources WHERE id = ?
	`, id)

	var source domain.Source
	var configJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&source.ID, &source.Type, &source.Name, &configJSON,
		&createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		source.UpdatedAt = updatedAt.Time
	}

	return &source, nil
}

// Delete removes a source.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, type, name, config, created_at, updated_at
		FROM sources
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		var source domain.Source
		var configJSON string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&source.ID, &source.Type, &source.Name, &configJSON,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}

		if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}

		if createdAt.Valid {
			source.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			source.UpdatedAt = updatedAt.Time
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_id, uri, title, content, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id,
			uri = excluded.uri,
			title = excluded.title,
			content = excluded.content,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, doc.ID, doc.SourceID, doc.URI, doc.Title, doc.Content,
		string(metadataJSON), doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// SaveChunks stores chunks for a document.
func (s *documentStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			content = excluded.content,
			position = excluded.position,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content,
			chunk.Position, embeddingBlob, string(metadataJSON)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, uri, title, content, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// GetDocumentByURI retrieves a document by source and URI.
func (s *documentStore) GetDocumentByURI(ctx context.Context, sourceID, uri string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, uri, title, content, metadata, created_at, updated_at
		FROM documents WHERE source_id = ? AND uri = ?
	`, sourceID, uri)

	return scanDocument(row)
}

// GetChunks retrieves all chunks for a document.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, embedding, metadata
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *documentStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, position, embedding, metadata
		FROM chunks WHERE id = ?
	`, id)

	return scanChunkRow(row)
}

// DeleteDocument removes a document and its chunks.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ListDocuments returns documents for a source.
func (s *documentStore) ListDocuments(ctx context.Context, sourceID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, uri, title, content, metadata, created_at, updated_at
		FROM documents WHERE source_id = ?
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// CountDocuments returns the number of documents for a source.
func (s *documentStore) CountDocuments(ctx context.Context, sourceID string) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE source_id = ?", sourceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// ==================== Sync State Store ====================

// syncStateStore implements driven.SyncStateStore.
type syncStateStore struct {
	store *Store
}

var _ driven.SyncStateStore = (*syncStateStore)(nil)

// Save stores or updates sync state.
func (s *syncStateStore) Save(ctx context.Context, state domain.SyncState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_states (source_id, cursor, last_sync)
		VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			cursor = excluded.cursor,
			last_sync = excluded.last_sync
	`, state.SourceID, state.Cursor, state.LastSync)

	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}

// Get retrieves sync state for a source.
func (s *syncStateStore) Get(ctx context.Context, sourceID string) (*domain.SyncState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT source_id, cursor, last_sync
		FROM sync_states WHERE source_id = ?
	`, sourceID)

	var state domain.SyncState
	var lastSync sql.NullTime
	if err := row.Scan(&state.SourceID, &state.Cursor, &lastSync); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning sync state: %w", err)
	}

	if lastSync.Valid {
		state.LastSync = lastSync.Time
	}

	return &state, nil
}

// Delete removes sync state for a source.
func (s *syncStateStore) Delete(ctx context.Context, sourceID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sync_states WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting sync state: %w", err)
	}
	return nil
}

// ==================== Exclusion Store ====================

// exclusionStore implements driven.ExclusionStore.
type exclusionStore struct {
	store *Store
}

var _ driven.ExclusionStore = (*exclusionStore)(nil)

// Add creates a new exclusion.
func (s *exclusionStore) Add(ctx context.Context, exclusion *domain.Exclusion) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO exclusions (id, source_id, document_id, uri, reason, excluded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, exclusion.ID, exclusion.SourceID, exclusion.DocumentID, exclusion.URI, exclusion.Reason, exclusion.ExcludedAt)

	if err != nil {
		return fmt.Errorf("adding exclusion: %w", err)
	}
	return nil
}

// Remove deletes an exclusion by ID.
func (s *exclusionStore) Remove(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM exclusions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("removing exclusion: %w", err)
	}
	return nil
}

// GetBySourceID returns all exclusions for a source.
func (s *exclusionStore) GetBySourceID(ctx context.Context, sourceID string) ([]domain.Exclusion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, document_id, uri, reason, excluded_at
		FROM exclusions WHERE source_id = ?
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// IsExcluded checks if a URI is excluded for a source.
func (s *exclusionStore) IsExcluded(ctx context.Context, sourceID, uri string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM exclusions WHERE source_id = ? AND uri = ?
	`, sourceID, uri).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking exclusion: %w", err)
	}
	return count > 0, nil
}

// List returns all exclusions.
func (s *exclusionStore) List(ctx context.Context) ([]domain.Exclusion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, document_id, uri, reason, excluded_at
		FROM exclusions
	`)
	if err != nil {
		return nil, fmt.Errorf("querying exclusions: %w", err)
	}
	defer rows.Close()

	return scanExclusions(rows)
}

// ==================== Article Store ====================

// articleStore implements driven.ArticleStore.
type articleStore struct {
	store *Store
}

var _ driven.ArticleStore = (*articleStore)(nil)

// SaveArticle stores or updates an article, keyed by URL. A re-saved
// article is refreshed and reactivated but keeps its original ID.
func (s *articleStore) SaveArticle(ctx context.Context, article *domain.Article) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO articles (id, theme, title, url, summary, published, fetched_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			theme = excluded.theme,
			title = excluded.title,
			summary = excluded.summary,
			published = excluded.published,
			fetched_at = excluded.fetched_at,
			is_active = excluded.is_active
	`, article.ID, article.Theme, article.Title, article.URL,
		article.Summary, article.Published, article.FetchedAt, article.Active)

	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	return nil
}

// DeactivateTheme marks every article of a theme inactive.
func (s *articleStore) DeactivateTheme(ctx context.Context, theme string) error {
	_, err := s.store.db.ExecContext(ctx,
		"UPDATE articles SET is_active = 0 WHERE theme = ?", theme)
	if err != nil {
		return fmt.Errorf("deactivating theme: %w", err)
	}
	return nil
}

// GetArticle retrieves an article by ID.
func (s *articleStore) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, theme, title, url, summary, published, fetched_at, is_active
		FROM articles WHERE id = ?
	`, id)

	return scanArticle(row)
}

// GetArticleByURL retrieves an article by its publication URL.
func (s *articleStore) GetArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, theme, title, url, summary, published, fetched_at, is_active
		FROM articles WHERE url = ?
	`, url)

	return scanArticle(row)
}

// ListArticles returns articles for a theme, most recent first.
func (s *articleStore) ListArticles(ctx context.Context, theme string, limit int) ([]domain.Article, error) {
	query := `
		SELECT id, theme, title, url, summary, published, fetched_at, is_active
		FROM articles
	`
	args := []any{}
	if theme != "" {
		query += " WHERE theme = ?"
		args = append(args, theme)
	}
	query += " ORDER BY published DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Article
		var published, fetchedAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.Theme, &a.Title, &a.URL, &a.Summary,
			&published, &fetchedAt, &a.Active); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if published.Valid {
			a.Published = published.Time
		}
		if fetchedAt.Valid {
			a.FetchedAt = fetchedAt.Time
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}

	return articles, nil
}

// CountArticles returns the number of stored articles per theme.
func (s *articleStore) CountArticles(ctx context.Context) (map[string]int, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT theme, COUNT(*) FROM articles GROUP BY theme
	`)
	if err != nil {
		return nil, fmt.Errorf("counting articles: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var theme string
		var count int
		if err := rows.Scan(&theme, &count); err != nil {
			return nil, fmt.Errorf("scanning article count: %w", err)
		}
		counts[theme] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating article counts: %w", err)
	}

	return counts, nil
}

// scanArticle scans a single article row.
func scanArticle(row *sql.Row) (*domain.Article, error) {
	var a domain.Article
	var published, fetchedAt sql.NullTime

	if err := row.Scan(&a.ID, &a.Theme, &a.Title, &a.URL, &a.Summary,
		&published, &fetchedAt, &a.Active); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}

	if published.Valid {
		a.Published = published.Time
	}
	if fetchedAt.Valid {
		a.FetchedAt = fetchedAt.Time
	}

	return &a, nil
}

// ==================== PDF Link Store ====================

// pdfLinkStore implements driven.PDFLinkStore.
type pdfLinkStore struct {
	store *Store
}

var _ driven.PDFLinkStore = (*pdfLinkStore)(nil)

// SavePDFLink stores or updates a link.
func (s *pdfLinkStore) SavePDFLink(ctx context.Context, link *domain.PDFLink) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pdf_links (id, article_id, url, filename, size, sha256, status, harvested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			filename = excluded.filename,
			size = excluded.size,
			sha256 = excluded.sha256,
			status = excluded.status
	`, link.ID, link.ArticleID, link.URL, link.Filename, link.Size,
		link.SHA256, string(link.Status), link.HarvestedAt)

	if err != nil {
		return fmt.Errorf("saving pdf link: %w", err)
	}
	return nil
}

// GetPDFLink retrieves a link by ID.
func (s *pdfLinkStore) GetPDFLink(ctx context.Context, id string) (*domain.PDFLink, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, article_id, url, filename, size, sha256, status, harvested_at
		FROM pdf_links WHERE id = ?
	`, id)

	return scanPDFLink(row)
}

// GetPDFLinkByURL retrieves a link by its URL.
func (s *pdfLinkStore) GetPDFLinkByURL(ctx context.Context, url string) (*domain.PDFLink, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, article_id, url, filename, size, sha256, status, harvested_at
		FROM pdf_links WHERE url = ?
	`, url)

	return scanPDFLink(row)
}

// ListPDFLinks returns links for an article.
func (s *pdfLinkStore) ListPDFLinks(ctx context.Context, articleID string) ([]domain.PDFLink, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, article_id, url, filename, size, sha256, status, harvested_at
		FROM pdf_links WHERE article_id = ?
		ORDER BY url
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("querying pdf links: %w", err)
	}
	defer rows.Close()

	return scanPDFLinks(rows)
}

// ListPDFLinksByStatus returns links in a given lifecycle state.
func (s *pdfLinkStore) ListPDFLinksByStatus(
	ctx context.Context, status domain.PDFStatus, limit int,
) ([]domain.PDFLink, error) {
	query := `
		SELECT id, article_id, url, filename, size, sha256, status, harvested_at
		FROM pdf_links WHERE status = ?
		ORDER BY harvested_at
	`
	args := []any{string(status)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pdf links by status: %w", err)
	}
	defer rows.Close()

	return scanPDFLinks(rows)
}

// scanPDFLink scans a single pdf link row.
func scanPDFLink(row *sql.Row) (*domain.PDFLink, error) {
	var link domain.PDFLink
	var status string
	var harvestedAt sql.NullTime

	if err := row.Scan(&link.ID, &link.ArticleID, &link.URL, &link.Filename,
		&link.Size, &link.SHA256, &status, &harvestedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning pdf link: %w", err)
	}

	link.Status = domain.PDFStatus(status)
	if harvestedAt.Valid {
		link.HarvestedAt = harvestedAt.Time
	}

	return &link, nil
}

// scanPDFLinks scans multiple pdf link rows.
func scanPDFLinks(rows *sql.Rows) ([]domain.PDFLink, error) {
	var links []domain.PDFLink //nolint:prealloc // size unknown from query
	for rows.Next() {
		var link domain.PDFLink
		var status string
		var harvestedAt sql.NullTime
		if err := rows.Scan(&link.ID, &link.ArticleID, &link.URL, &link.Filename,
			&link.Size, &link.SHA256, &status, &harvestedAt); err != nil {
			return nil, fmt.Errorf("scanning pdf link: %w", err)
		}
		link.Status = domain.PDFStatus(status)
		if harvestedAt.Valid {
			link.HarvestedAt = harvestedAt.Time
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pdf links: %w", err)
	}

	return links, nil
}

// ==================== Assessment Store ====================

// assessmentStore implements driven.AssessmentStore.
type assessmentStore struct {
	store *Store
}

var _ driven.AssessmentStore = (*assessmentStore)(nil)

// Save stores an assessment. The activity entries and per-category
// breakdown are stored as JSON; totals are stored in kg and the tonne
// views recomputed on read.
func (s *assessmentStore) Save(ctx context.Context, assessment *domain.Assessment) error {
	if assessment.ID == "" {
		return domain.ErrInvalidInput
	}

	entriesJSON, err := json.Marshal(assessment.Entries)
	if err != nil {
		return fmt.Errorf("marshalling entries: %w", err)
	}
	resultsJSON, err := json.Marshal(assessment.Results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO assessments (id, name, entries, results, total_kg, biogenic_kg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			entries = excluded.entries,
			results = excluded.results,
			total_kg = excluded.total_kg,
			biogenic_kg = excluded.biogenic_kg
	`, assessment.ID, assessment.Name, string(entriesJSON), string(resultsJSON),
		assessment.TotalKg, assessment.BiogenicKg, assessment.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving assessment: %w", err)
	}
	return nil
}

// Get retrieves an assessment by ID.
func (s *assessmentStore) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, entries, results, total_kg, biogenic_kg, created_at
		FROM assessments WHERE id = ?
	`, id)

	var a domain.Assessment
	var entriesJSON, resultsJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&a.ID, &a.Name, &entriesJSON, &resultsJSON, &a.TotalKg,
		&a.BiogenicKg, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}

	if err := json.Unmarshal([]byte(entriesJSON), &a.Entries); err != nil {
		return nil, fmt.Errorf("unmarshaling entries: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &a.Results); err != nil {
		return nil, fmt.Errorf("unmarshaling results: %w", err)
	}
	a.TotalTonnes = a.TotalKg / 1000.0
	a.BiogenicTonnes = a.BiogenicKg / 1000.0
	if createdAt.Valid {
		a.CreatedAt = createdAt.Time
	}

	return &a, nil
}

// List returns assessments, most recent first.
func (s *assessmentStore) List(ctx context.Context, limit int) ([]domain.Assessment, error) {
	query := `
		SELECT id, name, entries, results, total_kg, biogenic_kg, created_at
		FROM assessments
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Assessment
		var entriesJSON, resultsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.Name, &entriesJSON, &resultsJSON, &a.TotalKg,
			&a.BiogenicKg, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		if err := json.Unmarshal([]byte(entriesJSON), &a.Entries); err != nil {
			return nil, fmt.Errorf("unmarshaling entries: %w", err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &a.Results); err != nil {
			return nil, fmt.Errorf("unmarshaling results: %w", err)
		}
		a.TotalTonnes = a.TotalKg / 1000.0
		a.BiogenicTonnes = a.BiogenicKg / 1000.0
		if createdAt.Valid {
			a.CreatedAt = createdAt.Time
		}
		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessments: %w", err)
	}

	return assessments, nil
}

// Delete removes an assessment.
func (s *assessmentStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM assessments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string

	if err := row.Scan(&doc.ID, &doc.SourceID, &doc.URI, &doc.Title, &doc.Content,
		&metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string

	if err := rows.Scan(&doc.ID, &doc.SourceID, &doc.URI, &doc.Title, &doc.Content,
		&metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var metadataJSON string

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
		&chunk.Position, &embeddingBlob, &metadataJSON); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}

// scanChunkRow scans a chunk from *sql.Row.
func scanChunkRow(row *sql.Row) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var metadataJSON string

	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
		&chunk.Position, &embeddingBlob, &metadataJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}

// scanExclusions scans multiple exclusion rows.
func scanExclusions(rows *sql.Rows) ([]domain.Exclusion, error) {
	var exclusions []domain.Exclusion //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.Exclusion
		if err := rows.Scan(&e.ID, &e.SourceID, &e.DocumentID, &e.URI, &e.Reason, &e.ExcludedAt); err != nil {
			return nil, fmt.Errorf("scanning exclusion: %w", err)
		}
		exclusions = append(exclusions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exclusions: %w", err)
	}

	return exclusions, nil
}
