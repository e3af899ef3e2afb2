package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// searchEngine implements driven.SearchEngine on top of an FTS5 virtual table.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// SearchEngine returns a SearchEngine interface backed by this store.
func (s *Store) SearchEngine() driven.SearchEngine {
	return &searchEngine{store: s}
}

// Index adds or updates a chunk in the search index.
// FTS5 has no upsert, so existing rows are removed first.
func (s *searchEngine) Index(ctx context.Context, chunk domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks_fts WHERE chunk_id = ?", chunk.ID); err != nil {
		return fmt.Errorf("removing stale index entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO chunks_fts (chunk_id, content) VALUES (?, ?)",
		chunk.ID, chunk.Content); err != nil {
		return fmt.Errorf("indexing chunk: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Delete removes a chunk from the search index.
func (s *searchEngine) Delete(ctx context.Context, chunkID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM chunks_fts WHERE chunk_id = ?", chunkID)
	if err != nil {
		return fmt.Errorf("deleting index entry: %w", err)
	}
	return nil
}

// Search performs a BM25 keyword search and returns chunk IDs with scores.
func (s *searchEngine) Search(ctx context.Context, query string, limit int) ([]driven.SearchHit, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chunk_id, bm25(chunks_fts)
		FROM chunks_fts
		WHERE chunks_fts MATCH ?
		ORDER BY bm25(chunks_fts)
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search index: %w", err)
	}
	defer rows.Close()

	var hits []driven.SearchHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.SearchHit
		var rank float64
		if err := rows.Scan(&hit.ChunkID, &rank); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		// bm25() returns lower-is-better negative values. Negate so
		// callers see higher-is-better scores.
		hit.Score = -rank
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search hits: %w", err)
	}

	return hits, nil
}

// Close is a no-op. The underlying connection is owned by the Store.
func (s *searchEngine) Close() error {
	return nil
}

// ftsQuery converts free-form user input into an FTS5 MATCH expression.
// Each term is quoted so operators and punctuation in the input cannot
// change the query semantics, and terms are OR-ed for recall.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ReplaceAll(term, `"`, `""`)
		quoted = append(quoted, `"`+term+`"`)
	}
	return strings.Join(quoted, " OR ")
}
