package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// vectorIndex implements driven.VectorIndex with a brute-force cosine scan
// over float32 vectors stored as little-endian blobs. Corpus sizes here are
// tens of thousands of chunks at most, where a linear scan stays well under
// interactive latency.
type vectorIndex struct {
	store *Store
}

var _ driven.VectorIndex = (*vectorIndex)(nil)

// VectorIndex returns a VectorIndex interface backed by this store.
func (s *Store) VectorIndex() driven.VectorIndex {
	return &vectorIndex{store: s}
}

// Add inserts or replaces the vector for the given chunk ID. A vector
// whose dimension differs from the ones already indexed is rejected so
// the index never mixes embedding models.
func (v *vectorIndex) Add(ctx context.Context, chunkID string, embedding []float32) error {
	if len(embedding) == 0 {
		return nil
	}

	var blobLen int
	err := v.store.db.QueryRowContext(ctx,
		"SELECT length(embedding) FROM vectors WHERE chunk_id != ? LIMIT 1", chunkID,
	).Scan(&blobLen)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("checking vector dimension: %w", err)
	}
	if err == nil && blobLen != len(embedding)*4 {
		return fmt.Errorf("%w: vector has %d dimensions, index has %d",
			domain.ErrInvalidInput, len(embedding), blobLen/4)
	}

	_, err = v.store.db.ExecContext(ctx, `
		INSERT INTO vectors (chunk_id, embedding)
		VALUES (?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET embedding = excluded.embedding
	`, chunkID, float32SliceToBytes(embedding))

	if err != nil {
		return fmt.Errorf("adding vector: %w", err)
	}
	return nil
}

// Delete removes a vector from the index.
func (v *vectorIndex) Delete(ctx context.Context, chunkID string) error {
	_, err := v.store.db.ExecContext(ctx, "DELETE FROM vectors WHERE chunk_id = ?", chunkID)
	if err != nil {
		return fmt.Errorf("deleting vector: %w", err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector by cosine similarity.
func (v *vectorIndex) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) == 0 || k <= 0 {
		return nil, nil
	}

	rows, err := v.store.db.QueryContext(ctx, "SELECT chunk_id, embedding FROM vectors")
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		var chunkID string
		var blob []byte
		if err := rows.Scan(&chunkID, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}

		embedding := bytesToFloat32Slice(blob)
		if len(embedding) != len(query) {
			continue // Dimension mismatch, e.g. after an embedding model change
		}

		hits = append(hits, driven.VectorHit{
			ChunkID:    chunkID,
			Similarity: cosineSimilarity(query, embedding),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Close is a no-op. The underlying connection is owned by the Store.
func (v *vectorIndex) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity between two vectors of
// equal length. Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
