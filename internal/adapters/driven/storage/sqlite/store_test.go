package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

// createTestSource creates a source to satisfy foreign key constraints.
func createTestSource(t *testing.T, store *Store, sourceID string) {
	t.Helper()
	source := domain.Source{
		ID:     sourceID,
		Type:   "ademe",
		Name:   "Librairie ADEME " + sourceID,
		Config: map[string]string{"themes": "Énergies"},
	}
	require.NoError(t, store.SourceStore().Save(context.Background(), source))
}

// createTestDocument creates a document to satisfy foreign key constraints.
func createTestDocument(t *testing.T, store *Store, docID, sourceID string) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:        docID,
		SourceID:  sourceID,
		URI:       "https://librairie.ademe.fr/" + docID,
		Title:     "Publication " + docID,
		Metadata:  map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.DocumentStore().SaveDocument(context.Background(), doc))
}

func TestNewStore_CreatesDatabaseAndMigrates(t *testing.T) {
	store := setupTestStore(t)

	assert.NotEmpty(t, store.Path())

	// Migrations must be idempotent across reopen.
	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, 1)
}

func TestSourceStore_CRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sources := store.SourceStore()

	source := domain.Source{
		ID:     "src-1",
		Type:   "ademe",
		Name:   "Librairie ADEME",
		Config: map[string]string{"themes": "Énergies,Air", "download_pdfs": "true"},
	}
	require.NoError(t, sources.Save(ctx, source))

	got, err := sources.Get(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, "ademe", got.Type)
	assert.Equal(t, "Énergies,Air", got.Config["themes"])
	assert.False(t, got.CreatedAt.IsZero())

	// Upsert preserves identity.
	source.Name = "Librairie ADEME (renamed)"
	require.NoError(t, sources.Save(ctx, source))

	list, err := sources.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Librairie ADEME (renamed)", list[0].Name)

	require.NoError(t, sources.Delete(ctx, "src-1"))
	_, err = sources.Get(ctx, "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_SaveAndGetByURI(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSource(t, store, "src-1")
	docs := store.DocumentStore()

	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:       "doc-1",
		SourceID: "src-1",
		URI:      "https://librairie.ademe.fr/energies/scenarios-2050",
		Title:    "Scénarios de transition énergétique 2050",
		Content:  "La neutralité carbone en 2050 suppose une baisse de la demande.",
		Metadata: map[string]any{
			"theme": "Énergies",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, "Énergies", got.Metadata["theme"])

	byURI, err := docs.GetDocumentByURI(ctx, "src-1", doc.URI)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", byURI.ID)

	// Same URI under a different source does not match.
	_, err = docs.GetDocumentByURI(ctx, "src-2", doc.URI)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err := docs.CountDocuments(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDocumentStore_ChunksRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSource(t, store, "src-1")
	createTestDocument(t, store, "doc-1", "src-1")
	docs := store.DocumentStore()

	chunks := []domain.Chunk{
		{
			ID:         "chunk-1",
			DocumentID: "doc-1",
			Content:    "Première section du rapport.",
			Position:   0,
			Embedding:  []float32{0.1, -0.5, 0.9},
			Metadata:   map[string]any{"page": "1"},
		},
		{
			ID:         "chunk-2",
			DocumentID: "doc-1",
			Content:    "Seconde section du rapport.",
			Position:   1,
		},
	}
	require.NoError(t, docs.SaveChunks(ctx, chunks))

	got, err := docs.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "chunk-1", got[0].ID)
	assert.Equal(t, []float32{0.1, -0.5, 0.9}, got[0].Embedding)
	assert.Nil(t, got[1].Embedding)

	single, err := docs.GetChunk(ctx, "chunk-2")
	require.NoError(t, err)
	assert.Equal(t, 1, single.Position)
}

func TestDocumentStore_DeleteCascadesChunks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSource(t, store, "src-1")
	createTestDocument(t, store, "doc-1", "src-1")
	docs := store.DocumentStore()

	require.NoError(t, docs.SaveChunks(ctx, []domain.Chunk{
		{ID: "chunk-1", DocumentID: "doc-1", Content: "texte", Position: 0},
	}))

	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

	_, err := docs.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = docs.GetChunk(ctx, "chunk-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListDocuments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSource(t, store, "src-1")
	createTestSource(t, store, "src-2")

	for i := 0; i < 3; i++ {
		createTestDocument(t, store, fmt.Sprintf("doc-%d", i), "src-1")
	}
	createTestDocument(t, store, "doc-other", "src-2")

	list, err := store.DocumentStore().ListDocuments(ctx, "src-1")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSyncStateStore_SaveGetDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	states := store.SyncStateStore()

	state := domain.SyncState{
		SourceID: "src-1",
		Cursor:   "eyJwYWdlIjoyfQ==",
		LastSync: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, states.Save(ctx, state))

	got, err := states.Get(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, state.Cursor, got.Cursor)

	require.NoError(t, states.Delete(ctx, "src-1"))
	_, err = states.Get(ctx, "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExclusionStore_IsExcluded(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	exclusions := store.ExclusionStore()

	require.NoError(t, exclusions.Add(ctx, &domain.Exclusion{
		ID:         "excl-1",
		SourceID:   "src-1",
		URI:        "https://librairie.ademe.fr/duplicate",
		Reason:     "duplicate publication",
		ExcludedAt: time.Now().UTC(),
	}))

	excluded, err := exclusions.IsExcluded(ctx, "src-1", "https://librairie.ademe.fr/duplicate")
	require.NoError(t, err)
	assert.True(t, excluded)

	excluded, err = exclusions.IsExcluded(ctx, "src-2", "https://librairie.ademe.fr/duplicate")
	require.NoError(t, err)
	assert.False(t, excluded)

	bySource, err := exclusions.GetBySourceID(ctx, "src-1")
	require.NoError(t, err)
	assert.Len(t, bySource, 1)

	require.NoError(t, exclusions.Remove(ctx, "excl-1"))
	all, err := exclusions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestArticleStore_SaveListCount(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	articles := store.ArticleStore()

	now := time.Now().UTC().Truncate(time.Second)
	for i, theme := range []string{"Énergies", "Énergies", "Air"} {
		require.NoError(t, articles.SaveArticle(ctx, &domain.Article{
			ID:        fmt.Sprintf("art-%d", i),
			Theme:     theme,
			Title:     fmt.Sprintf("Publication %d", i),
			URL:       fmt.Sprintf("https://librairie.ademe.fr/art-%d", i),
			Published: now.Add(time.Duration(i) * time.Hour),
			FetchedAt: now,
		}))
	}

	byTheme, err := articles.ListArticles(ctx, "Énergies", 10)
	require.NoError(t, err)
	require.Len(t, byTheme, 2)
	// Most recent first.
	assert.Equal(t, "art-1", byTheme[0].ID)

	all, err := articles.ListArticles(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	counts, err := articles.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["Énergies"])
	assert.Equal(t, 1, counts["Air"])
}

func TestArticleStore_UpsertByURL(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	articles := store.ArticleStore()

	article := &domain.Article{
		ID:    "art-1",
		Theme: "Air",
		Title: "Qualité de l'air intérieur",
		URL:   "https://librairie.ademe.fr/air/qai",
	}
	require.NoError(t, articles.SaveArticle(ctx, article))

	// A refetch of the same feed entry updates in place.
	article.Title = "Qualité de l'air intérieur (mise à jour)"
	require.NoError(t, articles.SaveArticle(ctx, article))

	got, err := articles.GetArticleByURL(ctx, article.URL)
	require.NoError(t, err)
	assert.Equal(t, "art-1", got.ID)
	assert.Equal(t, "Qualité de l'air intérieur (mise à jour)", got.Title)
}

func TestArticleStore_DeactivateTheme(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	articles := store.ArticleStore()

	article := &domain.Article{
		ID:     "art-1",
		Theme:  "Air",
		Title:  "Qualité de l'air intérieur",
		URL:    "https://librairie.ademe.fr/air/qai",
		Active: true,
	}
	require.NoError(t, articles.SaveArticle(ctx, article))

	require.NoError(t, articles.DeactivateTheme(ctx, "Air"))
	got, err := articles.GetArticleByURL(ctx, article.URL)
	require.NoError(t, err)
	assert.False(t, got.Active)

	// A refetch that still carries the article reactivates it.
	require.NoError(t, articles.SaveArticle(ctx, article))
	got, err = articles.GetArticleByURL(ctx, article.URL)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestPDFLinkStore_StatusLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	links := store.PDFLinkStore()

	link := &domain.PDFLink{
		ID:          "pdf-1",
		ArticleID:   "art-1",
		URL:         "https://librairie.ademe.fr/doc.pdf",
		Status:      domain.PDFDetected,
		HarvestedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, links.SavePDFLink(ctx, link))

	detected, err := links.ListPDFLinksByStatus(ctx, domain.PDFDetected, 10)
	require.NoError(t, err)
	require.Len(t, detected, 1)

	link.Status = domain.PDFDownloaded
	link.Filename = "doc.pdf"
	link.Size = 204800
	link.SHA256 = "d6a1f9"
	require.NoError(t, links.SavePDFLink(ctx, link))

	got, err := links.GetPDFLinkByURL(ctx, link.URL)
	require.NoError(t, err)
	assert.Equal(t, domain.PDFDownloaded, got.Status)
	assert.Equal(t, int64(204800), got.Size)

	detected, err = links.ListPDFLinksByStatus(ctx, domain.PDFDetected, 10)
	require.NoError(t, err)
	assert.Empty(t, detected)

	byArticle, err := links.ListPDFLinks(ctx, "art-1")
	require.NoError(t, err)
	assert.Len(t, byArticle, 1)
}

func TestAssessmentStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	assessments := store.AssessmentStore()

	assessment := &domain.Assessment{
		ID:   "asmt-1",
		Name: "Site de production Lyon",
		Entries: []domain.ActivityEntry{
			{Category: domain.CategoryFossil, Activity: "Gaz naturel", Quantity: 50000, Unit: "kWh"},
			{Category: domain.CategoryRefrigerant, Activity: "R-410A", Quantity: 1, Unit: "kg"},
		},
		Results: []domain.CategoryResult{
			{Category: domain.CategoryFossil, EmissionsKg: 12400, Entries: 2},
			{Category: domain.CategoryRefrigerant, EmissionsKg: 2088, Entries: 1},
		},
		TotalKg:    14488,
		BiogenicKg: 350,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, assessments.Save(ctx, assessment))

	got, err := assessments.Get(ctx, "asmt-1")
	require.NoError(t, err)
	require.Len(t, got.Results, 2)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Gaz naturel", got.Entries[0].Activity)
	assert.Equal(t, domain.CategoryFossil, got.Results[0].Category)
	assert.InDelta(t, 14488, got.TotalKg, 1e-9)
	assert.InDelta(t, 14.488, got.TotalTonnes, 1e-9)
	assert.InDelta(t, 0.35, got.BiogenicTonnes, 1e-9)

	require.NoError(t, assessments.Delete(ctx, "asmt-1"))
	_, err = assessments.Get(ctx, "asmt-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssessmentStore_ListMostRecentFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	assessments := store.AssessmentStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, assessments.Save(ctx, &domain.Assessment{ID: "old", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, assessments.Save(ctx, &domain.Assessment{ID: "new", CreatedAt: now}))

	list, err := assessments.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)

	limited, err := assessments.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestAssessmentStore_Save_RequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.AssessmentStore().Save(context.Background(), &domain.Assessment{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchEngine_IndexAndSearch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	engine := store.SearchEngine()

	chunks := []domain.Chunk{
		{ID: "chunk-1", Content: "La rénovation énergétique des bâtiments réduit les émissions."},
		{ID: "chunk-2", Content: "Le compostage des biodéchets en milieu urbain."},
		{ID: "chunk-3", Content: "Les émissions des bâtiments tertiaires restent élevées."},
	}
	for _, chunk := range chunks {
		require.NoError(t, engine.Index(ctx, chunk))
	}

	hits, err := engine.Search(ctx, "bâtiments émissions", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, hit := range hits {
		assert.Contains(t, []string{"chunk-1", "chunk-3"}, hit.ChunkID)
		assert.Greater(t, hit.Score, 0.0)
	}

	// Reindexing the same chunk must not duplicate it.
	require.NoError(t, engine.Index(ctx, chunks[0]))
	hits, err = engine.Search(ctx, "rénovation", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	require.NoError(t, engine.Delete(ctx, "chunk-1"))
	hits, err = engine.Search(ctx, "rénovation", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEngine_Search_EmptyQuery(t *testing.T) {
	store := setupTestStore(t)

	hits, err := store.SearchEngine().Search(context.Background(), "   ", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFTSQuery_QuotesTerms(t *testing.T) {
	assert.Equal(t, `"bilan" OR "carbone"`, ftsQuery("bilan carbone"))
	assert.Equal(t, `"NEAR(a"`, ftsQuery("NEAR(a"))
	assert.Equal(t, `"l'""air"""`, ftsQuery(`l'"air"`))
	assert.Empty(t, ftsQuery(""))
}

func TestVectorIndex_SearchOrdersBySimilarity(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	index := store.VectorIndex()

	require.NoError(t, index.Add(ctx, "chunk-1", []float32{1, 0, 0}))
	require.NoError(t, index.Add(ctx, "chunk-2", []float32{0.9, 0.1, 0}))
	require.NoError(t, index.Add(ctx, "chunk-3", []float32{0, 1, 0}))

	hits, err := index.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "chunk-1", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Equal(t, "chunk-2", hits[1].ChunkID)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestVectorIndex_RejectsDimensionMismatch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	index := store.VectorIndex()

	require.NoError(t, index.Add(ctx, "chunk-1", []float32{1, 0, 0}))

	err := index.Add(ctx, "chunk-2", []float32{1, 0})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Re-adding an indexed chunk with the right dimension still works.
	require.NoError(t, index.Add(ctx, "chunk-1", []float32{0, 1, 0}))
}

func TestVectorIndex_SearchSkipsStaleDimensions(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	index := store.VectorIndex()

	require.NoError(t, index.Add(ctx, "current", []float32{1, 0, 0}))

	// Leftover vector from a previous embedding model, written before
	// the index enforced dimensions.
	_, err := store.db.ExecContext(ctx,
		"INSERT INTO vectors (chunk_id, embedding) VALUES (?, ?)",
		"stale", float32SliceToBytes([]float32{1, 0}))
	require.NoError(t, err)

	hits, err := index.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "current", hits[0].ChunkID)
}

func TestVectorIndex_DeleteAndUpsert(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	index := store.VectorIndex()

	require.NoError(t, index.Add(ctx, "chunk-1", []float32{0, 1}))
	require.NoError(t, index.Add(ctx, "chunk-1", []float32{1, 0}))

	hits, err := index.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)

	require.NoError(t, index.Delete(ctx, "chunk-1"))
	hits, err = index.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	original := []float32{0.1, -2.5, 3.14159, 0}

	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	createTestSource(t, store, "src-1")
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.SourceStore().Get(context.Background(), "src-1")
	require.NoError(t, err)
	assert.Equal(t, "ademe", got.Type)
}
