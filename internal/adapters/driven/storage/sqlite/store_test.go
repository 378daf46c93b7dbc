package sqlite

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// setupTestStore creates a store in a temporary directory.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "casedocs-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// fakeEmbedder maps each text to counts of the words "bail", "writ" and "appeal".
type fakeEmbedder struct {
	model string
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	lower := strings.ToLower(text)
	return []float32{
		float32(strings.Count(lower, "bail")),
		float32(strings.Count(lower, "writ")),
		float32(strings.Count(lower, "appeal")),
	}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) ModelName() string            { return f.model }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: "id_1", Text: "Bail application. Bail granted.", Metadata: map[string]string{domain.MetaCaseTitle: "A vs State"}},
		{ID: "id_2", Text: "Writ petition dismissed.", Metadata: map[string]string{domain.MetaCaseTitle: "B vs Union"}},
		{ID: "id_3", Text: "Criminal appeal admitted.", Metadata: map[string]string{domain.MetaCaseTitle: "C vs State"}},
	}
}

// ==================== Store Tests ====================

func TestNewStore_MigratesOnce(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)

	// Re-running is a no-op.
	require.NoError(t, store.migrate(migrations.FS))
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestFloat32Bytes_RoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3e-7}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

// ==================== Collection Tests ====================

func TestCollection_AddGetListCount(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	coll, err := store.CollectionStore(nil).GetOrCreate(ctx, "documents_db")
	require.NoError(t, err)
	assert.Equal(t, "documents_db", coll.Name())

	require.NoError(t, coll.Add(ctx, testDocs()))

	n, err := coll.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	docs, err := coll.Get(ctx, "id_3", "id_1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "id_3", docs[0].ID)
	assert.Equal(t, "A vs State", docs[1].Metadata[domain.MetaCaseTitle])

	all, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"id_1", "id_2", "id_3"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestCollection_GetUnknown(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	coll, err := store.CollectionStore(nil).GetOrCreate(ctx, "c")
	require.NoError(t, err)

	_, err = coll.Get(ctx, "id_9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollection_AddDuplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	coll, err := store.CollectionStore(nil).GetOrCreate(ctx, "c")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, testDocs()[:1]))

	err = coll.Add(ctx, testDocs()[:1])
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	dup := []domain.Document{{ID: "x", Text: "a"}, {ID: "x", Text: "b"}}
	assert.ErrorIs(t, coll.Add(ctx, dup), domain.ErrAlreadyExists)

	n, err := coll.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollection_ReopenKeepsDocuments(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cs := store.CollectionStore(nil)

	coll, err := cs.GetOrCreate(ctx, "c")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, testDocs()))

	again, err := cs.GetOrCreate(ctx, "c")
	require.NoError(t, err)
	n, err := again.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCollectionStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	cs := store.CollectionStore(nil)

	coll, err := cs.GetOrCreate(ctx, "c")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, testDocs()))

	require.NoError(t, cs.Delete(ctx, "c"))
	assert.ErrorIs(t, cs.Delete(ctx, "c"), domain.ErrNotFound)

	fresh, err := cs.GetOrCreate(ctx, "c")
	require.NoError(t, err)
	n, err := fresh.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionStore_RequiresName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.CollectionStore(nil).GetOrCreate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCollection_QueryKeyword(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	coll, err := store.CollectionStore(nil).GetOrCreate(ctx, "c")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, testDocs()))

	results, err := coll.Query(ctx, "writ petition", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "id_2", results[0].Document.ID)

	results, err = coll.Query(ctx, "state", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCollection_QueryVector(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	emb := &fakeEmbedder{model: "nomic-embed-text"}
	coll, err := store.CollectionStore(emb).GetOrCreate(ctx, "c")
	require.NoError(t, err)
	require.NoError(t, coll.Add(ctx, testDocs()))

	results, err := coll.Query(ctx, "appeal", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "id_3", results[0].Document.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}

func TestCollection_ModelMismatchFallsBackToKeywords(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first, err := store.CollectionStore(&fakeEmbedder{model: "m1"}).GetOrCreate(ctx, "c")
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, testDocs()))

	other := &fakeEmbedder{model: "m2"}
	second, err := store.CollectionStore(other).GetOrCreate(ctx, "c")
	require.NoError(t, err)

	results, err := second.Query(ctx, "writ", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "id_2", results[0].Document.ID)
	assert.Zero(t, other.calls)
}

func TestCollection_EmbeddingFailureStoresWithoutVectors(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	emb := &fakeEmbedder{model: "m", err: errors.New("down")}
	coll, err := store.CollectionStore(emb).GetOrCreate(ctx, "c")
	require.NoError(t, err)

	require.NoError(t, coll.Add(ctx, testDocs()))

	n, err := coll.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var vectors int
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*) FROM documents WHERE collection = 'c' AND COALESCE(length(embedding), 0) > 0").Scan(&vectors))
	assert.Zero(t, vectors)

	results, err := coll.Query(ctx, "writ", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "id_2", results[0].Document.ID)

	emb.err = nil
	require.NoError(t, coll.Add(ctx, []domain.Document{{ID: "id_4", Text: "Bail cancelled."}}))
	results, err = coll.Query(ctx, "writ", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "id_2", results[0].Document.ID, "documents stored without vectors stay reachable by keyword")
}
