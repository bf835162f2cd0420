package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(&config.ChromemConfig{InMemory: true}, "test-collection")
	require.NoError(t, err)
	return store
}

func chunkDoc(content, source, chunkID string) models.Document {
	return models.Document{
		Content: content,
		Metadata: map[string]string{
			models.MetaSource:  source,
			models.MetaChunkID: chunkID,
		},
	}
}

// unit vectors, so cosine similarity is exact and deterministic
var (
	vecA = []float32{1, 0, 0}
	vecB = []float32{0, 1, 0}
	vecC = []float32{0, 0, 1}
)

func TestChromemStore_AddBeforeReady(t *testing.T) {
	store := newTestStore(t)
	err := store.Add(context.Background(), []models.Document{chunkDoc("x", "a.pdf", "0")}, [][]float32{vecA})
	require.Error(t, err)

	var idxErr *models.IndexError
	assert.ErrorAs(t, err, &idxErr)
}

func TestChromemStore_SearchEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// unready collection: empty result, no error
	docs, err := store.Search(ctx, vecA, 4)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// ready but empty collection: same
	require.NoError(t, store.EnsureReady(ctx))
	docs, err = store.Search(ctx, vecA, 4)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestChromemStore_ExactMatchRanksFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureReady(ctx))

	docs := []models.Document{
		chunkDoc("alpha chunk", "doc.pdf", "0"),
		chunkDoc("beta chunk", "doc.pdf", "1"),
		chunkDoc("gamma chunk", "doc.pdf", "2"),
	}
	require.NoError(t, store.Add(ctx, docs, [][]float32{vecA, vecB, vecC}))

	results, err := store.Search(ctx, vecB, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "beta chunk", results[0].Content)
	assert.Equal(t, "1", results[0].Metadata[models.MetaChunkID])
}

func TestChromemStore_SearchClampsK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureReady(ctx))
	require.NoError(t, store.Add(ctx, []models.Document{chunkDoc("only one", "a.pdf", "0")}, [][]float32{vecA}))

	results, err := store.Search(ctx, vecA, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "only one", results[0].Content)
}

func TestChromemStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureReady(ctx))

	// clearing an empty collection reports zero
	removed, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	docs := []models.Document{
		chunkDoc("one", "a.pdf", "0"),
		chunkDoc("two", "a.pdf", "1"),
	}
	require.NoError(t, store.Add(ctx, docs, [][]float32{vecA, vecB}))

	removed, err = store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), removed)

	// still queryable afterwards, with zero records
	results, err := store.Search(ctx, vecA, 4)
	require.NoError(t, err)
	assert.Empty(t, results)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Records)
}

func TestChromemStore_Stats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "absent", stats.Status)

	require.NoError(t, store.EnsureReady(ctx))
	docs := []models.Document{
		chunkDoc("one", "a.pdf", "0"),
		chunkDoc("two", "a.pdf", "1"),
		chunkDoc("three", "a.pdf", "2"),
	}
	require.NoError(t, store.Add(ctx, docs, [][]float32{vecA, vecB, vecC}))

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.Records)
	assert.Equal(t, "ready", stats.Status)
}

func TestChromemStore_Drop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureReady(ctx))
	require.NoError(t, store.Add(ctx, []models.Document{chunkDoc("one", "a.pdf", "0")}, [][]float32{vecA}))

	require.NoError(t, store.Drop(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "absent", stats.Status)

	// EnsureReady recreates the collection from scratch
	require.NoError(t, store.EnsureReady(ctx))
	results, err := store.Search(ctx, vecA, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChromemStore_VectorCountMismatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureReady(ctx))

	err := store.Add(ctx, []models.Document{chunkDoc("one", "a.pdf", "0")}, nil)
	require.Error(t, err)
}
