package retriever

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"

	"github.com/ashok49473/DocuMind-AI/internal/index"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// Retriever embeds a query with the shared embedder and asks the store
// for the nearest stored chunks.
type Retriever struct {
	embedder embeddings.Embedder
	store    index.Store
	topK     int
}

func New(embedder embeddings.Embedder, store index.Store, topK int) *Retriever {
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve returns up to k documents most similar to query, best
// first. k <= 0 falls back to the configured default. An empty or
// unready collection produces an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]models.Document, error) {
	if k <= 0 {
		k = r.topK
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &models.GenerationError{Err: err}
	}

	return r.store.Search(ctx, vector, k)
}
