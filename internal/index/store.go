package index

import (
	"context"
	"fmt"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// Store owns the lifecycle of one named vector collection.
type Store interface {
	// EnsureReady creates the collection if it does not exist and
	// blocks until it accepts writes, up to the configured timeout.
	// No write may be issued before EnsureReady has returned nil.
	EnsureReady(ctx context.Context) error

	// Add upserts the documents with their embedding vectors. The
	// write is acknowledged: once Add returns nil the records are
	// visible to Search.
	Add(ctx context.Context, docs []models.Document, vectors [][]float32) error

	// Search returns up to k stored documents most similar to vector,
	// best first. An empty or not-yet-created collection yields an
	// empty slice, never an error.
	Search(ctx context.Context, vector []float32, k int) ([]models.Document, error)

	// Clear removes every record from the collection without deleting
	// the collection itself and reports how many were removed.
	// Clearing an empty collection succeeds with zero.
	Clear(ctx context.Context) (uint64, error)

	// Drop deletes the collection entirely. EnsureReady must run
	// again before further use.
	Drop(ctx context.Context) error

	// Stats reports the current record count and collection status.
	Stats(ctx context.Context) (models.IndexStats, error)

	Close() error
}

// NewStore builds the configured backend.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreQdrant:
		return NewQdrantStore(&cfg.Qdrant, cfg.RAG.Collection, config.VectorSize, cfg.RAG.ReadyTimeout())
	case config.StoreChromem:
		return NewChromemStore(&cfg.Chromem, cfg.RAG.Collection)
	case config.StorePostgres:
		return NewPostgresStore(&cfg.Postgres, cfg.RAG.Collection)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store)
	}
}
