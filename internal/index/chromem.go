package index

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

const chromemCompress = false

// ChromemStore keeps the collection in an embedded chromem-go database,
// persisted on disk unless configured in-memory. Useful for local runs
// and as the real backend in tests.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
}

func NewChromemStore(cfg *config.ChromemConfig, collection string) (*ChromemStore, error) {
	var (
		db  *chromem.DB
		err error
	)
	if cfg.InMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Path, chromemCompress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}
	return &ChromemStore{db: db, name: collection}, nil
}

func (s *ChromemStore) EnsureReady(ctx context.Context) error {
	c, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return &models.IndexError{Op: "ensure", Err: err}
	}
	s.collection = c
	return nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if s.collection == nil {
		return &models.IndexError{Op: "add", Err: fmt.Errorf("collection not ready")}
	}
	if len(docs) != len(vectors) {
		return &models.IndexError{Op: "add", Err: fmt.Errorf("got %d documents but %d vectors", len(docs), len(vectors))}
	}
	if len(docs) == 0 {
		return nil
	}

	chromemDocs := make([]chromem.Document, 0, len(docs))
	for i, doc := range docs {
		chromemDocs = append(chromemDocs, chromem.Document{
			ID:        fmt.Sprintf("%s-%s", doc.Metadata[models.MetaSource], doc.Metadata[models.MetaChunkID]),
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: vectors[i],
		})
	}

	if err := s.collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		return &models.IndexError{Op: "add", Err: err}
	}
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, vector []float32, k int) ([]models.Document, error) {
	if s.collection == nil || k <= 0 {
		return nil, nil
	}

	// chromem rejects queries asking for more results than stored
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: vector,
		NResults:       k,
	})
	if err != nil {
		return nil, &models.IndexError{Op: "search", Err: err}
	}

	docs := make([]models.Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, models.Document{
			Content:  res.Content,
			Metadata: res.Metadata,
		})
	}
	return docs, nil
}

func (s *ChromemStore) Clear(ctx context.Context) (uint64, error) {
	if s.collection == nil {
		return 0, nil
	}

	prior := uint64(s.collection.Count())
	if prior == 0 {
		return 0, nil
	}

	// recreate rather than delete record by record
	if err := s.db.DeleteCollection(s.name); err != nil {
		return 0, &models.IndexError{Op: "clear", Err: err}
	}
	c, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return 0, &models.IndexError{Op: "clear", Err: err}
	}
	s.collection = c
	return prior, nil
}

func (s *ChromemStore) Drop(ctx context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return &models.IndexError{Op: "drop", Err: err}
	}
	s.collection = nil
	return nil
}

func (s *ChromemStore) Stats(ctx context.Context) (models.IndexStats, error) {
	if s.collection == nil {
		return models.IndexStats{Status: "absent", Dimension: config.VectorSize}, nil
	}
	return models.IndexStats{
		Records:   uint64(s.collection.Count()),
		Status:    "ready",
		Dimension: config.VectorSize,
	}, nil
}

func (s *ChromemStore) Close() error { return nil }
