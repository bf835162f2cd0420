package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

type record struct {
	bun.BaseModel `bun:"table:documents,alias:d"`
	ID            int64           `bun:"id,pk,autoincrement"`
	Content       string          `bun:"content,notnull"`
	Embedding     pgvector.Vector `bun:"embedding,notnull,type:vector(1536)"`
	Source        string          `bun:"source"`
	ChunkID       string          `bun:"chunk_id"`
	ChunkSize     string          `bun:"chunk_size"`
}

// PostgresStore keeps the collection in a pgvector-enabled Postgres
// database. The collection name is the table name.
type PostgresStore struct {
	db    *bun.DB
	table string
}

func NewPostgresStore(cfg *config.PostgresConfig, collection string) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &PostgresStore{db: db, table: collection}, nil
}

func (s *PostgresStore) EnsureReady(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return &models.IndexError{Op: "ensure", Err: err}
	}
	_, err := s.db.NewCreateTable().
		Model((*record)(nil)).
		ModelTableExpr("? AS d", bun.Ident(s.table)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return &models.IndexError{Op: "ensure", Err: err}
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return &models.IndexError{Op: "add", Err: fmt.Errorf("got %d documents but %d vectors", len(docs), len(vectors))}
	}
	if len(docs) == 0 {
		return nil
	}

	recs := make([]record, len(docs))
	for i, doc := range docs {
		recs[i] = record{
			Content:   doc.Content,
			Embedding: pgvector.NewVector(vectors[i]),
			Source:    doc.Metadata[models.MetaSource],
			ChunkID:   doc.Metadata[models.MetaChunkID],
			ChunkSize: doc.Metadata[models.MetaChunkSize],
		}
	}

	_, err := s.db.NewInsert().
		Model(&recs).
		ModelTableExpr("? AS d", bun.Ident(s.table)).
		Exec(ctx)
	if err != nil {
		return &models.IndexError{Op: "add", Err: err}
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, vector []float32, k int) ([]models.Document, error) {
	if k <= 0 {
		return nil, nil
	}

	var recs []record
	err := s.db.NewSelect().
		Model(&recs).
		ModelTableExpr("? AS d", bun.Ident(s.table)).
		Column("content", "source", "chunk_id", "chunk_size").
		OrderExpr("embedding <=> ?", pgvector.NewVector(vector)).
		Limit(k).
		Scan(ctx)
	if err != nil {
		if tableMissing(err) {
			return nil, nil
		}
		return nil, &models.IndexError{Op: "search", Err: err}
	}

	docs := make([]models.Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, models.Document{
			Content: rec.Content,
			Metadata: map[string]string{
				models.MetaSource:    rec.Source,
				models.MetaChunkID:   rec.ChunkID,
				models.MetaChunkSize: rec.ChunkSize,
			},
		})
	}
	return docs, nil
}

func (s *PostgresStore) Clear(ctx context.Context) (uint64, error) {
	count, err := s.db.NewSelect().
		Model((*record)(nil)).
		ModelTableExpr("? AS d", bun.Ident(s.table)).
		Count(ctx)
	if err != nil {
		if tableMissing(err) {
			return 0, nil
		}
		return 0, &models.IndexError{Op: "clear", Err: err}
	}
	if count == 0 {
		return 0, nil
	}

	_, err = s.db.NewTruncateTable().
		Model((*record)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		Exec(ctx)
	if err != nil {
		return 0, &models.IndexError{Op: "clear", Err: err}
	}
	return uint64(count), nil
}

func (s *PostgresStore) Drop(ctx context.Context) error {
	_, err := s.db.NewDropTable().
		Model((*record)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		IfExists().
		Exec(ctx)
	if err != nil {
		return &models.IndexError{Op: "drop", Err: err}
	}
	return nil
}

func (s *PostgresStore) Stats(ctx context.Context) (models.IndexStats, error) {
	count, err := s.db.NewSelect().
		Model((*record)(nil)).
		ModelTableExpr("? AS d", bun.Ident(s.table)).
		Count(ctx)
	if err != nil {
		if tableMissing(err) {
			return models.IndexStats{Status: "absent", Dimension: config.VectorSize}, nil
		}
		return models.IndexStats{}, &models.IndexError{Op: "stats", Err: err}
	}
	return models.IndexStats{
		Records:   uint64(count),
		Status:    "ready",
		Dimension: config.VectorSize,
	}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

// tableMissing reports the undefined_table error class, which we treat
// as "collection not created yet" rather than a failure.
func tableMissing(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "42P01"
}
