package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/ashok49473/DocuMind-AI/internal/chunker"
	"github.com/ashok49473/DocuMind-AI/internal/index"
	"github.com/ashok49473/DocuMind-AI/internal/models"
	"github.com/ashok49473/DocuMind-AI/internal/parser"
)

// Ingestor runs the write path: extract, chunk, embed, store. Every
// Process call replaces the collection contents (clear-before-write),
// so the index always holds exactly one document set.
type Ingestor struct {
	embedder     embeddings.Embedder
	store        index.Store
	chunkSize    int
	chunkOverlap int
}

func New(embedder embeddings.Embedder, store index.Store, chunkSize, chunkOverlap int) *Ingestor {
	return &Ingestor{
		embedder:     embedder,
		store:        store,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// FileReport describes the outcome for one input file.
type FileReport struct {
	Source string
	Chunks int
	Err    error
}

// Report describes one Process action.
type Report struct {
	Cleared uint64
	Chunks  int
	Files   []FileReport
}

// Failed reports whether no file made it into the index.
func (r Report) Failed() bool {
	return r.Chunks == 0
}

// Process indexes the given files as one action: ensure the collection
// is ready, clear it, then extract/chunk/embed/store each file. A file
// that fails is reported and skipped, the rest still go in.
func (ing *Ingestor) Process(ctx context.Context, paths []string) (Report, error) {
	if len(paths) == 0 {
		return Report{}, fmt.Errorf("no documents to process")
	}

	if err := ing.store.EnsureReady(ctx); err != nil {
		return Report{}, err
	}

	cleared, err := ing.store.Clear(ctx)
	if err != nil {
		return Report{}, err
	}
	if cleared > 0 {
		log.Info().Uint64("records", cleared).Msg("Cleared previous index contents")
	}

	report := Report{Cleared: cleared}
	for _, path := range paths {
		chunks, err := ing.processOne(ctx, path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Error processing document")
		}
		report.Files = append(report.Files, FileReport{
			Source: filepath.Base(path),
			Chunks: chunks,
			Err:    err,
		})
		report.Chunks += chunks
	}
	return report, nil
}

// ProcessFolder indexes every *.pdf file in dir as one action.
func (ing *Ingestor) ProcessFolder(ctx context.Context, dir string) (Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return Report{}, err
	}
	if len(paths) == 0 {
		return Report{}, fmt.Errorf("no PDF files found in %s", dir)
	}
	return ing.Process(ctx, paths)
}

func (ing *Ingestor) processOne(ctx context.Context, path string) (int, error) {
	text, err := parser.Extract(path)
	if err != nil {
		return 0, err
	}
	// readable but empty (e.g. scanned-image PDF): refuse to index,
	// distinctly from an extraction failure
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), models.ErrNoText)
	}

	docs, err := chunker.CreateDocuments(text, filepath.Base(path), ing.chunkSize, ing.chunkOverlap)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), models.ErrNoText)
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}
	vectors, err := ing.embedder.EmbedDocuments(ctx, contents)
	if err != nil {
		return 0, &models.GenerationError{Err: err}
	}

	if err := ing.store.Add(ctx, docs, vectors); err != nil {
		return 0, err
	}
	return len(docs), nil
}
