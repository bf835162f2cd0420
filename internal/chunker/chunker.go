package chunker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// CreateDocuments splits text into overlapping chunks and wraps each
// one into a Document carrying source, zero-based chunk_id and
// chunk_size metadata. The splitter prefers paragraph, then sentence,
// then whitespace boundaries before falling back to a hard cut.
// Requires 0 <= chunkOverlap < chunkSize.
func CreateDocuments(text, source string, chunkSize, chunkOverlap int) ([]models.Document, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, models.Document{
			Content: chunk,
			Metadata: map[string]string{
				models.MetaSource:    source,
				models.MetaChunkID:   strconv.Itoa(i),
				models.MetaChunkSize: strconv.Itoa(len(chunk)),
			},
		})
	}
	return docs, nil
}
