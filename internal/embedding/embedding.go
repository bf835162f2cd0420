package embedding

import (
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/ashok49473/DocuMind-AI/internal/config"
)

// NewEmbedder creates the embedder shared by the write and read paths.
// It is the only embedding-producing constructor in the module, so
// stored vectors and query vectors always come from the same model.
func NewEmbedder(cfg *config.OpenAIConfig) (*embeddings.EmbedderImpl, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}
