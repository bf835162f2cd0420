package rag

import (
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/ashok49473/DocuMind-AI/internal/config"
)

// NewLLM builds the chat model used for answer generation.
func NewLLM(cfg *config.OpenAIConfig) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithModel(cfg.ChatModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	return openai.New(opts...)
}
