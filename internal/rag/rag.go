package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// Retriever supplies context documents for a question.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]models.Document, error)
}

type RAG struct {
	llm         llms.Model
	retriever   Retriever
	prompt      prompts.PromptTemplate
	topK        int
	temperature float64
	maxTokens   int
}

func NewRAG(llm llms.Model, retriever Retriever, cfg *config.RAGConfig) *RAG {
	return &RAG{
		llm:         llm,
		retriever:   retriever,
		prompt:      prompts.NewPromptTemplate(models.RAGPromptTemplate, []string{"context", "question"}),
		topK:        cfg.TopK,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Ask retrieves context for the question and generates an answer. Any
// failure is reported in the log and converted into the fixed fallback
// answer with no sources; the caller never sees an error.
func (r *RAG) Ask(ctx context.Context, question string) models.Answer {
	answer, err := r.ask(ctx, question)
	if err != nil {
		log.Error().Err(err).Msg("Error generating answer")
		return models.Answer{Text: models.FallbackAnswer}
	}
	return answer
}

func (r *RAG) ask(ctx context.Context, question string) (models.Answer, error) {
	docs, err := r.retriever.Retrieve(ctx, question, r.topK)
	if err != nil {
		return models.Answer{}, err
	}

	// retrieved order preserved, no re-ranking or deduplication
	var contextBlock strings.Builder
	for _, doc := range docs {
		contextBlock.WriteString(doc.Content)
		contextBlock.WriteString("\n\n")
	}

	prompt, err := r.prompt.Format(map[string]any{
		"context":  contextBlock.String(),
		"question": question,
	})
	if err != nil {
		return models.Answer{}, &models.GenerationError{Err: err}
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	resp, err := r.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(r.temperature),
		llms.WithMaxTokens(r.maxTokens),
	)
	if err != nil {
		return models.Answer{}, &models.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return models.Answer{}, &models.GenerationError{Err: fmt.Errorf("model returned no choices")}
	}

	return models.Answer{
		Text:    strings.TrimSpace(resp.Choices[0].Content),
		Sources: docs,
	}, nil
}
