package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

type fakeRetriever struct {
	docs []models.Document
	err  error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]models.Document, error) {
	return f.docs, f.err
}

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.lastPrompt = text.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.response, f.err
}

func testRAGConfig() *config.RAGConfig {
	return &config.RAGConfig{TopK: 4, Temperature: 0.7, MaxTokens: 500}
}

func TestAsk(t *testing.T) {
	docs := []models.Document{
		{Content: "chunk one text", Metadata: map[string]string{models.MetaChunkID: "0"}},
		{Content: "chunk two text", Metadata: map[string]string{models.MetaChunkID: "1"}},
	}
	llm := &fakeLLM{response: "the answer"}
	r := NewRAG(llm, &fakeRetriever{docs: docs}, testRAGConfig())

	answer := r.Ask(context.Background(), "what is it?")
	assert.Equal(t, "the answer", answer.Text)
	assert.Equal(t, docs, answer.Sources)

	// context block keeps retrieval order; question is substituted in
	require.NotEmpty(t, llm.lastPrompt)
	assert.Contains(t, llm.lastPrompt, "chunk one text")
	assert.Contains(t, llm.lastPrompt, "chunk two text")
	assert.Contains(t, llm.lastPrompt, "what is it?")
	assert.Less(t,
		strings.Index(llm.lastPrompt, "chunk one text"),
		strings.Index(llm.lastPrompt, "chunk two text"),
	)
}

func TestAsk_NoContext(t *testing.T) {
	llm := &fakeLLM{response: "I don't have enough context"}
	r := NewRAG(llm, &fakeRetriever{}, testRAGConfig())

	answer := r.Ask(context.Background(), "anything?")
	assert.Equal(t, "I don't have enough context", answer.Text)
	assert.Empty(t, answer.Sources)
}

func TestAsk_LLMFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	r := NewRAG(llm, &fakeRetriever{docs: []models.Document{{Content: "x"}}}, testRAGConfig())

	answer := r.Ask(context.Background(), "q")
	assert.Equal(t, models.FallbackAnswer, answer.Text)
	assert.Empty(t, answer.Sources)
}

func TestAsk_RetrieverFailure(t *testing.T) {
	retr := &fakeRetriever{err: &models.IndexError{Op: "search", Err: errors.New("down")}}
	r := NewRAG(&fakeLLM{response: "unused"}, retr, testRAGConfig())

	answer := r.Ask(context.Background(), "q")
	assert.Equal(t, models.FallbackAnswer, answer.Text)
	assert.Empty(t, answer.Sources)
}
