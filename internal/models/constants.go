package models

// Metadata keys attached to every chunk document.
const (
	MetaSource    = "source"
	MetaChunkID   = "chunk_id"
	MetaChunkSize = "chunk_size"
)

// FallbackAnswer is returned whenever answer generation fails.
const FallbackAnswer = "Sorry, I encountered an error while processing your question."

var RAGPromptTemplate = `You are a helpful AI assistant that answers questions based on the provided context from documents.

Context from documents:
{{.context}}

Question: {{.question}}

Instructions:
1. Answer the question based primarily on the provided context
2. If the context doesn't contain enough information, say so clearly
3. Be specific and cite relevant information from the context
4. If you're unsure, acknowledge the uncertainty
5. Provide a clear, well-structured answer

Answer:
`
