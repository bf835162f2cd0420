package models

// Document is the unit of content flowing through the pipeline: a chunk
// of text plus the metadata identifying where it came from.
type Document struct {
	Content  string
	Metadata map[string]string
}

// Answer is the result of a question: the generated text and the
// documents that were retrieved as context, most similar first.
type Answer struct {
	Text    string
	Sources []Document
}

// IndexStats describes the state of the vector collection, for display.
type IndexStats struct {
	Records   uint64
	Status    string
	Dimension int
}
