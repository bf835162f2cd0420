package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoText marks a document whose extraction succeeded but produced no
// text (e.g. a scanned-image PDF). Distinct from ExtractionError: the
// file was readable, there is just nothing to index.
var ErrNoText = errors.New("no extractable text in document")

// ConfigError enumerates every required parameter that is absent.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// ExtractionError means the input document could not be parsed.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IndexError wraps a failed vector collection operation.
type IndexError struct {
	Op  string
	Err error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s failed: %v", e.Op, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// GenerationError wraps a failed embedding or completion call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
