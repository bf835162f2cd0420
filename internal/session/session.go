package session

import (
	"time"

	"github.com/ashok49473/DocuMind-AI/internal/models"
)

// Entry is one question/answer exchange.
type Entry struct {
	Question string
	Answer   models.Answer
	AskedAt  time.Time
}

// Session holds the chat history for one run of the application.
// It is created on first use, cleared on explicit request, and lost
// when the process exits; durable state lives only in the index.
type Session struct {
	entries []Entry
}

func New() *Session {
	return &Session{}
}

func (s *Session) Add(question string, answer models.Answer) {
	s.entries = append(s.entries, Entry{
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now(),
	})
}

// History returns the exchanges in order, oldest first.
func (s *Session) History() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Session) Len() int {
	return len(s.entries)
}

// Clear drops the history and reports how many entries were removed.
func (s *Session) Clear() int {
	n := len(s.entries)
	s.entries = nil
	return n
}
