// Package testutil provides journal fixtures for tests.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/promptrelay/internal/journal"
)

// NewEntry returns a successful text-source Entry with sensible defaults.
// Override individual fields with options.
func NewEntry(opts ...func(*journal.Entry)) journal.Entry {
	e := journal.Entry{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Provider:   "openai",
		Model:      "gpt-3.5-turbo-instruct",
		SourceKind: "text",
		Target:     "notes.txt",
		Status:     "succeeded",
		Text:       "Test AI response",
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithID sets the entry ID.
func WithID(id string) func(*journal.Entry) {
	return func(e *journal.Entry) { e.ID = id }
}

// At sets the creation time.
func At(t time.Time) func(*journal.Entry) {
	return func(e *journal.Entry) { e.CreatedAt = t.UTC() }
}

// WithProvider sets the provider and model.
func WithProvider(provider, model string) func(*journal.Entry) {
	return func(e *journal.Entry) {
		e.Provider = provider
		e.Model = model
	}
}

// FromFile marks the entry as read from a prompt file.
func FromFile(path string) func(*journal.Entry) {
	return func(e *journal.Entry) {
		e.SourceKind = "file"
		e.PromptPath = path
	}
}

// Failed turns the entry into a failure of the given kind.
func Failed(kind, message string) func(*journal.Entry) {
	return func(e *journal.Entry) {
		e.Status = "failed"
		e.Kind = kind
		e.Message = message
		e.Text = ""
	}
}
