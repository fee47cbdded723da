package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"), "dev")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecord_and_Recent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{ID: "a", CreatedAt: base, Provider: "openai", Model: "m", SourceKind: "text",
			Target: "notes.txt", Status: "succeeded", Text: "first"},
		{ID: "b", CreatedAt: base.Add(time.Minute), Provider: "openai", SourceKind: "file",
			PromptPath: "prompt.txt", Target: "console", Status: "failed",
			Kind: "remote_error", Message: "Request failed with status code 401"},
		{ID: "c", CreatedAt: base.Add(2 * time.Minute), Provider: "ollama", SourceKind: "text",
			Target: "notes.txt", Status: "succeeded", Text: "third"},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s): %v", e.ID, err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("order = [%s %s], want [c b]", got[0].ID, got[1].ID)
	}
	if got[1].Kind != "remote_error" || got[1].PromptPath != "prompt.txt" {
		t.Errorf("entry b = %+v", got[1])
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, base.Add(2*time.Minute))
	}
}

func TestRecord_duplicateID(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	e := Entry{ID: "dup", CreatedAt: time.Now(), SourceKind: "text", Target: "t", Status: "succeeded"}

	if err := s.Record(ctx, e); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if err := s.Record(ctx, e); err == nil {
		t.Error("expected error recording duplicate id")
	}
}

func TestOpen_reopen_is_idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		s, err := Open(ctx, path, "0.1.0")
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestRecent_empty(t *testing.T) {
	s := openTemp(t)
	got, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent on empty journal returned %d entries", len(got))
	}
}
