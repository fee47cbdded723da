package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/HerbHall/promptrelay/internal/journal"
	"github.com/HerbHall/promptrelay/internal/testutil"
)

func TestRecent_defaultLimit(t *testing.T) {
	ctx := context.Background()
	s, err := journal.Open(ctx, filepath.Join(t.TempDir(), "journal.db"), "1.0.0")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		e := testutil.NewEntry(testutil.At(base.Add(time.Duration(i) * time.Second)))
		if i%5 == 0 {
			e = testutil.NewEntry(
				testutil.At(base.Add(time.Duration(i)*time.Second)),
				testutil.WithProvider("ollama", "qwen2.5:7b"),
				testutil.FromFile("prompt.txt"),
				testutil.Failed("network_failure", "ollama server unreachable"),
			)
		}
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("Recent(0) returned %d entries, want 20", len(got))
	}
	if !got[0].CreatedAt.Equal(base.Add(24 * time.Second)) {
		t.Errorf("newest = %v", got[0].CreatedAt)
	}

	// i = 20 is the newest failure.
	f := got[4]
	if f.Status != "failed" || f.Kind != "network_failure" || f.PromptPath != "prompt.txt" || f.Text != "" {
		t.Errorf("failure entry = %+v", f)
	}
}

func TestRecord_fixedID(t *testing.T) {
	ctx := context.Background()
	s, err := journal.Open(ctx, filepath.Join(t.TempDir(), "journal.db"), "dev")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Record(ctx, testutil.NewEntry(testutil.WithID("fixed"))); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != "fixed" {
		t.Errorf("Recent = %+v", got)
	}
}
