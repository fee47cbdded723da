package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one recorded relay outcome.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	Provider   string
	Model      string
	SourceKind string // "text" or "file"
	PromptPath string // set for file sources
	Target     string
	Status     string // "succeeded" or "failed"
	Kind       string // failure kind, empty on success
	Message    string // failure message
	Text       string // trimmed completion
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "create relay_entries table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE relay_entries (
					id          TEXT     PRIMARY KEY,
					created_at  DATETIME NOT NULL,
					provider    TEXT     NOT NULL DEFAULT '',
					model       TEXT     NOT NULL DEFAULT '',
					source_kind TEXT     NOT NULL,
					prompt_path TEXT     NOT NULL DEFAULT '',
					target      TEXT     NOT NULL,
					status      TEXT     NOT NULL,
					kind        TEXT     NOT NULL DEFAULT '',
					message     TEXT     NOT NULL DEFAULT '',
					text        TEXT     NOT NULL DEFAULT ''
				)
			`)
			return err
		},
	},
	{
		Version:     2,
		Description: "index relay_entries by created_at",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec("CREATE INDEX idx_relay_entries_created_at ON relay_entries(created_at)")
			return err
		},
	},
}

// Record inserts e.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relay_entries
			(id, created_at, provider, model, source_kind, prompt_path, target, status, kind, message, text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UTC(), e.Provider, e.Model, e.SourceKind, e.PromptPath,
		e.Target, e.Status, e.Kind, e.Message, e.Text,
	)
	if err != nil {
		return fmt.Errorf("insert relay entry %s: %w", e.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, provider, model, source_kind, prompt_path, target, status, kind, message, text
		FROM relay_entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query relay entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Provider, &e.Model, &e.SourceKind,
			&e.PromptPath, &e.Target, &e.Status, &e.Kind, &e.Message, &e.Text); err != nil {
			return nil, fmt.Errorf("scan relay entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
