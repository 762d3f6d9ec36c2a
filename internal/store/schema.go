package store

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/notedeck/internal/db"
	"github.com/llehouerou/notedeck/internal/notes"
)

const currentSchemaVersion = 1

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'text',
			content TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			modified_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_modified ON notes(modified_at);

		CREATE TABLE IF NOT EXISTS branches (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			parent_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			prefix TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			UNIQUE(parent_id, note_id)
		);

		CREATE INDEX IF NOT EXISTS idx_branches_parent ON branches(parent_id, position);
		CREATE INDEX IF NOT EXISTS idx_branches_note ON branches(note_id);

		CREATE TABLE IF NOT EXISTS attributes (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			type TEXT NOT NULL CHECK (type IN ('label', 'relation')),
			name TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_attributes_note ON attributes(note_id);
		CREATE INDEX IF NOT EXISTS idx_attributes_name ON attributes(type, name);

		CREATE TABLE IF NOT EXISTS revisions (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_revisions_note ON revisions(note_id, created_at);

		CREATE TABLE IF NOT EXISTS options (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			modified_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	return dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return err
		}
		return s.seedRoot(ctx, tx)
	})
}

func (s *Store) seedRoot(ctx context.Context, tx *sql.Tx) error {
	now := dbutil.Millis(s.now())
	_, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO notes (id, title, type, content, content_hash, created_at, modified_at)
		VALUES (?, 'root', ?, '', ?, ?, ?)
	`, notes.RootID, notes.TypeText, contentHash(""), now, now)
	return err
}
