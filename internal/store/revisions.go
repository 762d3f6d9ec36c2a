package store

import (
	"context"
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/notedeck/internal/db"
	"github.com/llehouerou/notedeck/internal/notes"
)

// Revisions returns the saved revisions of a note, newest first, without content.
func (s *Store) Revisions(ctx context.Context, noteID string) ([]notes.Revision, error) {
	if err := noteExists(ctx, s.db, noteID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, note_id, title, content_hash, created_at
		FROM revisions WHERE note_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []notes.Revision
	for rows.Next() {
		var r notes.Revision
		var created sql.NullInt64
		if err := rows.Scan(&r.ID, &r.NoteID, &r.Title, &r.ContentHash, &created); err != nil {
			return nil, err
		}
		r.Created = dbutil.TimeFromMillis(created)
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Revision returns one revision including its content.
func (s *Store) Revision(ctx context.Context, id string) (notes.Revision, error) {
	var r notes.Revision
	var created sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, note_id, title, content, content_hash, created_at FROM revisions WHERE id = ?
	`, id).Scan(&r.ID, &r.NoteID, &r.Title, &r.Content, &r.ContentHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return notes.Revision{}, notFound("revision", id)
	}
	if err != nil {
		return notes.Revision{}, err
	}
	r.Created = dbutil.TimeFromMillis(created)
	return r, nil
}
