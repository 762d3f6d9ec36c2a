package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	dbutil "github.com/llehouerou/notedeck/internal/db"
	"github.com/llehouerou/notedeck/internal/notes"
)

// AddAttribute attaches a label or relation to a note.
// Relations must point to an existing note.
func (s *Store) AddAttribute(ctx context.Context, noteID, typ, name, value string) (notes.Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return notes.Attribute{}, fmt.Errorf("%w: attribute name is required", ErrInvalid)
	}
	if typ != notes.AttrLabel && typ != notes.AttrRelation {
		return notes.Attribute{}, fmt.Errorf("%w: attribute type '%s'", ErrInvalid, typ)
	}

	attr := notes.Attribute{ID: newID(), NoteID: noteID, Type: typ, Name: name, Value: value}
	err := dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := noteExists(ctx, tx, noteID); err != nil {
			return err
		}
		if typ == notes.AttrRelation {
			if err := noteExists(ctx, tx, value); err != nil {
				return err
			}
		}
		var last sql.NullInt64
		if err := tx.QueryRowContext(ctx,
			`SELECT MAX(position) FROM attributes WHERE note_id = ?`, noteID).Scan(&last); err != nil {
			return err
		}
		attr.Position = int(last.Int64) + positionStep
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attributes (id, note_id, type, name, value, position) VALUES (?, ?, ?, ?, ?, ?)
		`, attr.ID, attr.NoteID, attr.Type, attr.Name, attr.Value, attr.Position)
		return err
	})
	if err != nil {
		return notes.Attribute{}, err
	}
	return attr, nil
}

// Attributes returns the attributes owned by a note.
func (s *Store) Attributes(ctx context.Context, noteID string) ([]notes.Attribute, error) {
	if err := noteExists(ctx, s.db, noteID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, note_id, type, name, value, position
		FROM attributes WHERE note_id = ?
		ORDER BY position, name
	`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []notes.Attribute
	for rows.Next() {
		var a notes.Attribute
		if err := rows.Scan(&a.ID, &a.NoteID, &a.Type, &a.Name, &a.Value, &a.Position); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

// LinkMap returns the relations into and out of a note with the titles of every note involved.
func (s *Store) LinkMap(ctx context.Context, noteID string) (notes.LinkMap, error) {
	title := ""
	if err := s.db.QueryRowContext(ctx, `SELECT title FROM notes WHERE id = ?`, noteID).Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notes.LinkMap{}, notFound("note", noteID)
		}
		return notes.LinkMap{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.name, a.note_id, a.value, src.title, dst.title
		FROM attributes a
		JOIN notes src ON src.id = a.note_id
		JOIN notes dst ON dst.id = a.value
		WHERE a.type = 'relation' AND (a.note_id = ? OR a.value = ?)
		ORDER BY a.note_id = ? DESC, a.position, a.name
	`, noteID, noteID, noteID)
	if err != nil {
		return notes.LinkMap{}, err
	}
	defer rows.Close()

	lm := notes.LinkMap{NoteID: noteID, Titles: map[string]string{noteID: title}}
	for rows.Next() {
		var l notes.Link
		var srcTitle, dstTitle string
		if err := rows.Scan(&l.Name, &l.Source, &l.Target, &srcTitle, &dstTitle); err != nil {
			return notes.LinkMap{}, err
		}
		lm.Titles[l.Source] = srcTitle
		lm.Titles[l.Target] = dstTitle
		lm.Links = append(lm.Links, l)
	}
	return lm, rows.Err()
}

// NoteShortcuts maps each keyboardShortcut label value to the note carrying it.
// When two notes claim the same shortcut, the one created first wins.
func (s *Store) NoteShortcuts(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.value, a.note_id
		FROM attributes a JOIN notes n ON n.id = a.note_id
		WHERE a.type = 'label' AND a.name = ? AND a.value != ''
		ORDER BY n.created_at, n.id
	`, notes.ShortcutLabel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shortcuts := make(map[string]string)
	for rows.Next() {
		var shortcut, noteID string
		if err := rows.Scan(&shortcut, &noteID); err != nil {
			return nil, err
		}
		if _, taken := shortcuts[shortcut]; !taken {
			shortcuts[shortcut] = noteID
		}
	}
	return shortcuts, rows.Err()
}
