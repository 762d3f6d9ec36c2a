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

const positionStep = 10

// Branch returns a branch by id.
func (s *Store) Branch(ctx context.Context, id string) (notes.Branch, error) {
	return getBranch(ctx, s.db, id)
}

func getBranch(ctx context.Context, q queryer, id string) (notes.Branch, error) {
	var b notes.Branch
	var prefix sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT id, note_id, parent_id, prefix, position FROM branches WHERE id = ?
	`, id).Scan(&b.ID, &b.NoteID, &b.ParentID, &prefix, &b.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return notes.Branch{}, notFound("branch", id)
	}
	if err != nil {
		return notes.Branch{}, err
	}
	b.Prefix = dbutil.NullStringValue(prefix)
	return b, nil
}

// SetBranchPrefix changes the prefix shown before the note title in this branch.
// An empty prefix clears it.
func (s *Store) SetBranchPrefix(ctx context.Context, branchID, prefix string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE branches SET prefix = ? WHERE id = ?`,
		dbutil.NullString(strings.TrimSpace(prefix)), branchID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("branch", branchID)
	}
	return nil
}

// CloneNotes places every note under parentID as well as where it already is.
// Notes already under parentID are left alone.
func (s *Store) CloneNotes(ctx context.Context, noteIDs []string, parentID string) ([]notes.Branch, error) {
	if len(noteIDs) == 0 {
		return nil, fmt.Errorf("%w: no notes to clone", ErrInvalid)
	}

	var created []notes.Branch
	err := dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := noteExists(ctx, tx, parentID); err != nil {
			return err
		}
		for _, noteID := range noteIDs {
			if err := checkPlacement(ctx, tx, noteID, parentID); err != nil {
				return err
			}
			if _, err := getBranch(ctx, tx, notes.BranchID(parentID, noteID)); err == nil {
				continue
			}
			b, err := insertBranch(ctx, tx, parentID, noteID, "")
			if err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// MoveBranches re-parents each branch under parentID, keeping its prefix.
func (s *Store) MoveBranches(ctx context.Context, branchIDs []string, parentID string) ([]notes.Branch, error) {
	if len(branchIDs) == 0 {
		return nil, fmt.Errorf("%w: no branches to move", ErrInvalid)
	}

	var moved []notes.Branch
	err := dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := noteExists(ctx, tx, parentID); err != nil {
			return err
		}
		for _, id := range branchIDs {
			b, err := getBranch(ctx, tx, id)
			if err != nil {
				return err
			}
			if b.ParentID == parentID {
				moved = append(moved, b)
				continue
			}
			if err := checkPlacement(ctx, tx, b.NoteID, parentID); err != nil {
				return err
			}
			if _, err := getBranch(ctx, tx, notes.BranchID(parentID, b.NoteID)); err == nil {
				return fmt.Errorf("%w: note '%s' is already in the target", ErrInvalid, b.NoteID)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM branches WHERE id = ?`, id); err != nil {
				return err
			}
			nb, err := insertBranch(ctx, tx, parentID, b.NoteID, b.Prefix)
			if err != nil {
				return err
			}
			moved = append(moved, nb)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// checkPlacement rejects placing the root anywhere and placing a note inside its own subtree.
func checkPlacement(ctx context.Context, tx *sql.Tx, noteID, parentID string) error {
	if noteID == notes.RootID {
		return fmt.Errorf("%w: the root note cannot be placed", ErrInvalid)
	}
	if err := noteExists(ctx, tx, noteID); err != nil {
		return err
	}
	if noteID == parentID {
		return fmt.Errorf("%w: note '%s' cannot contain itself", ErrInvalid, noteID)
	}

	var inside int
	err := tx.QueryRowContext(ctx, `
		WITH RECURSIVE descendants(id) AS (
			SELECT note_id FROM branches WHERE parent_id = ?
			UNION
			SELECT b.note_id FROM branches b JOIN descendants d ON b.parent_id = d.id
		)
		SELECT COUNT(*) FROM descendants WHERE id = ?
	`, noteID, parentID).Scan(&inside)
	if err != nil {
		return err
	}
	if inside > 0 {
		return fmt.Errorf("%w: note '%s' cannot be placed inside its own subtree", ErrInvalid, noteID)
	}
	return nil
}

func insertBranch(ctx context.Context, tx *sql.Tx, parentID, noteID, prefix string) (notes.Branch, error) {
	var last sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		`SELECT MAX(position) FROM branches WHERE parent_id = ?`, parentID).Scan(&last); err != nil {
		return notes.Branch{}, err
	}

	b := notes.Branch{
		ID:       notes.BranchID(parentID, noteID),
		NoteID:   noteID,
		ParentID: parentID,
		Prefix:   prefix,
		Position: int(last.Int64) + positionStep,
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO branches (id, note_id, parent_id, prefix, position) VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.NoteID, b.ParentID, dbutil.NullString(b.Prefix), b.Position)
	if err != nil {
		return notes.Branch{}, err
	}
	return b, nil
}
