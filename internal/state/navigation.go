package state

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	dbutil "github.com/llehouerou/notedeck/internal/db"
)

type NavigationState struct {
	ActiveNotePath string
	Focus          string   // "tree" or "detail"
	ExpandedPaths  []string // tree nodes left open
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`SELECT active_note_path, focus FROM navigation_state WHERE id = 1`)

	var state NavigationState
	var focus sql.NullString
	err := row.Scan(&state.ActiveNotePath, &focus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	state.Focus = dbutil.NullStringValue(focus)

	rows, err := db.Query(`SELECT path FROM expanded_paths ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		state.ExpandedPaths = append(state.ExpandedPaths, p)
	}
	return &state, rows.Err()
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	return dbutil.WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO navigation_state (id, active_note_path, focus, updated_at)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				active_note_path = excluded.active_note_path,
				focus = excluded.focus,
				updated_at = excluded.updated_at
		`, state.ActiveNotePath, dbutil.NullString(state.Focus), dbutil.Millis(time.Now()))
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM expanded_paths`); err != nil {
			return err
		}
		paths := slices.Clone(state.ExpandedPaths)
		slices.Sort(paths)
		for _, p := range slices.Compact(paths) {
			if _, err := tx.Exec(`INSERT INTO expanded_paths (path) VALUES (?)`, p); err != nil {
				return err
			}
		}
		return nil
	})
}
