package store

import (
	"context"
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/notedeck/internal/db"
)

// Option returns a stored option value.
func (s *Store) Option(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("option", name)
	}
	return value, err
}

// SetOption creates or replaces an option.
func (s *Store) SetOption(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO options (name, value, modified_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			modified_at = excluded.modified_at
	`, name, value, dbutil.Millis(s.now()))
	return err
}

// DeleteOption removes an option. Removing a missing option is not an error.
func (s *Store) DeleteOption(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE name = ?`, name)
	return err
}
