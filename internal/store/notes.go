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

// NewNote describes a note to create.
type NewNote struct {
	ParentID string
	Title    string
	Type     string
	Content  string
	Prefix   string
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateNote inserts a note and its branch under n.ParentID.
func (s *Store) CreateNote(ctx context.Context, n NewNote) (notes.Note, notes.Branch, error) {
	if strings.TrimSpace(n.Title) == "" {
		return notes.Note{}, notes.Branch{}, fmt.Errorf("%w: note title is required", ErrInvalid)
	}
	if n.Type == "" {
		n.Type = notes.TypeText
	}

	now := s.now()
	note := notes.Note{
		ID:          newID(),
		Title:       n.Title,
		Type:        n.Type,
		ContentHash: contentHash(n.Content),
		ContentSize: len(n.Content),
		Created:     now,
		Modified:    now,
	}
	var branch notes.Branch

	err := dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := noteExists(ctx, tx, n.ParentID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, title, type, content, content_hash, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, note.ID, note.Title, note.Type, n.Content, note.ContentHash,
			dbutil.Millis(now), dbutil.Millis(now)); err != nil {
			return err
		}
		var err error
		branch, err = insertBranch(ctx, tx, n.ParentID, note.ID, n.Prefix)
		return err
	})
	if err != nil {
		return notes.Note{}, notes.Branch{}, err
	}
	return note, branch, nil
}

// Note returns the metadata of a note.
func (s *Store) Note(ctx context.Context, id string) (notes.Note, error) {
	return getNote(ctx, s.db, id)
}

func getNote(ctx context.Context, q queryer, id string) (notes.Note, error) {
	var n notes.Note
	var created, modified sql.NullInt64
	err := q.QueryRowContext(ctx, `
		SELECT id, title, type, content_hash, length(content), created_at, modified_at
		FROM notes WHERE id = ?
	`, id).Scan(&n.ID, &n.Title, &n.Type, &n.ContentHash, &n.ContentSize, &created, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return notes.Note{}, notFound("note", id)
	}
	if err != nil {
		return notes.Note{}, err
	}
	n.Created = dbutil.TimeFromMillis(created)
	n.Modified = dbutil.TimeFromMillis(modified)
	return n, nil
}

func noteExists(ctx context.Context, q queryer, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM notes WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("note", id)
	}
	return err
}

// Content returns the content of a note.
func (s *Store) Content(ctx context.Context, id string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM notes WHERE id = ?`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("note", id)
	}
	return content, err
}

// SaveContent replaces the content of a note. The previous content is kept as a
// revision; saving identical content changes nothing.
func (s *Store) SaveContent(ctx context.Context, id, content string) error {
	return dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.saveContent(ctx, tx, id, func(string) string { return content })
	})
}

// AppendMarkdown adds markdown text at the end of a note's content.
func (s *Store) AppendMarkdown(ctx context.Context, id, markdown string) error {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return fmt.Errorf("%w: nothing to import", ErrInvalid)
	}
	return dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.saveContent(ctx, tx, id, func(old string) string {
			if strings.TrimSpace(old) == "" {
				return markdown
			}
			return strings.TrimRight(old, "\n") + "\n\n" + markdown
		})
	})
}

func (s *Store) saveContent(ctx context.Context, tx *sql.Tx, id string, next func(old string) string) error {
	var title, old, oldHash string
	err := tx.QueryRowContext(ctx,
		`SELECT title, content, content_hash FROM notes WHERE id = ?`, id).Scan(&title, &old, &oldHash)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("note", id)
	}
	if err != nil {
		return err
	}

	content := next(old)
	hash := contentHash(content)
	if hash == oldHash {
		return nil
	}

	now := dbutil.Millis(s.now())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (id, note_id, title, content, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, newID(), id, title, old, oldHash, now); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE notes SET content = ?, content_hash = ?, modified_at = ? WHERE id = ?`,
		content, hash, now, id)
	return err
}

// Children returns the tree items directly under a note, in position order.
func (s *Store) Children(ctx context.Context, parentID string) ([]notes.TreeItem, error) {
	if err := noteExists(ctx, s.db, parentID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.note_id, b.parent_id, b.prefix, b.position, n.title,
		       EXISTS (SELECT 1 FROM branches c WHERE c.parent_id = b.note_id)
		FROM branches b
		JOIN notes n ON n.id = b.note_id
		WHERE b.parent_id = ?
		ORDER BY b.position, n.title
	`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []notes.TreeItem
	for rows.Next() {
		var it notes.TreeItem
		var prefix sql.NullString
		if err := rows.Scan(&it.ID, &it.NoteID, &it.ParentID, &prefix, &it.Position,
			&it.Title, &it.HasChildren); err != nil {
			return nil, err
		}
		it.Prefix = dbutil.NullStringValue(prefix)
		items = append(items, it)
	}
	return items, rows.Err()
}

// RecentChanges returns the most recently created or modified notes.
func (s *Store) RecentChanges(ctx context.Context, limit int) ([]notes.RecentChange, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, modified_at
		FROM notes
		WHERE id != ?
		ORDER BY modified_at DESC, id
		LIMIT ?
	`, notes.RootID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []notes.RecentChange
	for rows.Next() {
		var c notes.RecentChange
		var created, modified sql.NullInt64
		if err := rows.Scan(&c.NoteID, &c.Title, &created, &modified); err != nil {
			return nil, err
		}
		c.Kind = notes.ChangeModified
		if created.Int64 == modified.Int64 {
			c.Kind = notes.ChangeCreated
		}
		c.Date = dbutil.TimeFromMillis(modified)
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// Search finds notes whose title or content contains query (case-insensitive).
func (s *Store) Search(ctx context.Context, query string, limit int) ([]notes.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title
		FROM notes
		WHERE id != ? AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')
		ORDER BY (title LIKE ? ESCAPE '\') DESC, modified_at DESC
		LIMIT ?
	`, notes.RootID, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}

	var results []notes.SearchResult
	for rows.Next() {
		var r notes.SearchResult
		if err := rows.Scan(&r.NoteID, &r.Title); err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		ids, titles, err := s.pathTo(ctx, results[i].NoteID)
		if err != nil {
			return nil, err
		}
		results[i].Path = notes.JoinPath(ids...)
		results[i].PathTitle = strings.Join(titles, " / ")
	}
	return results, nil
}

// pathTo walks the first branch of each ancestor up to the root.
// titles excludes the root and the note itself.
func (s *Store) pathTo(ctx context.Context, noteID string) (ids, titles []string, err error) {
	ids = []string{noteID}
	seen := map[string]bool{noteID: true}
	current := noteID
	for current != notes.RootID {
		var parent, title string
		err := s.db.QueryRowContext(ctx, `
			SELECT b.parent_id, n.title
			FROM branches b JOIN notes n ON n.id = b.parent_id
			WHERE b.note_id = ?
			ORDER BY b.position, b.id
			LIMIT 1
		`, current).Scan(&parent, &title)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if seen[parent] {
			break
		}
		seen[parent] = true
		ids = append([]string{parent}, ids...)
		if parent != notes.RootID {
			titles = append([]string{title}, titles...)
		}
		current = parent
	}
	return ids, titles, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// NotePath returns the path from the root to a note following first branches.
func (s *Store) NotePath(ctx context.Context, noteID string) (string, error) {
	if err := noteExists(ctx, s.db, noteID); err != nil {
		return "", err
	}
	ids, _, err := s.pathTo(ctx, noteID)
	if err != nil {
		return "", err
	}
	return notes.JoinPath(ids...), nil
}
