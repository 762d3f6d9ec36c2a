// Package notetree renders the note hierarchy as an expandable list.
//
// Children are cached per note id because a cloned note shows the same
// children under every parent; expansion and selection are tracked per note
// path since each clone is its own row.
package notetree

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/list"
)

// Row is one visible line of the tree.
type Row struct {
	Item  notes.TreeItem
	Path  string
	Depth int
}

// Result tells the parent what an update did.
type Result struct {
	// ActiveChanged is set when the row under the cursor changed.
	ActiveChanged bool
	// Load lists note ids whose children must be fetched.
	Load []string
}

// Model is the note tree.
type Model struct {
	list     list.Model[Row]
	children map[string][]notes.TreeItem
	expanded map[string]bool
	selected map[string]bool
	// reveal is the path to select once its ancestors are loaded.
	reveal string
}

// New creates an empty tree rooted at notes.RootID.
func New() Model {
	return Model{
		list:     list.New[Row](ui.ScrollMargin, ui.BorderHeight+1),
		children: make(map[string][]notes.TreeItem),
		expanded: map[string]bool{notes.RootID: true},
		selected: make(map[string]bool),
	}
}

// SetSize sets the pane dimensions, border included.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
	m.list.SetItems(m.list.Items())
}

// SetFocused sets whether the pane has focus.
func (m *Model) SetFocused(focused bool) {
	m.list.SetFocused(focused)
}

// IsFocused reports whether the pane has focus.
func (m Model) IsFocused() bool {
	return m.list.IsFocused()
}

// Rows returns the visible rows.
func (m Model) Rows() []Row {
	return m.list.Items()
}

// Loaded reports whether the children of noteID are cached.
func (m Model) Loaded(noteID string) bool {
	_, ok := m.children[noteID]
	return ok
}

// SetChildren caches the children of parentID and rebuilds the rows,
// keeping the cursor on the same path when it is still visible.
// Returns the note ids to load next when a pending reveal needs them.
func (m *Model) SetChildren(parentID string, items []notes.TreeItem) []string {
	if items == nil {
		items = []notes.TreeItem{}
	}
	m.children[parentID] = items
	active := m.ActivePath()
	m.rebuild()

	if m.reveal != "" {
		return m.continueReveal()
	}
	if active != "" {
		m.selectPath(active)
	}
	return nil
}

// Invalidate drops every cached child list so the next load refetches it.
// Returns the note ids currently shown expanded, root first.
func (m *Model) Invalidate() []string {
	m.children = make(map[string][]notes.TreeItem)
	var ids []string
	for p := range m.expanded {
		ids = append(ids, notes.NoteIDFromPath(p))
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	// root first so the top level renders before nested levels arrive
	if i := slices.Index(ids, notes.RootID); i > 0 {
		ids[0], ids[i] = ids[i], ids[0]
	}
	return ids
}

// ActivePath returns the note path under the cursor, or "" when empty.
func (m Model) ActivePath() string {
	if r, ok := m.list.Selected(); ok {
		return r.Path
	}
	return ""
}

// Active returns the row under the cursor.
func (m Model) Active() (Row, bool) {
	return m.list.Selected()
}

// Reveal expands the ancestors of path and selects it once loaded.
// Returns the note ids whose children are still missing.
func (m *Model) Reveal(path string) []string {
	ids := notes.SplitPath(path)
	if len(ids) == 0 {
		return nil
	}
	if ids[0] != notes.RootID {
		ids = append([]string{notes.RootID}, ids...)
	}
	for i := 1; i < len(ids); i++ {
		m.expanded[notes.JoinPath(ids[:i]...)] = true
	}
	m.reveal = notes.JoinPath(ids...)
	m.rebuild()
	return m.continueReveal()
}

func (m *Model) continueReveal() []string {
	ids := notes.SplitPath(m.reveal)
	for i := 0; i < len(ids)-1; i++ {
		if !m.Loaded(ids[i]) {
			return []string{ids[i]}
		}
	}
	if !m.selectPath(m.reveal) {
		// the path no longer exists; keep the cursor where it is
		m.list.SetItems(m.list.Items())
	}
	m.reveal = ""
	return nil
}

func (m *Model) selectPath(path string) bool {
	for i, r := range m.list.Items() {
		if r.Path == path {
			m.list.Select(i)
			return true
		}
	}
	return false
}

// Expanded returns the expanded paths, root excluded.
func (m Model) Expanded() []string {
	out := make([]string, 0, len(m.expanded))
	for p, open := range m.expanded {
		if open && p != notes.RootID {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}

// SetExpanded marks paths expanded and returns the note ids to load.
func (m *Model) SetExpanded(paths []string) []string {
	var load []string
	for _, p := range paths {
		m.expanded[p] = true
		if id := notes.NoteIDFromPath(p); id != "" && !m.Loaded(id) {
			load = append(load, id)
		}
	}
	m.rebuild()
	return load
}

// CollapseAll closes every node and moves the cursor to the top.
func (m *Model) CollapseAll() {
	m.expanded = map[string]bool{notes.RootID: true}
	m.rebuild()
	m.list.Select(0)
}

// Toggle opens or closes the active row. Returns ids to load.
func (m *Model) Toggle() []string {
	r, ok := m.list.Selected()
	if !ok || !r.Item.HasChildren {
		return nil
	}
	if m.expanded[r.Path] {
		m.collapse(r.Path)
		return nil
	}
	return m.expand(r)
}

func (m *Model) expand(r Row) []string {
	m.expanded[r.Path] = true
	m.rebuild()
	if !m.Loaded(r.Item.NoteID) {
		return []string{r.Item.NoteID}
	}
	return nil
}

func (m *Model) collapse(path string) {
	delete(m.expanded, path)
	m.rebuild()
	m.selectPath(path)
}

// --- Selection ---

// ExtendSelection adds the active row and its neighbour in direction dir
// (-1 above, +1 below) to the selection and moves the cursor there.
func (m *Model) ExtendSelection(dir int) bool {
	r, ok := m.list.Selected()
	if !ok {
		return false
	}
	m.selected[r.Path] = true
	idx := m.list.SelectedIndex() + dir
	rows := m.list.Items()
	if idx < 0 || idx >= len(rows) {
		return false
	}
	m.list.Select(idx)
	m.selected[rows[idx].Path] = true
	return true
}

// ClearSelection empties the selection. Reports whether anything was selected.
func (m *Model) ClearSelection() bool {
	had := len(m.selected) > 0
	m.selected = make(map[string]bool)
	return had
}

// IsSelected reports whether path is part of the selection.
func (m Model) IsSelected(path string) bool {
	return m.selected[path]
}

// SelectedRows returns the selected rows in display order, or the active
// row when nothing is selected.
func (m Model) SelectedRows() []Row {
	var out []Row
	for _, r := range m.list.Items() {
		if m.selected[r.Path] {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		if r, ok := m.list.Selected(); ok {
			out = append(out, r)
		}
	}
	return out
}

// SelectedNoteIDs returns the note ids of SelectedRows, deduplicated.
func (m Model) SelectedNoteIDs() []string {
	var ids []string
	for _, r := range m.SelectedRows() {
		if !slices.Contains(ids, r.Item.NoteID) {
			ids = append(ids, r.Item.NoteID)
		}
	}
	return ids
}

// SelectedBranchIDs returns the branch ids of SelectedRows.
func (m Model) SelectedBranchIDs() []string {
	rows := m.SelectedRows()
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Item.ID)
	}
	return ids
}

// Update handles navigation keys. l/right expands, h/left collapses or
// moves to the parent, enter toggles.
func (m *Model) Update(msg tea.Msg) Result {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return Result{}
	}

	before := m.ActivePath()
	var load []string

	switch keyMsg.String() {
	case "l", "right":
		if r, ok := m.list.Selected(); ok && r.Item.HasChildren && !m.expanded[r.Path] {
			load = m.expand(r)
		}
	case "h", "left":
		if r, ok := m.list.Selected(); ok {
			if m.expanded[r.Path] {
				m.collapse(r.Path)
			} else {
				m.selectPath(parentPath(r.Path))
			}
		}
	case "enter":
		load = m.Toggle()
	default:
		m.list.Update(msg)
	}

	return Result{ActiveChanged: m.ActivePath() != before, Load: load}
}

func (m *Model) rebuild() {
	var rows []Row
	var walk func(parentID, parentPath string, depth int)
	walk = func(parentID, parentPath string, depth int) {
		for _, it := range m.children[parentID] {
			p := parentPath + notes.PathSeparator + it.NoteID
			rows = append(rows, Row{Item: it, Path: p, Depth: depth})
			if it.HasChildren && m.expanded[p] {
				walk(it.NoteID, p, depth+1)
			}
		}
	}
	walk(notes.RootID, notes.RootID, 0)

	for p := range m.selected {
		if !slices.ContainsFunc(rows, func(r Row) bool { return r.Path == p }) {
			delete(m.selected, p)
		}
	}
	m.list.SetItems(rows)
}

func parentPath(path string) string {
	i := strings.LastIndex(path, notes.PathSeparator)
	if i <= 0 {
		return path
	}
	return path[:i]
}
