package notetree

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/testutil"
)

func item(parent, id, title string, hasChildren bool) notes.TreeItem {
	return notes.TreeItem{
		Branch:      notes.Branch{ID: notes.BranchID(parent, id), NoteID: id, ParentID: parent},
		Title:       title,
		HasChildren: hasChildren,
	}
}

var (
	rootChildren = []notes.TreeItem{
		item(notes.RootID, "work", "Work", true),
		item(notes.RootID, "inbox", "Inbox", false),
	}
	workChildren = []notes.TreeItem{
		item("work", "meeting", "Meeting", false),
	}
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTree(t *testing.T) *Model {
	t.Helper()
	m := New()
	m.SetSize(40, 12)
	m.SetFocused(true)
	require.Empty(t, m.SetChildren(notes.RootID, rootChildren))
	return &m
}

func paths(m *Model) []string {
	var out []string
	for _, r := range m.Rows() {
		out = append(out, r.Path)
	}
	return out
}

func TestSetChildren_BuildsTopLevel(t *testing.T) {
	m := newTree(t)

	assert.Equal(t, []string{"root/work", "root/inbox"}, paths(m))
	assert.Equal(t, "root/work", m.ActivePath())
	assert.True(t, m.Loaded(notes.RootID))
	assert.False(t, m.Loaded("work"))
}

func TestExpandLoadsChildrenAndKeepsCursor(t *testing.T) {
	m := newTree(t)

	res := m.Update(key("l"))
	assert.Equal(t, []string{"work"}, res.Load)
	assert.False(t, res.ActiveChanged)

	m.SetChildren("work", workChildren)
	assert.Equal(t, []string{"root/work", "root/work/meeting", "root/inbox"}, paths(m))
	assert.Equal(t, "root/work", m.ActivePath())

	res = m.Update(key("j"))
	assert.True(t, res.ActiveChanged)
	assert.Equal(t, "root/work/meeting", m.ActivePath())
}

func TestLeftMovesToParentThenCollapses(t *testing.T) {
	m := newTree(t)
	m.Update(key("right"))
	m.SetChildren("work", workChildren)
	m.Update(key("j"))

	res := m.Update(key("h"))
	assert.True(t, res.ActiveChanged)
	assert.Equal(t, "root/work", m.ActivePath())

	m.Update(key("left"))
	assert.Equal(t, []string{"root/work", "root/inbox"}, paths(m))
	assert.Equal(t, "root/work", m.ActivePath())
}

func TestEnterTogglesWithoutRefetching(t *testing.T) {
	m := newTree(t)

	assert.Equal(t, []string{"work"}, m.Update(key("enter")).Load)
	m.SetChildren("work", workChildren)

	m.Update(key("enter"))
	assert.Len(t, m.Rows(), 2)

	assert.Empty(t, m.Update(key("enter")).Load, "cached children are reused")
	assert.Len(t, m.Rows(), 3)
}

func TestToggleIgnoresLeaves(t *testing.T) {
	m := newTree(t)
	m.Update(key("j"))
	assert.Nil(t, m.Toggle())
	assert.Len(t, m.Rows(), 2)
}

func TestReveal_LoadsAncestorsInOrder(t *testing.T) {
	m := New()
	m.SetSize(40, 12)

	assert.Equal(t, []string{notes.RootID}, m.Reveal("root/work/meeting"))
	assert.Equal(t, []string{"work"}, m.SetChildren(notes.RootID, rootChildren))
	assert.Empty(t, m.SetChildren("work", workChildren))

	assert.Equal(t, "root/work/meeting", m.ActivePath())
	assert.Equal(t, []string{"root/work"}, m.Expanded())
}

func TestReveal_AcceptsPathWithoutRoot(t *testing.T) {
	m := newTree(t)
	m.Update(key("j"))

	assert.Empty(t, m.Reveal("inbox"))
	assert.Equal(t, "root/inbox", m.ActivePath())
}

func TestReveal_MissingNoteKeepsCursor(t *testing.T) {
	m := newTree(t)
	m.Update(key("j"))

	assert.Empty(t, m.Reveal("root/gone"))
	assert.Equal(t, "root/inbox", m.ActivePath())
}

func TestSelection(t *testing.T) {
	m := newTree(t)

	assert.Equal(t, []string{"work"}, m.SelectedNoteIDs(), "active row when nothing is selected")

	assert.True(t, m.ExtendSelection(1))
	assert.Equal(t, "root/inbox", m.ActivePath())
	assert.True(t, m.IsSelected("root/work"))
	assert.Equal(t, []string{"work", "inbox"}, m.SelectedNoteIDs())
	assert.Equal(t, []string{"root_work", "root_inbox"}, m.SelectedBranchIDs())

	assert.False(t, m.ExtendSelection(1), "nothing below the last row")

	assert.True(t, m.ClearSelection())
	assert.False(t, m.ClearSelection())
	assert.Equal(t, []string{"inbox"}, m.SelectedNoteIDs())
}

func TestSelection_DroppedWhenRowsDisappear(t *testing.T) {
	m := newTree(t)
	m.Update(key("l"))
	m.SetChildren("work", workChildren)
	m.Update(key("j"))
	m.ExtendSelection(1)
	require.True(t, m.IsSelected("root/work/meeting"))

	m.Update(key("k"))
	m.Update(key("k"))
	m.Update(key("h"))

	assert.False(t, m.IsSelected("root/work/meeting"))
	assert.True(t, m.IsSelected("root/inbox"))
}

func TestInvalidateAndSetExpanded(t *testing.T) {
	m := newTree(t)
	assert.Equal(t, []string{"work"}, m.SetExpanded([]string{"root/work"}))
	m.SetChildren("work", workChildren)

	ids := m.Invalidate()
	assert.Equal(t, []string{notes.RootID, "work"}, ids)
	assert.False(t, m.Loaded("work"))
}

func TestCollapseAll(t *testing.T) {
	m := newTree(t)
	m.Update(key("l"))
	m.SetChildren("work", workChildren)
	m.Update(key("G"))

	m.CollapseAll()

	assert.Equal(t, []string{"root/work", "root/inbox"}, paths(m))
	assert.Equal(t, "root/work", m.ActivePath())
	assert.Empty(t, m.Expanded())
}

func TestView(t *testing.T) {
	m := newTree(t)
	m.SetChildren(notes.RootID, []notes.TreeItem{
		rootChildren[0],
		{Branch: notes.Branch{ID: "root_inbox", NoteID: "inbox", ParentID: notes.RootID, Prefix: "2024"}, Title: "Inbox"},
	})
	m.ExtendSelection(1)

	view := testutil.StripANSI(m.View("Notes"))

	assert.Contains(t, view, "Notes")
	assert.Contains(t, view, "▸ Work")
	assert.Contains(t, view, "2024 - Inbox")
	assert.Contains(t, view, "2 selected")
	assert.Equal(t, 12, testutil.CountLines(view))
}

func TestView_TooSmall(t *testing.T) {
	m := New()
	m.SetSize(3, 2)
	assert.Empty(t, m.View("Notes"))
}
