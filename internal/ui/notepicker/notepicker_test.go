package notepicker

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/testutil"
)

type fakeSearch struct {
	results []notes.SearchResult
	err     error
	queries []string
}

func (f *fakeSearch) search(_ context.Context, q string) ([]notes.SearchResult, error) {
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func newPicker(f *fakeSearch, pinned []notes.SearchResult) (*Model, *testutil.PopupHarness) {
	m := New("Jump to note", f.search, pinned, "ctx")
	m.SetDebounce(0)
	return m, testutil.NewPopupHarness(m)
}

// typeAndSearch types text and feeds the final search result back.
func typeAndSearch(t *testing.T, h *testutil.PopupHarness, text string) {
	t.Helper()
	var last tea.Cmd
	for _, r := range text {
		last = h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	msg, ok := testutil.FindMsg[resultsMsg](last)
	require.True(t, ok, "expected a search command")
	h.SendMsg(msg)
}

func pickResult(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	msg, ok := testutil.FindMsg[action.Msg](cmd)
	require.True(t, ok)
	r, ok := msg.Action.(Result)
	require.True(t, ok)
	return r
}

func TestNotePicker_SearchAndPick(t *testing.T) {
	f := &fakeSearch{results: []notes.SearchResult{
		{NoteID: "n1", Title: "Shopping", Path: "root/n1"},
		{NoteID: "n2", Title: "Groceries", Path: "root/n2"},
	}}
	_, h := newPicker(f, nil)

	typeAndSearch(t, h, "groc")
	assert.Equal(t, "groc", f.queries[len(f.queries)-1])
	assert.True(t, h.ViewContains("Groceries"))

	r := pickResult(t, h.SendEnter())
	assert.Equal(t, "n2", r.Note.NoteID, "trigram rank moves the title match first")
	assert.Equal(t, "ctx", r.Context)
}

func TestNotePicker_NavigateResults(t *testing.T) {
	f := &fakeSearch{results: []notes.SearchResult{
		{NoteID: "n1", Title: "Note one"},
		{NoteID: "n2", Title: "Note two"},
	}}
	_, h := newPicker(f, nil)
	typeAndSearch(t, h, "note")

	h.SendDown()
	r := pickResult(t, h.SendEnter())
	assert.Equal(t, "n2", r.Note.NoteID)
}

func TestNotePicker_PinnedShownForEmptyQuery(t *testing.T) {
	pinned := []notes.SearchResult{{NoteID: notes.RootID, Title: "(root)", Path: notes.RootID}}
	f := &fakeSearch{}
	_, h := newPicker(f, pinned)

	assert.True(t, h.ViewContains("(root)"))
	r := pickResult(t, h.SendEnter())
	assert.Equal(t, notes.RootID, r.Note.NoteID)
}

func TestNotePicker_ClearingQueryRestoresPinned(t *testing.T) {
	pinned := []notes.SearchResult{{NoteID: "p", Title: "Pinned"}}
	f := &fakeSearch{results: []notes.SearchResult{{NoteID: "x", Title: "X"}}}
	_, h := newPicker(f, pinned)

	typeAndSearch(t, h, "x")
	assert.False(t, h.ViewContains("Pinned"))

	cmd := h.SendSpecialKey(tea.KeyBackspace)
	_, searched := testutil.FindMsg[resultsMsg](cmd)
	assert.False(t, searched)
	assert.True(t, h.ViewContains("Pinned"))
}

func TestNotePicker_StaleResultsIgnored(t *testing.T) {
	f := &fakeSearch{results: []notes.SearchResult{{NoteID: "old", Title: "Old"}}}
	m, h := newPicker(f, nil)

	h.Type("a")
	h.SendMsg(resultsMsg{seq: m.seq - 1, query: "", results: f.results})

	assert.False(t, h.ViewContains("Old"))
	assert.True(t, h.ViewContains("Searching..."))
}

func TestNotePicker_DebounceDropsSupersededTicks(t *testing.T) {
	f := &fakeSearch{}
	m, h := newPicker(f, nil)
	m.SetDebounce(DefaultDebounce)

	h.Type("ab")
	assert.Nil(t, h.SendMsg(debounceMsg{seq: m.seq - 1}))
	assert.NotNil(t, h.SendMsg(debounceMsg{seq: m.seq}))
}

func TestNotePicker_SearchError(t *testing.T) {
	f := &fakeSearch{err: errors.New("server down")}
	_, h := newPicker(f, nil)

	typeAndSearch(t, h, "q")

	assert.True(t, h.ViewContains("Search failed: server down"))
	assert.Nil(t, h.SendEnter())
}

func TestNotePicker_EscapeCancels(t *testing.T) {
	_, h := newPicker(&fakeSearch{}, nil)

	r := pickResult(t, h.SendEscape())
	assert.True(t, r.Canceled)
}
