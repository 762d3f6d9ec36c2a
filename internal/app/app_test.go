package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/notify"
	"github.com/llehouerou/notedeck/internal/state"
)

var errBoom = errors.New("boom")

func item(parent, id, title string, hasChildren bool) notes.TreeItem {
	return notes.TreeItem{
		Branch:      notes.Branch{ID: notes.BranchID(parent, id), NoteID: id, ParentID: parent},
		Title:       title,
		HasChildren: hasChildren,
	}
}

// fakeBackend serves a small tree: root > (work > meeting), inbox.
type fakeBackend struct {
	mu sync.Mutex

	actions       []keyboard.Action
	noteShortcuts map[string]string
	children      map[string][]notes.TreeItem
	childrenErr   error
	paths         map[string]string

	contentLoads map[string]int
	created      []string
	cloned       []string
	clonedTo     string
	nextID       int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		actions: []keyboard.Action{
			{Separator: "Navigation"},
			{Name: "JumpToNote", Shortcuts: []string{"CommandOrControl+J"}, Scope: keyboard.ScopeWindow, Description: "Jump"},
			{Name: "reloadTree", Shortcuts: []string{"F5"}, Scope: keyboard.ScopeWindow},
			{Name: "createNoteIntoInbox", Shortcuts: []string{"global:Ctrl+Alt+P", "Alt+P"}, Scope: keyboard.ScopeWindow},
			{Name: "showNoteInfo", Shortcuts: []string{"Alt+I"}, Scope: keyboard.ScopeWindow},
			{Name: "showHelp", Shortcuts: []string{"F1"}, Scope: keyboard.ScopeWindow},
			{Name: "createNoteInto", Shortcuts: []string{"Alt+N"}, Scope: keyboard.ScopeNoteTree},
			{Name: "addNoteBelowToSelection", Shortcuts: []string{"Shift+Down"}, Scope: keyboard.ScopeNoteTree},
			{Name: "clearSelection", Shortcuts: []string{"Escape"}, Scope: keyboard.ScopeNoteTree},
			{Name: "cloneNotesTo", Shortcuts: []string{"Alt+K"}, Scope: keyboard.ScopeNoteTree},
			{Name: "copyNoteContent", Shortcuts: []string{"Alt+Y"}, Scope: keyboard.ScopeTextDetail},
			{Name: "scrollToTop", Shortcuts: []string{"Home"}, Scope: keyboard.ScopeTextDetail},
		},
		noteShortcuts: map[string]string{"Alt+M": "meeting"},
		children: map[string][]notes.TreeItem{
			notes.RootID: {
				item(notes.RootID, "work", "Work", true),
				item(notes.RootID, "inbox", "Inbox", false),
			},
			"work": {item("work", "meeting", "Meeting", false)},
		},
		paths:        map[string]string{"meeting": "root/work/meeting"},
		contentLoads: make(map[string]int),
	}
}

func (f *fakeBackend) KeyboardActions(context.Context) ([]keyboard.Action, error) {
	return f.actions, nil
}

func (f *fakeBackend) ShortcutsForNotes(context.Context) (map[string]string, error) {
	return f.noteShortcuts, nil
}

func (f *fakeBackend) Children(_ context.Context, noteID string) ([]notes.TreeItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.childrenErr != nil {
		return nil, f.childrenErr
	}
	return append([]notes.TreeItem(nil), f.children[noteID]...), nil
}

func (f *fakeBackend) CreateNote(_ context.Context, parentID, title string) (notes.Note, notes.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := "new" + string(rune('0'+f.nextID))
	it := item(parentID, id, title, false)
	f.children[parentID] = append(f.children[parentID], it)
	f.created = append(f.created, parentID+":"+title)
	return notes.Note{ID: id, Title: title, Type: notes.TypeText}, it.Branch, nil
}

func (f *fakeBackend) Note(_ context.Context, id string) (notes.Note, error) {
	return notes.Note{ID: id, Title: strings.ToUpper(id[:1]) + id[1:], Type: notes.TypeText, Modified: time.Now()}, nil
}

func (f *fakeBackend) Content(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contentLoads[id]++
	return id + " content", nil
}

func (f *fakeBackend) AppendMarkdown(context.Context, string, string) error { return nil }

func (f *fakeBackend) NotePath(_ context.Context, id string) (string, error) {
	if p, ok := f.paths[id]; ok {
		return p, nil
	}
	return notes.JoinPath(notes.RootID, id), nil
}

func (f *fakeBackend) Attributes(context.Context, string) ([]notes.Attribute, error) {
	return nil, nil
}

func (f *fakeBackend) Revisions(context.Context, string) ([]notes.Revision, error) {
	return nil, nil
}

func (f *fakeBackend) Revision(context.Context, string) (notes.Revision, error) {
	return notes.Revision{}, nil
}

func (f *fakeBackend) LinkMap(context.Context, string) (notes.LinkMap, error) {
	return notes.LinkMap{}, nil
}

func (f *fakeBackend) RecentChanges(context.Context, int) ([]notes.RecentChange, error) {
	return nil, nil
}

func (f *fakeBackend) Search(context.Context, string) ([]notes.SearchResult, error) {
	return nil, nil
}

func (f *fakeBackend) Branch(context.Context, string) (notes.Branch, error) {
	return notes.Branch{}, nil
}

func (f *fakeBackend) SetBranchPrefix(context.Context, string, string) error { return nil }

func (f *fakeBackend) CloneNotes(_ context.Context, ids []string, parentID string) ([]notes.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cloned = append(f.cloned, ids...)
	f.clonedTo = parentID
	out := make([]notes.Branch, len(ids))
	for i, id := range ids {
		out[i] = notes.Branch{ID: notes.BranchID(parentID, id), NoteID: id, ParentID: parentID}
	}
	return out, nil
}

func (f *fakeBackend) MoveBranches(context.Context, []string, string) ([]notes.Branch, error) {
	return nil, nil
}

func (f *fakeBackend) loads(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contentLoads[id]
}

type fakeNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (n *fakeNotifier) Notify(notif notify.Notification) (uint32, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bodies = append(n.bodies, notif.Body)
	return uint32(len(n.bodies)), nil
}

func (n *fakeNotifier) Close(uint32) error { return nil }

// --- driver ---

// cmdTimeout drops commands that wait on ticks or channels.
const cmdTimeout = 150 * time.Millisecond

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// settle runs cmds and feeds every message back until nothing is left.
func settle(t *testing.T, m Model, cmds ...tea.Cmd) Model {
	t.Helper()
	queue := cmds
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "update loop does not settle")
		cmd := queue[0]
		queue = queue[1:]
		for _, msg := range collect(cmd) {
			if _, quit := msg.(tea.QuitMsg); quit {
				continue
			}
			var next tea.Cmd
			m, next = update(m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f5":
		return tea.KeyMsg{Type: tea.KeyF5}
	case "ctrl+j":
		return tea.KeyMsg{Type: tea.KeyCtrlJ}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	}
	if r, ok := strings.CutPrefix(s, "alt+"); ok {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(m, key(k))
		m = settle(t, m, cmd)
	}
	return m
}

type harness struct {
	backend  *fakeBackend
	state    *state.Mock
	notifier *fakeNotifier
}

func start(t *testing.T, h *harness) Model {
	t.Helper()
	if h.backend == nil {
		h.backend = newFakeBackend()
	}
	if h.state == nil {
		h.state = state.NewMock()
	}
	h.notifier = &fakeNotifier{}

	m := New(Options{
		Backend:  h.backend,
		State:    h.state,
		Reporter: notify.NewReporter(h.notifier, time.Second),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return settle(t, m, m.setupBindingsCmd(), m.restoreSessionCmd())
}

func paths(m Model) []string {
	var out []string
	for _, r := range m.Tree.Rows() {
		out = append(out, r.Path)
	}
	return out
}
