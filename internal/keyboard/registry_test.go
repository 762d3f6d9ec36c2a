package keyboard_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/notedeck/internal/events"
	"github.com/llehouerou/notedeck/internal/keybind"
	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/keyboard/mocks"
)

func newTestSlogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

func fetchedActions() []keyboard.Action {
	return []keyboard.Action{
		{Separator: "Note navigation"},
		{Name: "JumpToNote", Shortcuts: []string{"ctrl+j", "global:ctrl+shift+j"}, Scope: "window"},
		{Name: "ShowNoteSource", Shortcuts: []string{""}, Scope: "window"},
		{Separator: "Tree"},
		{Name: "CloneNotesTo", Shortcuts: []string{"ctrl+shift+c"}, Scope: "note-tree"},
		{Name: "moveNotesTo", Shortcuts: []string{"ctrl+shift+x", "global:alt+m"}, Scope: "note-tree"},
		{Name: "ShowRecentChanges", Shortcuts: []string{"ctrl+r", "f2"}, Scope: "window"},
	}
}

func newRegistry(t *testing.T, actions []keyboard.Action) (*keyboard.Registry, *mocks.MockSource, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().KeyboardActions(gomock.Any()).Return(actions, nil).Times(1)
	logger, buf := newTestSlogger()
	return keyboard.NewRegistry(src, logger), src, buf
}

type triggerRecorder struct {
	mu    sync.Mutex
	names []string
}

func (r *triggerRecorder) TriggerCommand(name string) tea.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	return nil
}

func TestRegistry_LoadDropsSeparatorsAndNormalizesNames(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())
	ctx := context.Background()

	all, err := reg.Actions(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(all))
	for _, a := range all {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"jumpToNote", "showNoteSource", "cloneNotesTo", "moveNotesTo", "showRecentChanges"}, names)

	a, err := reg.Action(ctx, "jumpToNote")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+j"}, a.Shortcuts)
	assert.Equal(t, []string{"ctrl+shift+j"}, a.GlobalShortcuts)
	assert.Equal(t, "window", a.Scope)
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"JumpToNote":   "jumpToNote",
		"jumpToNote":   "jumpToNote",
		"ABC":          "aBC",
		"":             "",
		"Ëdit":         "ëdit",
		"X":            "x",
		"showNoteInfo": "showNoteInfo",
	}
	for in, want := range tests {
		assert.Equal(t, want, keyboard.NormalizeName(in), "input %q", in)
	}
}

func TestRegistry_ActionsForScopePreservesOrder(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())

	window, err := reg.ActionsForScope(context.Background(), keyboard.ScopeWindow)
	require.NoError(t, err)
	require.Len(t, window, 3)
	assert.Equal(t, "jumpToNote", window[0].Name)
	assert.Equal(t, "showNoteSource", window[1].Name)
	assert.Equal(t, "showRecentChanges", window[2].Name)

	none, err := reg.ActionsForScope(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRegistry_ReturnedActionsAreCopies(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())
	ctx := context.Background()

	a, err := reg.Action(ctx, "showRecentChanges")
	require.NoError(t, err)
	a.Shortcuts[0] = "mutated"

	again, err := reg.Action(ctx, "showRecentChanges")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+r", "f2"}, again.Shortcuts)
}

func TestRegistry_LoudAndSilentLookup(t *testing.T) {
	reg, _, logs := newRegistry(t, fetchedActions())
	ctx := context.Background()

	_, ok, err := reg.LookupAction(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "Cannot find action")

	_, err = reg.Action(ctx, "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, keyboard.ErrUnknownAction)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestRegistry_TriggerActionWithoutHandler(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())

	err := reg.TriggerAction(context.Background(), "jumpToNote")
	require.Error(t, err)
	assert.ErrorIs(t, err, keyboard.ErrNoHandler)

	err = reg.TriggerAction(context.Background(), "missing")
	assert.ErrorIs(t, err, keyboard.ErrUnknownAction)
}

func TestRegistry_TriggerActionRunsGlobalHandler(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())
	ctx := context.Background()

	calls := 0
	require.NoError(t, reg.SetGlobalActionHandler(ctx, "jumpToNote", func(context.Context) error {
		calls++
		return nil
	}))

	a, err := reg.Action(ctx, "jumpToNote")
	require.NoError(t, err)
	assert.True(t, a.HasHandler())

	require.NoError(t, reg.TriggerAction(ctx, "jumpToNote"))
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	require.NoError(t, reg.SetGlobalActionHandler(ctx, "jumpToNote", func(context.Context) error { return boom }))
	assert.ErrorIs(t, reg.TriggerAction(ctx, "jumpToNote"), boom)

	assert.ErrorIs(t, reg.SetGlobalActionHandler(ctx, "missing", nil), keyboard.ErrUnknownAction)
}

func TestRegistry_SetupActionsForElement(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())
	ctx := context.Background()

	tree := keybind.NewTable()
	rec := &triggerRecorder{}
	require.NoError(t, reg.SetupActionsForElement(ctx, keyboard.ScopeNoteTree, tree, rec))

	assert.ElementsMatch(t, []string{"ctrl+shift+c", "ctrl+shift+x"}, tree.Shortcuts())
	assert.False(t, tree.Bound("alt+m"), "global: shortcuts must not be bound on elements")

	handled, _ := tree.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.False(t, handled)

	otherTree := keybind.NewTable()
	require.NoError(t, reg.SetupActionsForElement(ctx, keyboard.ScopeNoteTree, otherTree, rec))
	assert.Equal(t, tree.Len(), otherTree.Len(), "each call creates independent bindings")
}

func TestRegistry_SetupActionsForElementTriggersComponent(t *testing.T) {
	actions := []keyboard.Action{
		{Name: "ScrollToActiveNote", Shortcuts: []string{"ctrl+.", "", "global:ctrl+alt+."}, Scope: "note-tree"},
	}
	reg, _, _ := newRegistry(t, actions)

	binder := &recordingBinder{}
	rec := &triggerRecorder{}
	require.NoError(t, reg.SetupActionsForElement(context.Background(), keyboard.ScopeNoteTree, binder, rec))

	require.Equal(t, []string{"ctrl+."}, binder.shortcuts)
	binder.callbacks[0]()
	assert.Equal(t, []string{"scrollToActiveNote"}, rec.names)
}

type recordingBinder struct {
	shortcuts []string
	callbacks []keybind.Callback
}

func (b *recordingBinder) BindShortcut(shortcut string, cb keybind.Callback) {
	b.shortcuts = append(b.shortcuts, shortcut)
	b.callbacks = append(b.callbacks, cb)
}

func TestRegistry_SetElementActionHandler(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())
	ctx := context.Background()

	binder := &recordingBinder{}
	called := 0
	require.NoError(t, reg.SetElementActionHandler(ctx, binder, "showRecentChanges", func() tea.Cmd {
		called++
		return nil
	}))
	assert.Equal(t, []string{"ctrl+r", "f2"}, binder.shortcuts)
	binder.callbacks[1]()
	assert.Equal(t, 1, called)

	a, err := reg.Action(ctx, "showRecentChanges")
	require.NoError(t, err)
	assert.False(t, a.HasHandler(), "element handlers must not become global handlers")

	err = reg.SetElementActionHandler(ctx, binder, "missing", func() tea.Cmd { return nil })
	assert.ErrorIs(t, err, keyboard.ErrUnknownAction)
}

func TestRegistry_LoadsOnce(t *testing.T) {
	reg, _, _ := newRegistry(t, fetchedActions())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.ActionsForScope(context.Background(), keyboard.ScopeWindow)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestRegistry_LoadFailureIsShared(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	src.EXPECT().KeyboardActions(gomock.Any()).Return(nil, errors.New("server down")).Times(1)
	logger, _ := newTestSlogger()
	reg := keyboard.NewRegistry(src, logger)

	_, err := reg.Action(context.Background(), "jumpToNote")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server down")
	assert.NotErrorIs(t, err, keyboard.ErrUnknownAction)

	_, _, err = reg.LookupAction(context.Background(), "jumpToNote")
	assert.Error(t, err)
}

func TestRegistry_WaitHonorsContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	release := make(chan struct{})
	src.EXPECT().KeyboardActions(gomock.Any()).DoAndReturn(func(context.Context) ([]keyboard.Action, error) {
		<-release
		return nil, nil
	}).Times(1)
	reg := keyboard.NewRegistry(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, reg.Wait(ctx), context.Canceled)

	close(release)
	assert.NoError(t, reg.Wait(context.Background()))
}

type stubNavigator struct {
	opened []string
}

func (n *stubNavigator) SetNote(noteID string) tea.Cmd {
	n.opened = append(n.opened, noteID)
	return nil
}

func TestRegistry_Bootstrap(t *testing.T) {
	reg, src, _ := newRegistry(t, []keyboard.Action{
		{Name: "JumpToNote", Shortcuts: []string{"ctrl+j", "global:ctrl+shift+j"}, Scope: "window"},
		{Name: "CloneNotesTo", Shortcuts: []string{"ctrl+shift+c"}, Scope: "note-tree"},
	})
	src.EXPECT().ShortcutsForNotes(gomock.Any()).Return(map[string]string{"alt+1": "inbox"}, nil)

	global := keybind.NewTable()
	bus := events.NewBus()
	nav := &stubNavigator{}

	var got []events.Params
	bus.Subscribe("jumpToNote", func(p events.Params) tea.Cmd {
		got = append(got, p)
		return nil
	})

	require.NoError(t, reg.Bootstrap(context.Background(), global, bus, nav))
	assert.Equal(t, []string{"alt+1", "ctrl+j"}, global.Shortcuts())

	handled, cmd := global.Handle(tea.KeyMsg{Type: tea.KeyCtrlJ})
	require.True(t, handled)
	require.NotNil(t, cmd)
	msg, ok := cmd().(events.TriggeredMsg)
	require.True(t, ok)
	bus.Deliver(msg)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0])
	assert.Empty(t, got[0])

	handled, _ = global.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1"), Alt: true})
	require.True(t, handled)
	assert.Equal(t, []string{"inbox"}, nav.opened)
}

func TestRegistry_BootstrapNoteShortcutFailureStillBindsActions(t *testing.T) {
	reg, src, _ := newRegistry(t, []keyboard.Action{
		{Name: "JumpToNote", Shortcuts: []string{"ctrl+j"}, Scope: "window"},
	})
	src.EXPECT().ShortcutsForNotes(gomock.Any()).Return(nil, errors.New("offline"))

	global := keybind.NewTable()
	err := reg.Bootstrap(context.Background(), global, events.NewBus(), &stubNavigator{})
	require.Error(t, err)
	assert.True(t, global.Bound("ctrl+j"))
}

func TestRegistry_DuplicateNameLastWins(t *testing.T) {
	reg, _, _ := newRegistry(t, []keyboard.Action{
		{Name: "JumpToNote", Shortcuts: []string{"ctrl+a"}, Scope: "window"},
		{Name: "jumpToNote", Shortcuts: []string{"ctrl+b"}, Scope: "note-tree"},
	})
	ctx := context.Background()

	a, err := reg.Action(ctx, "jumpToNote")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+b"}, a.Shortcuts)
	assert.Equal(t, "note-tree", a.Scope)

	window, err := reg.ActionsForScope(ctx, keyboard.ScopeWindow)
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, []string{"ctrl+a"}, window[0].Shortcuts)
}

func TestRegistry_NilSourceFailsLoad(t *testing.T) {
	logger, _ := newTestSlogger()
	reg := keyboard.NewRegistry(nil, logger)

	assert.ErrorIs(t, reg.Wait(context.Background()), keyboard.ErrNoSource)
	_, err := reg.Action(context.Background(), "jumpToNote")
	assert.ErrorIs(t, err, keyboard.ErrNoSource)
}

func TestRegistry_BootstrapSkipsEmptyShortcuts(t *testing.T) {
	reg, src, _ := newRegistry(t, []keyboard.Action{
		{Name: "JumpToNote", Shortcuts: []string{"", "ctrl+j"}, Scope: "window"},
		{Name: "ShowNoteSource", Shortcuts: []string{""}, Scope: "window"},
	})
	src.EXPECT().ShortcutsForNotes(gomock.Any()).Return(nil, nil)

	binder := &recordingBinder{}
	require.NoError(t, reg.Bootstrap(context.Background(), binder, events.NewBus(), &stubNavigator{}))
	assert.Equal(t, []string{"ctrl+j"}, binder.shortcuts)
}
