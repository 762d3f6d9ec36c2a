package helpbindings

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/ui/action"
	"github.com/llehouerou/notedeck/internal/ui/testutil"
)

type staticSource []keyboard.Action

func (s staticSource) KeyboardActions(context.Context) ([]keyboard.Action, error) {
	return s, nil
}

func (s staticSource) ShortcutsForNotes(context.Context) (map[string]string, error) {
	return nil, nil
}

func sampleActions() []keyboard.Action {
	return []keyboard.Action{
		{Separator: "Note navigation"},
		{Name: "scrollToTop", Shortcuts: []string{"Home"}, Scope: keyboard.ScopeTextDetail, Description: "Scroll to top"},
		{Name: "jumpToNote", Shortcuts: []string{"CommandOrControl+J"}, Scope: keyboard.ScopeWindow, Description: "Jump to note"},
		{Name: "collapseTree", Shortcuts: []string{"Alt+C"}, Scope: keyboard.ScopeNoteTree, Description: "Collapse tree"},
		{Name: "createNoteIntoInbox", Shortcuts: []string{"global:CommandOrControl+Alt+P", "Alt+P"}, Scope: keyboard.ScopeWindow, Description: "New inbox note"},
	}
}

// newTestHelpPopup loads the actions through a registry like the app does.
func newTestHelpPopup(t *testing.T, actions []keyboard.Action, height int) *testutil.PopupHarness {
	t.Helper()
	reg := keyboard.NewRegistry(staticSource(actions), nil)
	loaded, err := reg.Actions(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	m := New()
	m.SetActions(loaded)
	if err := reg.UpdateDisplayedShortcuts(context.Background(), &m); err != nil {
		t.Fatal(err)
	}
	h := testutil.NewPopupHarness(&m)
	h.SetSize(80, height)
	return h
}

func lastAction(t *testing.T, h *testutil.PopupHarness) action.Action {
	t.Helper()
	cmds := h.Commands()
	if len(cmds) == 0 {
		t.Fatal("expected command, got none")
	}
	msg, ok := testutil.FindMsg[action.Msg](cmds[len(cmds)-1])
	if !ok {
		t.Fatal("expected action.Msg")
	}
	return msg.Action
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"esc", "q", "?"} {
		t.Run(key, func(t *testing.T) {
			h := newTestHelpPopup(t, sampleActions(), 40)
			if key == "esc" {
				h.SendEscape()
			} else {
				h.SendKey(key)
			}
			if _, ok := lastAction(t, h).(Close); !ok {
				t.Fatalf("expected Close, got %T", lastAction(t, h))
			}
		})
	}
}

func TestHelpBindings_EnterTriggersSelected(t *testing.T) {
	h := newTestHelpPopup(t, sampleActions(), 40)

	h.SendDown()
	h.SendEnter()

	trig, ok := lastAction(t, h).(Trigger)
	if !ok {
		t.Fatalf("expected Trigger, got %T", lastAction(t, h))
	}
	// window actions come first in source order
	if trig.Name != "createNoteIntoInbox" {
		t.Errorf("Name = %q, want %q", trig.Name, "createNoteIntoInbox")
	}
}

func TestHelpBindings_EnterWithoutActions(t *testing.T) {
	h := newTestHelpPopup(t, nil, 40)
	if cmd := h.SendEnter(); cmd != nil {
		t.Error("expected no command")
	}
}

func TestHelpBindings_ViewGroupsByScope(t *testing.T) {
	h := newTestHelpPopup(t, sampleActions(), 40)
	view := h.View()

	for _, want := range []string{"Keyboard shortcuts", "Global", "Note Tree", "Note Text", "Jump to note", "CommandOrControl+J"} {
		if !testutil.ContainsLine(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if testutil.ContainsLine(view, "Note navigation") {
		t.Error("separators should not be listed")
	}
}

func TestHelpBindings_GlobalShortcutsShownSeparately(t *testing.T) {
	h := newTestHelpPopup(t, sampleActions(), 40)

	line := testutil.FindLine(h.View(), "New inbox note")
	if line == "" {
		t.Fatal("missing inbox action")
	}
	if !testutil.ContainsLine(line, "Alt+P") || !testutil.ContainsLine(line, "(global: CommandOrControl+Alt+P)") {
		t.Errorf("line = %q", line)
	}
}

func TestHelpBindings_ScrollFollowsCursor(t *testing.T) {
	var actions []keyboard.Action
	for i := range 30 {
		actions = append(actions, keyboard.Action{
			Name:        fmt.Sprintf("action%02d", i),
			Shortcuts:   []string{fmt.Sprintf("F%d", i+1)},
			Scope:       keyboard.ScopeWindow,
			Description: fmt.Sprintf("Action %02d", i),
		})
	}
	h := newTestHelpPopup(t, actions, 20)

	if h.ViewContains("Action 29") {
		t.Fatal("last action should start off screen")
	}
	for range 29 {
		h.SendSpecialKey(tea.KeyDown)
	}
	if !h.ViewContains("Action 29") {
		t.Error("cursor row should be scrolled into view")
	}
	if !h.ViewContains("j/k move") {
		t.Error("expected scroll hint")
	}
}

func TestHelpBindings_EmptyViewWhenNoSize(t *testing.T) {
	m := New()
	if m.View() != "" {
		t.Error("expected empty view without size")
	}
}
