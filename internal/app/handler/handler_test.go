package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResults(t *testing.T) {
	if NotHandled.Handled || NotHandled.Cmd != nil {
		t.Error("NotHandled should be empty")
	}
	if !HandledNoCmd.Handled || HandledNoCmd.Cmd != nil {
		t.Error("HandledNoCmd should be handled without command")
	}
	cmd := func() tea.Msg { return "test" }
	if r := Handled(cmd); !r.Handled || r.Cmd == nil {
		t.Error("Handled(cmd) should carry the command")
	}
}

func TestChain_NoHandlers(t *testing.T) {
	handled, cmd := Chain(key("a"))
	if handled || cmd != nil {
		t.Error("Chain with no handlers should not handle")
	}
}

func TestChain_StopsAtFirstHandler(t *testing.T) {
	var calls []string
	record := func(name string, r Result) Handler {
		return func(tea.KeyMsg) Result {
			calls = append(calls, name)
			return r
		}
	}

	handled, cmd := Chain(key("a"),
		record("first", NotHandled),
		record("second", Handled(func() tea.Msg { return "second" })),
		record("third", HandledNoCmd),
	)

	if !handled {
		t.Fatal("expected handled")
	}
	if cmd == nil || cmd() != "second" {
		t.Error("expected the second handler's command")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestChain_PassesKey(t *testing.T) {
	var got string
	Chain(key("x"), func(msg tea.KeyMsg) Result {
		got = msg.String()
		return NotHandled
	})
	if got != "x" {
		t.Errorf("handler got %q, want %q", got, "x")
	}
}

func TestTable(t *testing.T) {
	tests := []struct {
		name    string
		handle  func(tea.KeyMsg) (bool, tea.Cmd)
		handled bool
	}{
		{"nil", nil, false},
		{"miss", func(tea.KeyMsg) (bool, tea.Cmd) { return false, nil }, false},
		{"hit", func(tea.KeyMsg) (bool, tea.Cmd) { return true, nil }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := Table(tt.handle)(key("a")); r.Handled != tt.handled {
				t.Errorf("Handled = %v, want %v", r.Handled, tt.handled)
			}
		})
	}
}
