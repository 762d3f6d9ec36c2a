// Package keyboard loads the server-declared keyboard actions once and binds
// their shortcuts to window-wide events, pane-local commands and handlers.
package keyboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/keybind"
)

// Scopes an action can be bound in.
const (
	ScopeWindow     = "window"
	ScopeNoteTree   = "note-tree"
	ScopeTextDetail = "text-detail"
)

// GlobalPrefix marks shortcuts meant for OS-level registration.
const GlobalPrefix = "global:"

var (
	// ErrUnknownAction is returned by loud lookups of an action name missing from the catalog.
	ErrUnknownAction = errors.New("cannot find keyboard action")
	// ErrNoHandler is returned when triggering an action nobody registered a global handler for.
	ErrNoHandler = errors.New("keyboard action has no handler")
	// ErrNoSource is the load error of a registry created without a source.
	ErrNoSource = errors.New("no keyboard action source")
)

// Handler is a global action handler run by TriggerAction.
type Handler func(ctx context.Context) error

// Action describes a keyboard-triggerable action.
// Separators in the server list decode to an Action with an empty Name.
type Action struct {
	Name            string   `json:"actionName,omitempty"`
	Shortcuts       []string `json:"effectiveShortcuts,omitempty"`
	GlobalShortcuts []string `json:"-"`
	Scope           string   `json:"scope,omitempty"`
	Description     string   `json:"description,omitempty"`
	Separator       string   `json:"separator,omitempty"`

	handler Handler
}

// IsSeparator reports whether the entry only groups actions for display.
func (a Action) IsSeparator() bool {
	return a.Name == ""
}

// HasHandler reports whether a global handler was registered.
func (a Action) HasHandler() bool {
	return a.handler != nil
}

// ShortcutText renders the effective shortcuts for display ("ctrl+j, f2").
func (a Action) ShortcutText() string {
	return strings.Join(a.Shortcuts, ", ")
}

func (a *Action) clone() Action {
	c := *a
	c.Shortcuts = slices.Clone(a.Shortcuts)
	c.GlobalShortcuts = slices.Clone(a.GlobalShortcuts)
	return c
}

// Source fetches action metadata from the backend.
//
//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/llehouerou/notedeck/internal/keyboard Source
type Source interface {
	KeyboardActions(ctx context.Context) ([]Action, error)
	ShortcutsForNotes(ctx context.Context) (map[string]string, error)
}

// Binder accepts shortcut bindings. keybind.Table implements it.
type Binder interface {
	BindShortcut(shortcut string, cb keybind.Callback)
}

// CommandTrigger is a component that runs commands by name.
type CommandTrigger interface {
	TriggerCommand(name string) tea.Cmd
}

// NormalizeName lower-cases only the first character of an action name.
func NormalizeName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// splitShortcuts separates in-app shortcuts from global: ones (prefix stripped).
func splitShortcuts(shortcuts []string) (local, global []string) {
	local = make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		if g, ok := strings.CutPrefix(s, GlobalPrefix); ok {
			global = append(global, g)
			continue
		}
		local = append(local, s)
	}
	return local, global
}
