package keyboard

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/events"
)

// Dispatcher emits process-wide events named after actions.
type Dispatcher interface {
	Trigger(name string, params events.Params) tea.Cmd
}

// NoteNavigator opens a note in the active context.
type NoteNavigator interface {
	SetNote(noteID string) tea.Cmd
}

// Bootstrap binds the window-scope actions on global so each shortcut dispatches
// an event named after its action, then binds the shortcuts declared on notes so
// they open their note directly. The two fetches are independent: a failure in
// one does not prevent the other from binding.
func (r *Registry) Bootstrap(ctx context.Context, global Binder, bus Dispatcher, nav NoteNavigator) error {
	var errs []error

	if err := r.bindWindowActions(ctx, global, bus); err != nil {
		errs = append(errs, err)
	}
	if err := r.bindNoteShortcuts(ctx, global, nav); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Registry) bindWindowActions(ctx context.Context, global Binder, bus Dispatcher) error {
	actions, err := r.ActionsForScope(ctx, ScopeWindow)
	if err != nil {
		return err
	}

	for _, a := range actions {
		name := a.Name
		for _, shortcut := range a.Shortcuts {
			if shortcut == "" {
				continue
			}
			// A fresh empty Params per press: listeners may read or extend it.
			global.BindShortcut(shortcut, func() tea.Cmd {
				return bus.Trigger(name, events.Params{})
			})
		}
	}
	return nil
}

func (r *Registry) bindNoteShortcuts(ctx context.Context, global Binder, nav NoteNavigator) error {
	if r.src == nil {
		return ErrNoSource
	}
	shortcuts, err := r.src.ShortcutsForNotes(ctx)
	if err != nil {
		r.logger.Error("keyboard shortcuts for notes load failed", "error", err)
		return fmt.Errorf("load keyboard shortcuts for notes: %w", err)
	}

	for shortcut, noteID := range shortcuts {
		global.BindShortcut(shortcut, func() tea.Cmd {
			return nav.SetNote(noteID)
		})
	}
	r.logger.Debug("note shortcuts bound", "count", len(shortcuts))
	return nil
}
