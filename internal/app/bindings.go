// internal/app/bindings.go
package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/events"
	"github.com/llehouerou/notedeck/internal/keyboard"
)

var errNoBackend = errors.New("no notes server configured")

// detailActions are bound on the detail pane table one by one.
var detailActions = []string{
	actionScrollToTop,
	actionScrollToBottom,
	actionCopyNoteContent,
	actionPasteMarkdownIntoText,
}

// setupBindingsCmd binds every shortcut once the action catalog is loaded.
func (m Model) setupBindingsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return BindingsReadyMsg{Err: m.setupBindings(ctx)}
	}
}

// setupBindings wires window actions and note shortcuts to the global table,
// pane actions to the pane tables, and a global handler to every action so
// the help popup can run it. Each part is attempted even when another fails.
func (m Model) setupBindings(ctx context.Context) error {
	if m.backend == nil {
		return errNoBackend
	}
	var errs []error

	if err := m.registry.Bootstrap(ctx, m.global, m.bus, noteNavigator{m: m}); err != nil {
		errs = append(errs, err)
	}

	if err := m.registry.SetupActionsForElement(ctx, keyboard.ScopeNoteTree, m.Tree.table, m.Tree); err != nil {
		errs = append(errs, err)
	}

	for _, name := range detailActions {
		detail := m.Detail
		err := m.registry.SetElementActionHandler(ctx, detail.table, name, func() tea.Cmd {
			return detail.TriggerCommand(name)
		})
		if errors.Is(err, keyboard.ErrUnknownAction) {
			m.logger.Warn("detail action missing from catalog", "action", name)
			continue
		}
		if err != nil {
			errs = append(errs, err)
			break
		}
	}

	actions, err := m.registry.Actions(ctx)
	if err != nil {
		errs = append(errs, err)
		return errors.Join(errs...)
	}
	for _, a := range actions {
		h := m.enqueue(triggeredAction{name: a.Name, scope: a.Scope})
		if err := m.registry.SetGlobalActionHandler(ctx, a.Name, h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dispatchAction runs an action queued by its global handler.
func (m *Model) dispatchAction(a triggeredAction) tea.Cmd {
	switch a.scope {
	case keyboard.ScopeWindow:
		if !m.bus.HasListeners(a.name) {
			m.logger.Info("window action has no listener", "action", a.name)
			return nil
		}
		return m.bus.Trigger(a.name, events.Params{})
	case keyboard.ScopeNoteTree:
		return m.Tree.TriggerCommand(a.name)
	case keyboard.ScopeTextDetail:
		return m.Detail.TriggerCommand(a.name)
	}
	m.logger.Info("action scope not handled", "action", a.name, "scope", a.scope)
	return nil
}
