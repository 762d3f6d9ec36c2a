// internal/app/keys.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/app/handler"
	"github.com/llehouerou/notedeck/internal/app/navctl"
	"github.com/llehouerou/notedeck/internal/events"
)

// handleKeyMsg routes a key: active popup, focused pane shortcuts, window
// shortcuts, built-in keys, then pane navigation.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	_, cmd := handler.Chain(msg,
		handler.Table(m.Popups.HandleKey),
		m.handlePaneShortcuts,
		handler.Table(m.global.Handle),
		m.handleBuiltinKeys,
		m.handlePaneKeys,
	)
	return tea.Batch(cmd, m.syncActive())
}

func (m *Model) handlePaneShortcuts(msg tea.KeyMsg) handler.Result {
	if m.Focus.IsFocused(navctl.FocusDetail) {
		return handler.Table(m.Detail.table.Handle)(msg)
	}
	return handler.Table(m.Tree.table.Handle)(msg)
}

func (m *Model) handleBuiltinKeys(msg tea.KeyMsg) handler.Result {
	switch msg.String() {
	case "q", "ctrl+c":
		return handler.Handled(tea.Quit)
	case "tab", "shift+tab":
		m.Focus.Toggle()
		m.SaveNavigationState()
		return handler.HandledNoCmd
	case "?":
		return handler.Handled(m.bus.Trigger(actionShowHelp, events.Params{}))
	}
	return handler.NotHandled
}

func (m *Model) handlePaneKeys(msg tea.KeyMsg) handler.Result {
	if m.Focus.IsFocused(navctl.FocusDetail) {
		return handler.Handled(m.Detail.Update(msg))
	}

	before := m.Tree.Expanded()
	res := m.Tree.Update(msg)
	if len(res.Load) > 0 || len(m.Tree.Expanded()) != len(before) {
		m.SaveNavigationState()
	}
	return handler.Handled(m.loadChildrenCmd(res.Load...))
}
