// internal/app/persistence.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/app/navctl"
	"github.com/llehouerou/notedeck/internal/errmsg"
	"github.com/llehouerou/notedeck/internal/notes"
	"github.com/llehouerou/notedeck/internal/state"
)

// SaveNavigationState persists the active note, focus and expanded paths.
func (m *Model) SaveNavigationState() {
	if m.StateMgr == nil {
		return
	}
	m.StateMgr.SaveNavigation(state.NavigationState{
		ActiveNotePath: m.session.ActiveNotePath(),
		Focus:          m.Focus.Focus().String(),
		ExpandedPaths:  m.Tree.Expanded(),
	})
}

// handleSessionRestored reopens the tree where the previous run left it.
// Without saved state the top level of the tree is loaded.
func (m *Model) handleSessionRestored(msg SessionRestoredMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("session restore failed", "error", msg.Err)
		m.Popups.ShowError(errmsg.Format(errmsg.OpSessionRestore, msg.Err))
	}

	var load []string
	if st := msg.State; st != nil {
		m.Focus.SetFocus(navctl.ParseFocus(st.Focus))
		load = m.Tree.SetExpanded(st.ExpandedPaths)
		if st.ActiveNotePath != "" {
			load = appendMissing(load, m.Tree.Reveal(st.ActiveNotePath)...)
		}
	}
	if !m.Tree.Loaded(notes.RootID) {
		load = appendMissing([]string{notes.RootID}, load...)
	}
	return m.loadChildrenCmd(load...)
}
