// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/notedeck/internal/app/popupctl"
	"github.com/llehouerou/notedeck/internal/ui/render"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := m.Header.Render(m.width)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.Tree.View("Notes"), m.Detail.View())
	view := strings.Join([]string{header, panes, m.renderStatus()}, "\n")

	if m.Popups.ActivePopup() != popupctl.None {
		view = m.Popups.RenderOverlay(view)
	}
	return view
}

// renderStatus shows the last status message, or the active note path.
func (m Model) renderStatus() string {
	s := styles.T().S()
	const hint = "tab switch pane · ? help · q quit"

	text, style := m.status, s.Success
	if text == "" {
		text, style = m.session.ActiveNotePath(), s.Subtle
	}
	text = render.Truncate(text, max(m.width-lipgloss.Width(hint)-1, 0))
	return render.Row(style.Render(text), s.Subtle.Render(hint), m.width)
}
