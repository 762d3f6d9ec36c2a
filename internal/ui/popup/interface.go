package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a dialog opened through OpenMsg. Its View is the inner content only;
// Frame draws the border and centers it.
type Popup interface {
	// Init runs once when the popup is shown, typically to focus an input.
	Init() tea.Cmd

	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string

	// SetSize gives the popup the inner area left by the frame.
	SetSize(width, height int)
}
