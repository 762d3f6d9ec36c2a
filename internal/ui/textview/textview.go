// Package textview provides a read-only scrollable text popup.
package textview

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/render"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// title, blank, blank, hint
const overhead = 4

// CopiedMsg reports the outcome of copying the text to the clipboard.
type CopiedMsg struct {
	Err error
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// Model shows text in a viewport.
type Model struct {
	ui.Base
	title    string
	text     string
	viewport viewport.Model
	status   string
}

// New creates a text popup.
func New(title, text string) *Model {
	m := &Model{
		title:    title,
		text:     text,
		viewport: viewport.New(0, 0),
	}
	m.viewport.SetContent(strings.Join(render.Lines(text), "\n"))
	return m
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.viewport.Width = max(width-6, 10)
	m.viewport.Height = max(height-overhead-4, 1)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case CopiedMsg:
		if msg.Err != nil {
			m.status = "Copy failed: " + msg.Err.Error()
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return popup.CloseMsg{} }
		case "y":
			text := m.text
			return m, func() tea.Msg {
				return CopiedMsg{Err: writeClipboard(text)}
			}
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	hint := "↑↓ scroll · y copy · esc close"
	if m.status != "" {
		hint = m.status
	}
	return s.Title.Render(m.title) + "\n\n" + m.viewport.View() + "\n\n" + s.Subtle.Render(hint)
}
