// Package mdpaste provides a multi-line popup for entering markdown.
package mdpaste

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Model wraps a textarea. ctrl+s submits, esc cancels.
type Model struct {
	ui.Base
	title   string
	area    textarea.Model
	context any
}

// New creates a markdown entry popup with optional initial text.
func New(title, initial string, context any) *Model {
	area := textarea.New()
	area.Placeholder = "Paste or type markdown"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.Cursor.SetMode(cursor.CursorStatic)
	area.SetValue(initial)
	area.Focus()
	return &Model{title: title, area: area, context: context}
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.area.SetWidth(max(width-6, 10))
	m.area.SetHeight(max(height-8, 3))
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Context: ctx, Canceled: true})
			}
		case "ctrl+s":
			text := strings.TrimSpace(m.area.Value())
			if text == "" {
				return m, nil
			}
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	return s.Title.Render(m.title) + "\n\n" + m.area.View() + "\n\n" +
		s.Subtle.Render("ctrl+s: insert, esc: cancel")
}
