// Package helpbindings provides a scrollable popup listing keyboard actions.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/ui"
	"github.com/llehouerou/notedeck/internal/ui/kbd"
	"github.com/llehouerou/notedeck/internal/ui/popup"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

var (
	_ popup.Popup        = (*Model)(nil)
	_ keyboard.Container = (*Model)(nil)
)

// scopeOrder defines the display order of action scopes.
var scopeOrder = []string{
	keyboard.ScopeWindow,
	keyboard.ScopeNoteTree,
	keyboard.ScopeTextDetail,
}

// scopeLabels maps scopes to display labels.
var scopeLabels = map[string]string{
	keyboard.ScopeWindow:     "Global",
	keyboard.ScopeNoteTree:   "Note Tree",
	keyboard.ScopeTextDetail: "Note Text",
}

type row struct {
	action keyboard.Action
	label  *kbd.Label
}

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	rows         []row
	cursor       int
	scrollOffset int
}

// New creates a new help model.
func New() Model {
	return Model{}
}

// SetActions sets the actions to list, grouped by scope. Scopes outside the
// known ones are listed last in first-seen order.
func (m *Model) SetActions(actions []keyboard.Action) {
	order := append([]string(nil), scopeOrder...)
	for _, a := range actions {
		if !slices.Contains(order, a.Scope) {
			order = append(order, a.Scope)
		}
	}

	m.rows = nil
	for _, scope := range order {
		for _, a := range actions {
			if a.Scope == scope && !a.IsSeparator() {
				m.rows = append(m.rows, row{action: a, label: kbd.NewLabel(a.Name)})
			}
		}
	}
	m.cursor = 0
	m.scrollOffset = 0
}

// ShortcutDisplays implements keyboard.Container.
func (m *Model) ShortcutDisplays() []keyboard.ShortcutDisplay {
	out := make([]keyboard.ShortcutDisplay, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.label
	}
	return out
}

// Selected returns the action under the cursor.
func (m *Model) Selected() (keyboard.Action, bool) {
	if m.cursor >= len(m.rows) {
		return keyboard.Action{}, false
	}
	return m.rows[m.cursor].action, true
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q", "f1":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "enter":
		a, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return ActionMsg(Trigger{Name: a.Name}) }
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	}
	return m, nil
}

func (m *Model) ensureVisible() {
	line := m.cursorLine()
	visible := m.visibleHeight()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+visible {
		m.scrollOffset = line - visible + 1
	}
	m.scrollOffset = min(m.scrollOffset, m.maxScroll())
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := m.buildLines()

	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := lines[start:end]

	for i, line := range visible {
		if w := lipgloss.Width(line); w < maxWidth {
			visible[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	s := styles.T().S()
	var result strings.Builder
	result.WriteString(s.Title.Render("Keyboard shortcuts"))
	result.WriteString("\n\n")
	result.WriteString(strings.Join(visible, "\n"))
	result.WriteString("\n\n")
	result.WriteString(s.Subtle.Render(m.buildFooter()))
	return result.String()
}

// buildLines renders headers and rows. The cursor row is highlighted.
func (m *Model) buildLines() []string {
	s := styles.T().S()

	keyWidth := 0
	for _, r := range m.rows {
		keyWidth = max(keyWidth, lipgloss.Width(r.label.Text()))
	}

	var lines []string
	scope := ""
	for i, r := range m.rows {
		if i == 0 || r.action.Scope != scope {
			if i > 0 {
				lines = append(lines, "")
			}
			label := scopeLabels[r.action.Scope]
			if label == "" {
				label = r.action.Scope
			}
			lines = append(lines,
				s.Header.Render(label),
				s.Subtle.Render(strings.Repeat("─", keyWidth+24)))
			scope = r.action.Scope
		}

		keys := r.label.View()
		keys += strings.Repeat(" ", keyWidth-lipgloss.Width(r.label.Text()))

		desc := r.action.Description
		if desc == "" {
			desc = r.action.Name
		}
		if len(r.action.GlobalShortcuts) > 0 {
			desc += s.Muted.Render(" (global: " + strings.Join(r.action.GlobalShortcuts, ", ") + ")")
		}

		line := keys + "  " + desc
		if i == m.cursor {
			line = s.Cursor.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return lines
}

// cursorLine maps the cursor row to its line index in buildLines.
func (m *Model) cursorLine() int {
	line := 0
	scope := ""
	for i, r := range m.rows {
		if i == 0 || r.action.Scope != scope {
			if i > 0 {
				line++
			}
			line += 2
			scope = r.action.Scope
		}
		if i == m.cursor {
			return line
		}
		line++
	}
	return line
}

func (m *Model) buildFooter() string {
	if len(m.buildLines()) <= m.visibleHeight() {
		return "enter run · ?/esc close"
	}
	return "j/k move · enter run · ?/esc close"
}

func (m *Model) visibleHeight() int {
	// Leave room for popup chrome (title, footer, borders, margins)
	return max(m.Height()-10, 5)
}

func (m *Model) maxScroll() int {
	total := len(m.buildLines())
	visible := m.visibleHeight()
	if total <= visible {
		return 0
	}
	return total - visible
}
