package notetree

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/notedeck/internal/ui/render"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

// View renders the tree inside a bordered panel titled title.
func (m Model) View(title string) string {
	width, height := m.list.Size()
	if width < 4 || height < 3 {
		return ""
	}
	s := styles.T().S()
	inner := width - 2

	lines := make([]string, 0, height-2)
	header := s.Header.Render(render.Truncate(title, inner))
	if n := len(m.selected); n > 0 {
		header = render.Row(header, s.Selected.Render(" "+plural(n)+" "), inner)
	}
	lines = append(lines, header)

	rows := m.list.Items()
	if len(rows) == 0 {
		lines = append(lines, s.Muted.Render("Loading..."))
	}
	start, end := m.list.VisibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == m.list.SelectedIndex(), inner))
	}
	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(r Row, isCursor bool, width int) string {
	s := styles.T().S()

	marker := "  "
	if r.Item.HasChildren {
		marker = "▸ "
		if m.expanded[r.Path] {
			marker = "▾ "
		}
	}
	text := render.TruncateAndPad(strings.Repeat("  ", r.Depth)+marker+r.Item.DisplayTitle(), width)

	var style lipgloss.Style
	switch {
	case isCursor && m.IsFocused():
		style = s.Cursor
	case isCursor:
		style = s.Active
	case m.selected[r.Path]:
		style = s.Selected
	default:
		return text
	}
	return style.Render(text)
}

func plural(n int) string {
	return strconv.Itoa(n) + " selected"
}
