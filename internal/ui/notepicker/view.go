package notepicker

import (
	"strings"

	"github.com/llehouerou/notedeck/internal/ui/render"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

func (m *Model) emptyMessage() string {
	switch {
	case m.err != nil:
		return "Search failed: " + m.err.Error()
	case m.loading:
		return "Searching..."
	case strings.TrimSpace(m.input.Value()) != "":
		return "No matches"
	default:
		return "Type to search..."
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	innerW := max(m.Width()-6, 10)

	var sb strings.Builder
	sb.WriteString(s.Title.Render(m.title))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	if m.loading {
		sb.WriteString(s.Subtle.Render(" ◐"))
	}
	sb.WriteString("\n")
	sb.WriteString(s.Subtle.Render(render.Separator(innerW)))
	sb.WriteString("\n")

	items := m.list.Items()
	if len(items) == 0 {
		sb.WriteString(s.Muted.Render(m.emptyMessage()))
	}
	start, end := m.list.VisibleRange()
	for i := start; i < end; i++ {
		r := items[i]
		prefix := "  "
		if i == m.list.SelectedIndex() {
			prefix = "> "
		}
		availW := innerW - 2
		pathW := min(len([]rune(r.PathTitle)), availW/2)
		left := render.TruncateAndPad(r.Title, availW-pathW-1)
		line := render.Row(prefix+left, s.Muted.Render(render.Truncate(r.PathTitle, pathW)), innerW)
		if i == m.list.SelectedIndex() {
			line = s.Cursor.Render(line)
		}
		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(s.Subtle.Render("↑↓ navigate · enter select · esc cancel"))
	return sb.String()
}
