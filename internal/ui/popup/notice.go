package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/notedeck/internal/ui/styles"
)

// Level selects the border and title color of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// noticeMaxWidth keeps long server errors readable; they wrap instead of
// being cut.
const noticeMaxWidth = 64

// Notice is a small centered message box, rendered over everything else.
type Notice struct {
	Title   string
	Message string
	Footer  string
	Level   Level
}

// NewError returns the notice shown when an action or dialog fails.
func NewError(message string) *Notice {
	return &Notice{
		Title:   "Error",
		Message: message,
		Footer:  "press any key to dismiss",
		Level:   LevelError,
	}
}

func (n *Notice) colors() (border lipgloss.Color, title lipgloss.Style) {
	t := styles.T()
	if n.Level == LevelError {
		return t.Error, lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	}
	return t.Border, t.S().Title
}

// Render lays out the notice centered on a termWidth x termHeight screen.
func (n *Notice) Render(termWidth, termHeight int) string {
	border, titleStyle := n.colors()

	natural := max(maxLineWidth(n.Message), lipgloss.Width(n.Title), lipgloss.Width(n.Footer))
	width := min(natural, noticeMaxWidth, max(termWidth-6, 1))

	body := lipgloss.NewStyle().Width(width).Render(strings.TrimRight(n.Message, "\n"))

	parts := make([]string, 0, 5)
	if n.Title != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, titleStyle.Render(n.Title)), "")
	}
	parts = append(parts, body)
	if n.Footer != "" {
		footer := styles.T().S().Subtle.Render(n.Footer)
		parts = append(parts, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, footer))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(parts, "\n"))

	return centerBox(box, termWidth, termHeight)
}
