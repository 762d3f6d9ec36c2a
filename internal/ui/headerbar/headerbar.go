// Package headerbar renders the top bar of window action buttons.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/notedeck/internal/keyboard"
	"github.com/llehouerou/notedeck/internal/ui/kbd"
	"github.com/llehouerou/notedeck/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

var _ keyboard.Container = (*Model)(nil)

// buttons lists the window actions shown in the bar, in display order.
var buttons = []struct {
	action string
	label  string
}{
	{"jumpToNote", "Jump"},
	{"showRecentChanges", "Recent"},
	{"createNoteIntoInbox", "New"},
	{"reloadTree", "Reload"},
	{"showHelp", "Help"},
}

// Model holds the header buttons.
type Model struct {
	buttons []*kbd.Button
}

// New creates the header bar with one button per window action.
func New() *Model {
	m := &Model{}
	for _, b := range buttons {
		m.buttons = append(m.buttons, kbd.NewButton(b.action, b.label))
	}
	return m
}

// ShortcutDisplays implements keyboard.Container. Titles are reset first so a
// second update replaces the shortcut suffix instead of appending another.
func (m *Model) ShortcutDisplays() []keyboard.ShortcutDisplay {
	out := make([]keyboard.ShortcutDisplay, 0, len(m.buttons))
	for _, b := range m.buttons {
		b.Reset()
		out = append(out, b)
	}
	return out
}

// Render returns the header bar for the given width with the brand on the
// left and the buttons centered in the remaining space.
func (m *Model) Render(width int) string {
	if width < 20 {
		return ""
	}

	brand := styles.Brand("notedeck")
	separator := styles.T().S().Subtle.Render(" │ ")

	parts := make([]string, 0, len(m.buttons))
	for _, b := range m.buttons {
		parts = append(parts, b.View())
	}
	content := strings.Join(parts, separator)

	rest := width - lipgloss.Width(brand)
	contentWidth := lipgloss.Width(content)
	if contentWidth < rest {
		padLeft := (rest - contentWidth) / 2
		content = strings.Repeat(" ", padLeft) + content
	}

	return brand + content
}
