// Package styles holds the color theme and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Accents
	Primary   lipgloss.Color // active note, focused borders
	Secondary lipgloss.Color // shortcut keys, headers

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgBase     lipgloss.Color
	BgCursor   lipgloss.Color
	BgSelected lipgloss.Color // notes marked for clone/move

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Active   lipgloss.Style // the note shown in the detail pane
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Key      lipgloss.Style // keyboard shortcut labels
	Header   lipgloss.Style // section headers in lists and help
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#e0af68"),

	FgBase:   lipgloss.Color("#c0caf5"),
	FgMuted:  lipgloss.Color("#828bb8"),
	FgSubtle: lipgloss.Color("#565f89"),

	BgBase:     lipgloss.Color("#1a1b26"),
	BgCursor:   lipgloss.Color("#292e42"),
	BgSelected: lipgloss.Color("#2f3549"),

	Border:      lipgloss.Color("#565f89"),
	BorderFocus: lipgloss.Color("#7aa2f7"),

	Success: lipgloss.Color("#9ece6a"),
	Error:   lipgloss.Color("#f7768e"),
	Warning: lipgloss.Color("#e0af68"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Active: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Selected: lipgloss.NewStyle().
			Background(t.BgSelected).
			Foreground(t.Secondary),
		Key: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
