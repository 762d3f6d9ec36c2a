package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Brand renders the application name with the theme's accent gradient.
func Brand(name string) string {
	t := T()
	return Gradient(name, t.Primary, t.Secondary, true)
}

// Gradient renders text with a horizontal color gradient blended in HCL space.
// Grapheme clusters keep a single color each.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	style := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(bold)
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return style(from).Render(text)
	}

	c1 := toColorful(from)
	c2 := toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		blended := c1.BlendHcl(c2, float64(i)/last).Clamped()
		b.WriteString(style(lipgloss.Color(blended.Hex())).Render(cluster))
	}
	return b.String()
}

// toColorful converts a hex lipgloss color. ANSI palette colors fall back to gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
