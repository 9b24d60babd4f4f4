package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// TitleGradient renders bold text sweeping from the theme's primary to its
// secondary color. Used for the application title.
func TitleGradient(text string) string {
	return Gradient(text, true, T().Primary, T().Secondary)
}

// Gradient renders text with a horizontal color gradient. Blending happens
// in HCL space so the transition stays perceptually even; grapheme clusters
// are colored as units so combining marks and emoji stay intact.
func Gradient(text string, bold bool, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	style := func(c lipgloss.Color) lipgloss.Style {
		s := lipgloss.NewStyle().Foreground(c)
		if bold {
			s = s.Bold(true)
		}
		return s
	}

	if len(clusters) == 1 {
		return style(from).Render(text)
	}

	start := parseHex(from)
	end := parseHex(to)

	var b strings.Builder
	steps := len(clusters) - 1
	for i, cluster := range clusters {
		blended := start.BlendHcl(end, float64(i)/float64(steps))
		b.WriteString(style(lipgloss.Color(blended.Hex())).Render(cluster))
	}
	return b.String()
}

func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// parseHex interprets a lipgloss color as a hex value. ANSI palette colors
// have no RGB meaning here and fall back to a neutral gray.
func parseHex(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
