package coverart

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/quartzplayer/quartz/internal/icons"
)

// Placeholder draws a stand-in panel for tracks without cover art. The hue
// derives from the seed string so every track keeps a stable color between
// redraws, with a note glyph centered in the block.
func Placeholder(seed string, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}

	h := fnv.New32a()
	h.Write([]byte(seed))
	hue := float64(h.Sum32() % 360)

	base := colorful.Hcl(hue, 0.25, 0.35)
	tile := lipgloss.NewStyle().
		Foreground(lipgloss.Color(base.Clamped().Hex())).
		Render(strings.Repeat("▒", width))

	noteRow := height / 2
	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorful.Hcl(hue, 0.3, 0.7).Clamped().Hex())).
		Render(centerNote(width))

	rows := make([]string, height)
	for i := range rows {
		if i == noteRow {
			rows[i] = note
		} else {
			rows[i] = tile
		}
	}
	return strings.Join(rows, "\n")
}

func centerNote(width int) string {
	note := icons.Note()
	pad := (width - 1) / 2
	line := strings.Repeat("▒", pad) + note + strings.Repeat("▒", width-pad-1)
	return line
}
