// Package playerbar renders the transport bar: state icon, track line,
// block progress bar with times, and the volume/shuffle/repeat indicators.
package playerbar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quartzplayer/quartz/internal/icons"
	"github.com/quartzplayer/quartz/internal/playback"
	"github.com/quartzplayer/quartz/internal/ui/render"
	"github.com/quartzplayer/quartz/internal/ui/styles"
)

// State holds everything needed to render the player bar.
type State struct {
	Playback playback.State
	Title    string
	Artist   string
	Album    string
	Year     int
	Index    int // current track index, -1 when unset
	Total    int // playlist length
	Position time.Duration
	Duration time.Duration
	Progress float64 // 0..1, or -1 when the duration is unknown
	Volume   float64
	Shuffle  bool
	Repeat   playback.RepeatMode
}

// Height is the rendered height including the border.
const Height = 4

// Render draws the player bar at the given width.
func Render(s State, width int) string {
	innerWidth := max(width-4, 10)

	track := trackLine(s, innerWidth)
	progress := progressLine(s, innerWidth)

	content := track + "\n" + progress

	return styles.PanelStyle(false).
		Padding(0, 1).
		Width(width - 2).
		Render(content)
}

// trackLine is the top row: state icon, title, artist/album/year on the
// left; shuffle/repeat/volume indicators on the right.
func trackLine(s State, width int) string {
	th := styles.T()

	modes := modeIndicators(s)
	modesWidth := lipgloss.Width(modes)

	var left string
	if s.Playback == playback.StateStopped {
		left = th.S().Muted.Render(icons.Stop() + "  stopped")
	} else {
		icon := icons.Play()
		if s.Playback == playback.StatePaused {
			icon = icons.Pause()
		}

		title := s.Title
		if title == "" {
			title = "Unknown Track"
		}

		var infoParts []string
		if s.Artist != "" {
			infoParts = append(infoParts, s.Artist)
		}
		if s.Album != "" {
			infoParts = append(infoParts, s.Album)
		}
		if s.Year > 0 {
			infoParts = append(infoParts, strconv.Itoa(s.Year))
		}
		info := strings.Join(infoParts, " · ")

		var position string
		if s.Index >= 0 && s.Total > 0 {
			position = fmt.Sprintf("%d/%d", s.Index+1, s.Total)
		}

		avail := width - modesWidth - 2
		titleBudget := avail
		if info != "" {
			titleBudget = avail * 2 / 3
		}
		styledTitle := th.S().Title.Render(render.Truncate(title, max(titleBudget, 8)))

		parts := []string{icon, styledTitle}
		if info != "" {
			remaining := avail - lipgloss.Width(styledTitle) - lipgloss.Width(position) - 6
			if remaining > 4 {
				parts = append(parts, th.S().Muted.Render(render.Truncate(info, remaining)))
			}
		}
		if position != "" {
			parts = append(parts, th.S().Subtle.Render(position))
		}
		left = strings.Join(parts, "  ")
	}

	return render.Row(left, modes, width)
}

// progressLine is the bottom row: position, block bar, duration.
func progressLine(s State, width int) string {
	th := styles.T()

	posStr := formatDuration(s.Position)
	durStr := formatDuration(s.Duration)
	timeStr := posStr + " / " + durStr

	barWidth := width - lipgloss.Width(timeStr) - 2
	if barWidth < 5 {
		return th.S().Muted.Render(timeStr)
	}

	bar := th.S().Muted.Render(strings.Repeat("░", barWidth))
	if s.Progress >= 0 {
		filled := min(int(float64(barWidth)*s.Progress), barWidth)
		bar = th.S().Playing.Render(strings.Repeat("▓", filled)) +
			th.S().Muted.Render(strings.Repeat("░", barWidth-filled))
	}

	return bar + "  " + th.S().Muted.Render(timeStr)
}

func modeIndicators(s State) string {
	th := styles.T()

	var parts []string
	if s.Shuffle {
		parts = append(parts, th.S().Playing.Render(icons.Shuffle()))
	}
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, th.S().Playing.Render(icons.RepeatAll()))
	case playback.RepeatOne:
		parts = append(parts, th.S().Playing.Render(icons.RepeatOne()))
	}
	parts = append(parts, th.S().Muted.Render(fmt.Sprintf("%s %3d%%", icons.Volume(), int(s.Volume*100))))

	return strings.Join(parts, " ")
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}
