package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/quartzplayer/quartz/internal/icons"
	"github.com/quartzplayer/quartz/internal/playback"
	"github.com/quartzplayer/quartz/internal/tags"
	"github.com/quartzplayer/quartz/internal/ui/coverart"
	"github.com/quartzplayer/quartz/internal/ui/playerbar"
	"github.com/quartzplayer/quartz/internal/ui/render"
	"github.com/quartzplayer/quartz/internal/ui/styles"
)

const (
	coverPanelWidth = 28
	coverHeight     = 12
	minListWidth    = 30
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}

	header := styles.TitleGradient("quartz") + "  " +
		styles.T().S().Subtle.Render("audio player")

	barHeight := playerbar.Height
	listHeight := max(m.Height-barHeight-3, 3)

	var body string
	if m.Width >= minListWidth+coverPanelWidth+6 {
		list := m.renderPlaylist(m.Width-coverPanelWidth-6, listHeight)
		cover := m.renderCoverPanel(coverPanelWidth, listHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, cover)
	} else {
		body = m.renderPlaylist(m.Width-2, listHeight)
	}

	bar := playerbar.Render(m.playerBarState(), m.Width)

	return header + "\n" + body + "\n" + bar + "\n" + m.renderBottomLine()
}

func (m Model) playerBarState() playerbar.State {
	s := playerbar.State{
		Playback: m.Status.State,
		Index:    m.Status.Index,
		Total:    m.Controller.Store().Len(),
		Position: m.Status.Position,
		Duration: m.Status.Duration,
		Progress: m.Status.Progress,
		Volume:   m.Controller.Volume(),
		Shuffle:  m.Controller.Shuffle(),
		Repeat:   m.Controller.RepeatMode(),
	}
	if path := m.Controller.Store().Current(); path != "" && m.Status.State != playback.StateStopped {
		tag := tags.Read(path)
		s.Title = tag.Title
		s.Artist = tag.Artist
		s.Album = tag.Album
		s.Year = tag.Year
	}
	return s
}

func (m Model) renderPlaylist(width, height int) string {
	th := styles.T()
	store := m.Controller.Store()

	innerWidth := max(width-4, 10)
	innerHeight := max(height-2, 1)

	var rows []string
	visible := m.visibleIndices()

	// Scroll window keeping the cursor in view.
	start := 0
	if m.Cursor >= innerHeight {
		start = m.Cursor - innerHeight + 1
	}

	for row := start; row < len(visible) && len(rows) < innerHeight; row++ {
		index := visible[row]
		name := render.TruncateAndPad(fmt.Sprintf("%3d  %s", index+1, store.DisplayName(index)), innerWidth)

		style := th.S().Base
		switch {
		case index == store.CurrentIndex() && m.Status.State != playback.StateStopped:
			style = th.S().Playing
		case row == m.Cursor:
			style = th.S().Cursor
		}
		if row == m.Cursor && index == store.CurrentIndex() && m.Status.State != playback.StateStopped {
			style = th.S().Playing.Background(th.BgCursor)
		}

		prefix := "  "
		if index == store.CurrentIndex() && m.Status.State == playback.StatePlaying {
			prefix = icons.Play() + " "
		}
		rows = append(rows, style.Render(prefix+name))
	}

	if len(visible) == 0 {
		empty := "playlist is empty, press 'a' to add tracks"
		if m.Filter != "" {
			empty = fmt.Sprintf("no tracks match %q", m.Filter)
		}
		rows = append(rows, th.S().Muted.Render(empty))
	}

	for len(rows) < innerHeight {
		rows = append(rows, "")
	}

	title := fmt.Sprintf(" playlist (%d) ", store.Len())
	if m.Filter != "" {
		title = fmt.Sprintf(" playlist (%d/%d) ", len(visible), store.Len())
	}

	panel := styles.PanelStyle(true).
		Padding(0, 1).
		Width(width)
	return panel.Render(th.S().Title.Render(title) + "\n" + strings.Join(rows, "\n"))
}

func (m Model) renderCoverPanel(width, height int) string {
	path := m.Controller.Store().Current()

	innerWidth := max(width-4, 4)

	var sections []string
	if path == "" {
		sections = append(sections, coverart.Placeholder("quartz", innerWidth, coverHeight))
	} else {
		data, _ := tags.ExtractCoverArt(path)
		art := ""
		if data != nil {
			if rendered, err := coverart.Render(data, innerWidth, coverHeight); err == nil {
				art = rendered
			}
		}
		if art == "" {
			art = coverart.Placeholder(path, innerWidth, coverHeight)
		}
		sections = append(sections, art, "", m.renderTrackInfo(path, innerWidth))
	}

	panel := styles.PanelStyle(false).
		Padding(0, 1).
		Width(width).
		Height(height)
	return panel.Render(strings.Join(sections, "\n"))
}

func (m Model) renderTrackInfo(path string, width int) string {
	th := styles.T()
	tag := tags.Read(path)

	var lines []string
	lines = append(lines, th.S().Title.Render(render.Truncate(tag.Title, width)))
	if tag.Artist != "" {
		lines = append(lines, th.S().Base.Render(render.Truncate(tag.Artist, width)))
	}
	album := tag.Album
	if tag.Year > 0 {
		album = strings.TrimSpace(album + " " + th.S().Subtle.Render("("+strconv.Itoa(tag.Year)+")"))
	}
	if album != "" {
		lines = append(lines, th.S().Muted.Render(render.Truncate(album, width)))
	}
	if info, err := os.Stat(path); err == nil {
		size := humanize.IBytes(uint64(info.Size()))
		lines = append(lines, th.S().Subtle.Render(render.Truncate(size, width)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBottomLine() string {
	th := styles.T()

	if m.Prompt != promptNone {
		label := map[promptMode]string{
			promptSearch: "filter",
			promptAdd:    "add",
			promptSave:   "save",
			promptLoad:   "load",
		}[m.Prompt]
		return th.S().Title.Render(label+": ") + m.Input.View()
	}

	if m.statusVisible() {
		if m.StatusErr {
			return th.S().Error.Render(m.StatusMsg)
		}
		return th.S().Success.Render(m.StatusMsg)
	}

	// Playback keys first; they are the ones reached for mid-track.
	bindings := KeysByContext("playback")
	bindings = append(bindings, KeysByContext("playlist")...)
	bindings = append(bindings, KeysByContext("global")...)
	return th.S().Subtle.Render(render.Truncate(helpLine(bindings), max(m.Width-1, 10)))
}
