package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quartzplayer/quartz/internal/errmsg"
	"github.com/quartzplayer/quartz/internal/playback"
	"github.com/quartzplayer/quartz/internal/state"
	"github.com/quartzplayer/quartz/internal/tags"
)

const volumeStep = 0.05

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		m.Status = m.Controller.Tick()
		return m, TickCmd()

	case ControlMsg:
		msg.Fn()
		m.Status = m.Controller.Status()
		return m, nil

	case tea.KeyMsg:
		if m.Prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case "down", "j":
		if m.Cursor < m.visibleCount()-1 {
			m.Cursor++
		}
		return m, nil

	case " ":
		if err := m.Controller.PlayPause(); err != nil {
			m.setStatus(errmsg.Format(errmsg.OpPlaybackStart, err), true)
		}

	case "enter":
		m.playSelected()

	case "s":
		m.Controller.Stop()

	case "n", "right":
		if err := m.Controller.Next(); err != nil {
			m.setStatus(errmsg.Format(errmsg.OpPlaybackStart, err), true)
		}

	case "p", "left":
		if err := m.Controller.Previous(); err != nil {
			m.setStatus(errmsg.Format(errmsg.OpPlaybackStart, err), true)
		}

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		digit := int(msg.String()[0] - '0')
		m.Controller.SeekFraction(float64(digit) / 10)

	case "-":
		m.Controller.SetVolume(m.Controller.Volume() - volumeStep)

	case "+", "=":
		m.Controller.SetVolume(m.Controller.Volume() + volumeStep)

	case "x":
		m.Controller.ToggleShuffle()

	case "r":
		m.Controller.CycleRepeat()

	case "d", "delete":
		m.removeSelected()

	case "C":
		m.Controller.ClearTracks()
		m.Cursor = 0
		m.Filter = ""
		m.setStatus("playlist cleared", false)

	case "a":
		return m.openPrompt(promptAdd, "path to file or folder", m.Config.DefaultFolder)

	case "/":
		return m.openPrompt(promptSearch, "filter", m.Filter)

	case "ctrl+s":
		return m.openPrompt(promptSave, "save playlist to", m.Config.PlaylistFile)

	case "ctrl+o":
		return m.openPrompt(promptLoad, "load playlist from", m.Config.PlaylistFile)
	}

	m.Status = m.Controller.Status()
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.StateMgr.SaveSession(state.Session{
		Volume:       m.Controller.Volume(),
		Shuffle:      m.Controller.Shuffle(),
		RepeatMode:   int(m.Controller.RepeatMode()),
		PlaylistPath: m.Config.PlaylistFile,
	})
	_ = m.Controller.SavePlaylist(m.Config.PlaylistFile)
	m.Controller.Close()
	return m, tea.Quit
}

// playSelected starts the track under the cursor; when it is already the
// current track, toggles pause instead of restarting it.
func (m *Model) playSelected() {
	index, ok := m.selectedIndex()
	if !ok {
		return
	}
	if index == m.Controller.Store().CurrentIndex() && !m.Controller.IsStopped() {
		_ = m.Controller.PlayPause()
		return
	}
	if err := m.Controller.Start(index); err != nil {
		var loadErr *playback.LoadError
		if errors.As(err, &loadErr) {
			m.setStatus(errmsg.FormatWith(errmsg.OpPlaybackStart, tags.DisplayName(loadErr.Path), loadErr.Err), true)
		} else {
			m.setStatus(errmsg.Format(errmsg.OpPlaybackStart, err), true)
		}
	}
}

func (m *Model) removeSelected() {
	index, ok := m.selectedIndex()
	if !ok {
		return
	}
	name := m.Controller.Store().DisplayName(index)
	if err := m.Controller.RemoveTrack(index); err != nil {
		m.setStatus(errmsg.Format(errmsg.OpPlaylistRemove, err), true)
		return
	}
	if m.Cursor >= m.visibleCount() {
		m.Cursor = max(m.visibleCount()-1, 0)
	}
	m.setStatus(fmt.Sprintf("removed %s", name), false)
}

// Prompt handling

func (m Model) openPrompt(mode promptMode, placeholder, initial string) (tea.Model, tea.Cmd) {
	m.Prompt = mode
	m.Input.Placeholder = placeholder
	m.Input.SetValue(initial)
	m.Input.CursorEnd()
	return m, m.Input.Focus()
}

func (m Model) closePrompt() Model {
	m.Prompt = promptNone
	m.Input.Blur()
	m.Input.SetValue("")
	return m
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.Prompt == promptSearch {
			m.Filter = ""
			m.Cursor = 0
		}
		return m.closePrompt(), nil

	case "enter":
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	// The search filter applies live while typing.
	if m.Prompt == promptSearch {
		m.Filter = m.Input.Value()
		m.Cursor = 0
	}
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.Input.Value())
	mode := m.Prompt
	m = m.closePrompt()

	switch mode {
	case promptSearch:
		m.Filter = value
		m.Cursor = 0

	case promptAdd:
		if value == "" {
			return m, nil
		}
		found, err := tags.FindMusicFiles(value)
		if err != nil {
			m.setStatus(errmsg.FormatWith(errmsg.OpPlaylistAdd, value, err), true)
			return m, nil
		}
		if len(found) == 0 {
			m.setStatus(fmt.Sprintf("no supported audio files in %s", value), false)
			return m, nil
		}
		if m.Controller.AddTracks(found...) {
			m.setStatus(fmt.Sprintf("added %d track(s)", len(found)), false)
		} else {
			m.setStatus("all tracks already in playlist", false)
		}

	case promptSave:
		if value == "" {
			return m, nil
		}
		if err := m.Controller.SavePlaylist(value); err != nil {
			m.setStatus(errmsg.FormatWith(errmsg.OpPlaylistSave, value, err), true)
			return m, nil
		}
		m.Config.PlaylistFile = value
		m.setStatus(fmt.Sprintf("saved %d track(s) to %s", m.Controller.Store().Len(), value), false)

	case promptLoad:
		if value == "" {
			return m, nil
		}
		if err := m.Controller.LoadPlaylist(value); err != nil {
			m.setStatus(errmsg.FormatWith(errmsg.OpPlaylistLoad, value, err), true)
			return m, nil
		}
		m.Config.PlaylistFile = value
		m.Cursor = 0
		m.Filter = ""
		m.setStatus(fmt.Sprintf("loaded %d track(s)", m.Controller.Store().Len()), false)
	}

	m.Status = m.Controller.Status()
	return m, nil
}

// Filtered list helpers

// visibleIndices maps visible rows to store indices under the filter.
func (m *Model) visibleIndices() []int {
	var indices []int
	for i := range m.Controller.Store().Filtered(m.Filter) {
		indices = append(indices, i)
	}
	return indices
}

func (m *Model) visibleCount() int {
	return len(m.visibleIndices())
}

// selectedIndex resolves the cursor to a store index.
func (m *Model) selectedIndex() (int, bool) {
	visible := m.visibleIndices()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return 0, false
	}
	return visible[m.Cursor], true
}
