package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quartzplayer/quartz/internal/config"
	"github.com/quartzplayer/quartz/internal/playback"
	"github.com/quartzplayer/quartz/internal/state"
)

// promptMode says what the text input at the bottom is currently asking for.
type promptMode int

const (
	promptNone promptMode = iota
	promptSearch
	promptAdd
	promptSave
	promptLoad
)

// Model is the root application model containing all state.
type Model struct {
	Controller *playback.Controller
	Config     *config.Config
	StateMgr   state.Interface

	// Last controller snapshot, refreshed every tick and after key actions.
	Status playback.Status

	// Playlist panel
	Cursor int    // selected row in the visible (filtered) list
	Filter string // active search filter, "" shows everything

	// Bottom-line prompt
	Prompt     promptMode
	Input      textinput.Model
	StatusMsg  string
	StatusErr  bool
	statusTime time.Time

	Width  int
	Height int
}

// New creates the application model. The controller arrives fully wired
// (transport, store, restored session).
func New(cfg *config.Config, stateMgr state.Interface, controller *playback.Controller) Model {
	input := textinput.New()
	input.CharLimit = 512

	m := Model{
		Controller: controller,
		Config:     cfg,
		StateMgr:   stateMgr,
		Input:      input,
	}
	m.Status = controller.Tick()
	m.Cursor = max(controller.Store().CurrentIndex(), 0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return TickCmd()
}

// setStatus records a transient status line message.
func (m *Model) setStatus(msg string, isErr bool) {
	m.StatusMsg = msg
	m.StatusErr = isErr
	m.statusTime = time.Now()
}

// statusVisible reports whether the transient message should still show.
func (m *Model) statusVisible() bool {
	return m.StatusMsg != "" && time.Since(m.statusTime) < 5*time.Second
}
