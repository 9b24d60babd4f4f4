package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval is the display poll period.
const refreshInterval = 250 * time.Millisecond

// TickCmd returns a command that sends TickMsg after the refresh interval.
func TickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
