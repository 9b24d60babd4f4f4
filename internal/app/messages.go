// Package app contains the bubbletea model driving the player UI.
package app

import "time"

// TickMsg is the refresh pulse: every 250ms while the program runs, the
// controller is polled and the display re-rendered.
type TickMsg time.Time

// ControlMsg carries an action from another goroutine (the MPRIS adapter)
// onto the update loop. The controller is not safe for concurrent use, so
// all mutations funnel through here.
type ControlMsg struct {
	Fn func()
}
