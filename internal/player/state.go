package player

// State represents the transport state machine.
//
// Valid transitions:
//   - Stopped → Playing (via Play)
//   - Playing → Paused  (via Pause)
//   - Playing → Stopped (via Stop)
//   - Paused  → Playing (via Resume or Play)
//   - Paused  → Stopped (via Stop)
//
// Invalid transitions are handled as no-ops: pausing while stopped, resuming
// while playing, stopping while stopped.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if the transport holds a track (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
