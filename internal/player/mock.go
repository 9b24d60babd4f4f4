package player

import "time"

// Mock is a test double for the Transport.
type Mock struct {
	state    State
	loaded   string
	position time.Duration

	loadErr error
	playErr error

	loadCalls   []string
	playCalls   []time.Duration
	stopCalls   int
	pauseCalls  int
	resumeCalls int
	volumeCalls []float64
}

// NewMock creates a new mock transport for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

func (m *Mock) Load(path string) error {
	m.loadCalls = append(m.loadCalls, path)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.state = Stopped
	m.loaded = path
	m.position = 0
	return nil
}

func (m *Mock) Play(offset time.Duration) error {
	m.playCalls = append(m.playCalls, offset)
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	m.position = offset
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
	m.loaded = ""
	m.position = 0
}

func (m *Mock) Pause() {
	m.pauseCalls++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.resumeCalls++
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) SetVolume(level float64) {
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Busy() bool { return m.state.IsActive() }

func (m *Mock) State() State { return m.state }

// Test helpers

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

// SetPosition scripts the position the transport will report next.
func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) PlayCalls() []time.Duration { return m.playCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) ResumeCalls() int { return m.resumeCalls }

func (m *Mock) VolumeCalls() []float64 { return m.volumeCalls }

func (m *Mock) Loaded() string { return m.loaded }
