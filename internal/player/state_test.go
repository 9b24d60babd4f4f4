package player

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateIsActive(t *testing.T) {
	if Stopped.IsActive() {
		t.Error("Stopped should not be active")
	}
	if !Playing.IsActive() {
		t.Error("Playing should be active")
	}
	if !Paused.IsActive() {
		t.Error("Paused should be active")
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-0.5, -10},
		{1.5, 0},
	}

	for _, tt := range tests {
		if got := levelToVolume(tt.level); got != tt.want {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	p := New()
	err := p.Load("/music/song.xyz")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if p.State() != Stopped {
		t.Errorf("state = %v, want Stopped after failed load", p.State())
	}
}

func TestPlay_NothingLoaded(t *testing.T) {
	p := New()
	if err := p.Play(0); err == nil {
		t.Fatal("expected error when nothing is loaded")
	}
}

func TestMock_Transitions(t *testing.T) {
	m := NewMock()

	if err := m.Load("/a.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := m.Play(0); err != nil {
		t.Fatal(err)
	}
	if m.State() != Playing {
		t.Errorf("state = %v, want Playing", m.State())
	}

	m.Pause()
	if m.State() != Paused {
		t.Errorf("state = %v, want Paused", m.State())
	}

	m.Resume()
	if m.State() != Playing {
		t.Errorf("state = %v, want Playing after resume", m.State())
	}

	m.Stop()
	if m.State() != Stopped || m.Busy() {
		t.Errorf("state = %v, want Stopped and not busy", m.State())
	}
}
