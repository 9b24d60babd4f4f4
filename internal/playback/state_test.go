package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	if StateStopped.IsActive() {
		t.Error("StateStopped.IsActive() = true, want false")
	}
	if !StatePlaying.IsActive() {
		t.Error("StatePlaying.IsActive() = false, want true")
	}
	if !StatePaused.IsActive() {
		t.Error("StatePaused.IsActive() = false, want true")
	}
}

func TestRepeatMode_Cycle(t *testing.T) {
	tests := []struct {
		mode RepeatMode
		want RepeatMode
	}{
		{RepeatOff, RepeatAll},
		{RepeatAll, RepeatOne},
		{RepeatOne, RepeatOff},
	}

	for _, tt := range tests {
		if got := tt.mode.Cycle(); got != tt.want {
			t.Errorf("%s.Cycle() = %s, want %s", tt.mode, got, tt.want)
		}
	}
}
