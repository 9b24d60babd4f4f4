package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzplayer/quartz/internal/player"
	"github.com/quartzplayer/quartz/internal/playlist"
)

// newTestController builds a controller over a mock transport with scripted
// durations keyed by path.
func newTestController(t *testing.T, durations map[string]time.Duration, paths ...string) (*Controller, *player.Mock) {
	t.Helper()

	store := playlist.NewStore()
	store.Add(paths...)

	mock := player.NewMock()
	c := New(mock, store)
	c.probeDuration = func(path string) time.Duration {
		return durations[path]
	}
	return c, mock
}

func TestStart_LoadsAndPlays(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 180 * time.Second}, "/a.mp3", "/b.mp3")

	err := c.Start(0)

	require.NoError(t, err)
	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, []string{"/a.mp3"}, mock.LoadCalls())
	assert.Equal(t, []time.Duration{0}, mock.PlayCalls())
	assert.Equal(t, 0, c.Store().CurrentIndex())
}

func TestStart_AppliesVolume(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")
	c.SetVolume(0.3)

	require.NoError(t, c.Start(0))

	calls := mock.VolumeCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, 0.3, calls[len(calls)-1], "volume must be re-applied on every start")
}

func TestStart_LoadFailureStaysStopped(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")
	mock.SetLoadError(errors.New("corrupt file"))

	err := c.Start(0)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/a.mp3", loadErr.Path)
	assert.Equal(t, StateStopped, c.State())
	assert.Empty(t, mock.PlayCalls())
}

func TestStart_InvalidIndex(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3")

	assert.Error(t, c.Start(5))
	assert.Equal(t, StateStopped, c.State())
}

func TestPlayPause_EmptyPlaylistIsNoOp(t *testing.T) {
	c, mock := newTestController(t, nil)

	require.NoError(t, c.PlayPause())

	assert.Equal(t, StateStopped, c.State())
	assert.Empty(t, mock.LoadCalls(), "no transport call on empty playlist")
	assert.Empty(t, mock.PlayCalls())
}

func TestPlayPause_TogglesPause(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")

	require.NoError(t, c.PlayPause()) // start
	assert.Equal(t, StatePlaying, c.State())

	require.NoError(t, c.PlayPause()) // pause
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, 1, mock.PauseCalls())

	require.NoError(t, c.PlayPause()) // resume
	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, 1, mock.ResumeCalls())
}

func TestPlayPause_StartsAtFirstTrackWhenIndexUnset(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3", "/b.mp3")
	// Removing the current entry unsets the index.
	require.NoError(t, c.RemoveTrack(0))
	require.Equal(t, -1, c.Store().CurrentIndex())

	require.NoError(t, c.PlayPause())

	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, "/b.mp3", mock.Loaded())
}

func TestPause_NoOpWhenStopped(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")

	c.Pause()

	assert.Equal(t, StateStopped, c.State())
	assert.Zero(t, mock.PauseCalls())
}

func TestStop_KeepsIndex(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3")
	require.NoError(t, c.Start(1))

	c.Stop()

	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, 1, c.Store().CurrentIndex(), "Stop never touches the index")
}

func TestNext_Sequential(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3", "/b.mp3", "/c.mp3")
	require.NoError(t, c.Start(0))

	require.NoError(t, c.Next())

	assert.Equal(t, 1, c.Store().CurrentIndex())
	assert.Equal(t, "/b.mp3", mock.Loaded())
}

func TestNext_LastIndexRepeatAllWraps(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3")
	c.SetRepeatMode(RepeatAll)
	require.NoError(t, c.Start(1))

	require.NoError(t, c.Next())

	assert.Equal(t, 0, c.Store().CurrentIndex())
	assert.Equal(t, StatePlaying, c.State())
}

func TestNext_LastIndexNoRepeatStops(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3")
	require.NoError(t, c.Start(1))

	require.NoError(t, c.Next())

	assert.Equal(t, StateStopped, c.State())
	// Index left unchanged, matching Stop's contract.
	assert.Equal(t, 1, c.Store().CurrentIndex())
}

func TestPrevious_FirstIndexClampsWithoutStopping(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3")
	require.NoError(t, c.Start(0))

	require.NoError(t, c.Previous())

	assert.Equal(t, 0, c.Store().CurrentIndex())
	assert.Equal(t, StatePlaying, c.State(), "Previous never stops playback")
}

func TestPrevious_FirstIndexRepeatAllWraps(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3", "/c.mp3")
	c.SetRepeatMode(RepeatAll)
	require.NoError(t, c.Start(0))

	require.NoError(t, c.Previous())

	assert.Equal(t, 2, c.Store().CurrentIndex())
}

func TestAdvance_ShuffleIgnoresDirection(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3", "/c.mp3", "/d.mp3")
	c.SetShuffle(true)
	c.randIndex = func(n int) int {
		require.Equal(t, 4, n)
		return 2
	}
	require.NoError(t, c.Start(0))

	require.NoError(t, c.Next())
	assert.Equal(t, 2, c.Store().CurrentIndex())

	c.randIndex = func(int) int { return 3 }
	require.NoError(t, c.Previous())
	assert.Equal(t, 3, c.Store().CurrentIndex())
}

func TestSeekFraction_NextTickReportsTarget(t *testing.T) {
	const dur = 200 * time.Second
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": dur}, "/a.mp3")
	require.NoError(t, c.Start(0))

	c.SeekFraction(0.5)

	// Whatever the transport claims this tick, the display shows the target.
	mock.SetPosition(0)
	st := c.Tick()
	assert.Equal(t, 100*time.Second, st.Position)
	assert.InDelta(t, 0.5, st.Progress, 1e-9)

	// One-shot: the next tick trusts the transport again.
	mock.SetPosition(101 * time.Second)
	st = c.Tick()
	assert.Equal(t, 101*time.Second, st.Position)
}

func TestSeekFraction_ReissuesPlayAtOffset(t *testing.T) {
	const dur = 100 * time.Second
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": dur}, "/a.mp3")
	require.NoError(t, c.Start(0))

	c.SeekFraction(0.25)

	calls := mock.PlayCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 25*time.Second, calls[1])
}

func TestSeekFraction_UnknownDurationTreatsValueAsSeconds(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3") // duration probes to 0
	require.NoError(t, c.Start(0))

	c.SeekFraction(42)

	calls := mock.PlayCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 42*time.Second, calls[1])
}

func TestSeekFraction_ReresolvesDuration(t *testing.T) {
	durations := map[string]time.Duration{}
	c, _ := newTestController(t, durations, "/a.mp3")
	c.probeDuration = func(path string) time.Duration { return durations[path] }
	require.NoError(t, c.Start(0))
	require.Equal(t, time.Duration(0), c.knownDuration)

	// Duration becomes resolvable after load.
	durations["/a.mp3"] = 90 * time.Second
	c.SeekFraction(0.1)

	assert.Equal(t, 90*time.Second, c.knownDuration)
}

func TestSeekTo_AbsoluteOffset(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 100 * time.Second}, "/a.mp3")
	require.NoError(t, c.Start(0))

	c.SeekTo(33 * time.Second)

	calls := mock.PlayCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 33*time.Second, calls[1])
	assert.Equal(t, 33*time.Second, c.Position())
}

func TestSeekFraction_NoOpUnlessPlaying(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")

	c.SeekFraction(0.5) // stopped
	assert.Empty(t, mock.PlayCalls())

	require.NoError(t, c.Start(0))
	c.Pause()
	mockCalls := len(mock.PlayCalls())

	c.SeekFraction(0.5) // paused: the transport cannot seek a paused stream
	assert.Len(t, mock.PlayCalls(), mockCalls)
}

func TestSeekFraction_SwallowsTransportFailure(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 100 * time.Second}, "/a.mp3")
	require.NoError(t, c.Start(0))
	mock.SetPlayError(errors.New("device busy"))

	c.SeekFraction(0.5) // must not panic or propagate

	// The override still lands so the display follows the user's intent.
	st := c.Tick()
	assert.Equal(t, 50*time.Second, st.Position)
}

func TestTick_EndOfTrack_RepeatOneReplaysSameIndex(t *testing.T) {
	const dur = 100 * time.Second
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": dur, "/b.mp3": dur}, "/a.mp3", "/b.mp3")
	c.SetRepeatMode(RepeatOne)
	require.NoError(t, c.Start(0))

	// Within the 0.4s guard interval of the end.
	mock.SetPosition(dur - 300*time.Millisecond)
	st := c.Tick()

	assert.Equal(t, 0, c.Store().CurrentIndex(), "index unchanged")
	assert.Equal(t, StatePlaying, st.State)
	calls := mock.PlayCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, time.Duration(0), calls[1], "replay from offset 0")
	assert.Len(t, mock.LoadCalls(), 1, "no reload for repeat-one")
}

func TestTick_EndOfTrack_AdvancesThenStops(t *testing.T) {
	durations := map[string]time.Duration{
		"/a.mp3": 180 * time.Second,
		"/b.mp3": 200 * time.Second,
	}
	c, mock := newTestController(t, durations, "/a.mp3", "/b.mp3")
	require.NoError(t, c.Start(0))

	// Position reaches 179.7s on a 180s track: advance to index 1.
	mock.SetPosition(179700 * time.Millisecond)
	st := c.Tick()
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, StatePlaying, st.State)
	assert.Equal(t, "/b.mp3", mock.Loaded())

	// Index 1 ends with no wrap: playback stops.
	mock.SetPosition(200 * time.Second)
	st = c.Tick()
	assert.Equal(t, StateStopped, st.State)
}

func TestTick_UnknownDurationNeverEndsTrack(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")
	require.NoError(t, c.Start(0))

	mock.SetPosition(time.Hour)
	st := c.Tick()

	assert.Equal(t, StatePlaying, st.State)
	assert.Equal(t, time.Hour, st.Position)
	assert.Equal(t, float64(-1), st.Progress, "progress display unchanged while duration unknown")
}

func TestTick_PausedIsNoOp(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 100 * time.Second}, "/a.mp3")
	require.NoError(t, c.Start(0))
	c.Pause()

	mock.SetPosition(99900 * time.Millisecond) // would end the track if evaluated
	st := c.Tick()

	assert.Equal(t, StatePaused, st.State)
	assert.Len(t, mock.LoadCalls(), 1, "no advance while paused")
}

func TestTick_PausedKeepsPosition(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 100 * time.Second}, "/a.mp3")
	require.NoError(t, c.Start(0))

	mock.SetPosition(42 * time.Second)
	st := c.Tick()
	require.Equal(t, 42*time.Second, st.Position)

	c.Pause()
	st = c.Tick()

	assert.Equal(t, StatePaused, st.State)
	assert.Equal(t, 42*time.Second, st.Position, "pausing must freeze the displayed position")
	assert.InDelta(t, 0.42, st.Progress, 0.001)

	// Subsequent ticks keep reporting the frozen value.
	st = c.Tick()
	assert.Equal(t, 42*time.Second, st.Position)
}

func TestStatus_DoesNotConsumeSeekOverride(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 100 * time.Second}, "/a.mp3")
	require.NoError(t, c.Start(0))

	c.SeekFraction(0.5)
	mock.SetPosition(0) // stale transport report right after the restart

	// Repeated snapshots report the target without using it up.
	assert.Equal(t, 50*time.Second, c.Status().Position)
	assert.Equal(t, 50*time.Second, c.Status().Position)

	// The next refresh tick still sees the override.
	assert.Equal(t, 50*time.Second, c.Tick().Position)
}

func TestTick_StoppedReportsZeroPosition(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3")

	st := c.Tick()

	assert.Equal(t, StateStopped, st.State)
	assert.Equal(t, time.Duration(0), st.Position)
}

func TestTick_NegativePositionClamped(t *testing.T) {
	c, mock := newTestController(t, map[string]time.Duration{"/a.mp3": 100 * time.Second}, "/a.mp3")
	require.NoError(t, c.Start(0))

	mock.SetPosition(-5 * time.Second)
	st := c.Tick()

	assert.Equal(t, time.Duration(0), st.Position)
}

func TestRemoveTrack_CurrentStopsPlayback(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3", "/b.mp3")
	require.NoError(t, c.Start(1))

	require.NoError(t, c.RemoveTrack(1))

	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, -1, c.Store().CurrentIndex())
	assert.Positive(t, mock.StopCalls())
}

func TestRemoveTrack_OtherKeepsPlaying(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3", "/b.mp3")
	require.NoError(t, c.Start(1))

	require.NoError(t, c.RemoveTrack(0))

	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, 0, c.Store().CurrentIndex())
}

func TestRemoveTrack_OutOfRange(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3")

	assert.ErrorIs(t, c.RemoveTrack(7), playlist.ErrOutOfRange)
}

func TestClearTracks_StopsPlayback(t *testing.T) {
	c, _ := newTestController(t, nil, "/a.mp3")
	require.NoError(t, c.Start(0))

	c.ClearTracks()

	assert.Equal(t, StateStopped, c.State())
	assert.True(t, c.Store().IsEmpty())
}

func TestSetVolume_ClampsAndApplies(t *testing.T) {
	c, mock := newTestController(t, nil, "/a.mp3")

	c.SetVolume(1.7)
	assert.Equal(t, 1.0, c.Volume())

	c.SetVolume(-0.3)
	assert.Equal(t, 0.0, c.Volume())

	assert.Equal(t, []float64{1.0, 0.0}, mock.VolumeCalls())
}

func TestCycleRepeat(t *testing.T) {
	c, _ := newTestController(t, nil)

	assert.Equal(t, RepeatAll, c.CycleRepeat())
	assert.Equal(t, RepeatOne, c.CycleRepeat())
	assert.Equal(t, RepeatOff, c.CycleRepeat())
}

func TestToggleShuffle(t *testing.T) {
	c, _ := newTestController(t, nil)

	assert.True(t, c.ToggleShuffle())
	assert.False(t, c.ToggleShuffle())
}
