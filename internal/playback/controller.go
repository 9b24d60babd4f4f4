// Package playback owns the playback state machine: track loading, transport
// transitions, shuffle/repeat advance policy, seek reconciliation against the
// transport's asynchronous position feed, and end-of-track detection.
package playback

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/quartzplayer/quartz/internal/player"
	"github.com/quartzplayer/quartz/internal/playlist"
	"github.com/quartzplayer/quartz/internal/tags"
)

// endGuard is the tolerance window for detecting end-of-track from a polled
// position: the track counts as finished once the position is within this
// interval of the known duration.
const endGuard = 400 * time.Millisecond

// Controller drives the transport against the playlist store. All methods
// run on the UI event loop; there is no internal locking.
type Controller struct {
	store     *playlist.Store
	transport player.Transport

	playing bool // playing=false implies paused=false
	paused  bool
	shuffle bool
	repeat  RepeatMode

	knownDuration time.Duration
	// pendingManual is consumed by exactly one Tick after a seek: the
	// transport's position feed resets asynchronously after a restart and
	// is unreliable for one tick.
	pendingManual *time.Duration

	volume float64

	// probeDuration resolves a track's duration; replaced in tests.
	probeDuration func(path string) time.Duration
	// randIndex picks a shuffle index in [0, n); replaced in tests.
	randIndex func(n int) int
}

// New creates a controller over the given transport and store.
func New(transport player.Transport, store *playlist.Store) *Controller {
	return &Controller{
		store:         store,
		transport:     transport,
		volume:        0.85,
		probeDuration: tags.Duration,
		randIndex:     rand.IntN,
	}
}

// Store exposes the playlist store for listing and filtering.
func (c *Controller) Store() *playlist.Store { return c.store }

// State returns the current playback state.
func (c *Controller) State() State {
	switch {
	case !c.playing:
		return StateStopped
	case c.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}

func (c *Controller) IsPlaying() bool { return c.playing && !c.paused }
func (c *Controller) IsPaused() bool  { return c.playing && c.paused }
func (c *Controller) IsStopped() bool { return !c.playing }

// Start loads and plays the track at index. A load or start failure is
// returned as a *LoadError and leaves the controller stopped.
func (c *Controller) Start(index int) error {
	path := c.store.Path(index)
	if path == "" {
		return fmt.Errorf("no track at index %d", index)
	}

	if err := c.transport.Load(path); err != nil {
		c.playing = false
		c.paused = false
		return &LoadError{Path: path, Err: err}
	}

	c.store.SetCurrentIndex(index)
	c.knownDuration = c.probeDuration(path)

	if err := c.transport.Play(0); err != nil {
		c.playing = false
		c.paused = false
		return &LoadError{Path: path, Err: err}
	}

	// The transport's volume setting does not survive a load/play cycle.
	c.transport.SetVolume(c.volume)

	c.playing = true
	c.paused = false
	c.pendingManual = nil

	return nil
}

// PlayPause toggles playback: starts the current (or first) track when
// stopped, otherwise flips pause. A no-op on an empty playlist.
func (c *Controller) PlayPause() error {
	if c.store.IsEmpty() {
		return nil
	}

	if !c.playing {
		index := c.store.CurrentIndex()
		if index < 0 {
			index = 0
		}
		return c.Start(index)
	}

	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return nil
}

// Pause pauses playback; a no-op unless playing.
func (c *Controller) Pause() {
	if !c.playing || c.paused {
		return
	}
	c.transport.Pause()
	c.paused = true
}

// Resume resumes paused playback.
func (c *Controller) Resume() {
	if !c.playing || !c.paused {
		return
	}
	c.transport.Resume()
	c.paused = false
}

// Stop halts the transport. The current index is left untouched; the
// displayed position resets to zero.
func (c *Controller) Stop() {
	c.transport.Stop()
	c.playing = false
	c.paused = false
	c.pendingManual = nil
}

// Next advances per the advance policy: a random index under shuffle,
// otherwise current+1, wrapping under repeat-all or stopping at the end
// (the index is left unchanged on stop, matching Stop's contract).
func (c *Controller) Next() error {
	return c.advance(true)
}

// Previous moves backward: a random index under shuffle, otherwise
// current-1, wrapping under repeat-all or clamping at the first track.
// Unlike Next, Previous never stops playback.
func (c *Controller) Previous() error {
	return c.advance(false)
}

func (c *Controller) advance(forward bool) error {
	n := c.store.Len()
	if n == 0 {
		return nil
	}

	if c.shuffle {
		return c.Start(c.randIndex(n))
	}

	cur := c.store.CurrentIndex()
	if cur < 0 {
		cur = 0
		if forward {
			return c.Start(cur)
		}
	}

	if forward {
		next := cur + 1
		if next >= n {
			if c.repeat != RepeatAll {
				c.Stop()
				return nil
			}
			next = 0
		}
		return c.Start(next)
	}

	prev := cur - 1
	if c.repeat == RepeatAll {
		prev = (cur - 1 + n) % n
	} else if prev < 0 {
		prev = 0
	}
	return c.Start(prev)
}

// SeekFraction restarts playback at fraction (0..1) of the known duration.
// When the duration is unknown the fraction is treated as absolute seconds
// (best-effort degraded mode).
func (c *Controller) SeekFraction(fraction float64) {
	var target time.Duration
	if c.knownDuration > 0 {
		target = time.Duration(fraction * float64(c.knownDuration))
	} else {
		target = time.Duration(fraction * float64(time.Second))
	}
	c.SeekTo(target)
}

// SeekTo restarts playback at an absolute offset. A no-op unless playing:
// the transport cannot seek a paused or stopped stream. Transport failures
// are swallowed.
func (c *Controller) SeekTo(target time.Duration) {
	if !c.playing || c.paused {
		return
	}
	path := c.store.Current()
	if path == "" {
		return
	}

	if target < 0 {
		target = 0
	}

	// The transport's seek primitive is a restart at the offset.
	if err := c.transport.Play(target); err == nil {
		c.transport.SetVolume(c.volume)
	}

	// The duration may have been unknown at load time.
	if d := c.probeDuration(path); d > 0 {
		c.knownDuration = d
	}

	// One-shot override: the next tick reports the requested offset rather
	// than a stale or momentarily-zero transport position.
	c.pendingManual = &target
}

// Position reports the playback position for external consumers (MPRIS).
// Unlike Tick it never consumes the pending seek override.
func (c *Controller) Position() time.Duration {
	if !c.playing {
		return 0
	}
	if c.pendingManual != nil {
		return *c.pendingManual
	}
	return c.transport.Position()
}

// Duration returns the current track's resolved duration, 0 when unknown.
func (c *Controller) Duration() time.Duration { return c.knownDuration }

// Status reports a display snapshot without the refresh tick's side effects:
// the pending seek override is read but not consumed and end-of-track is not
// evaluated. Key handlers use it to refresh the display between ticks so a
// fresh seek is still reported by the next real tick.
func (c *Controller) Status() Status {
	return c.status(c.Position())
}

// Status is the display snapshot produced by a refresh tick.
type Status struct {
	State    State
	Index    int // current index, -1 when unset
	Position time.Duration
	Duration time.Duration
	// Progress is Position/Duration in 0..1, or -1 when the duration is
	// unknown (the display keeps its previous value).
	Progress float64
}

// Tick is the refresh loop body, run on a fixed period while the window
// lives. While playing it resolves the display position (consuming the
// one-shot manual override if set) and evaluates end-of-track; while paused
// it reports the frozen position; while stopped it only reports the state.
func (c *Controller) Tick() Status {
	if !c.playing {
		return c.status(0)
	}
	if c.paused {
		return c.status(c.Position())
	}

	var pos time.Duration
	if c.pendingManual != nil {
		pos = *c.pendingManual
		c.pendingManual = nil
	} else {
		pos = c.transport.Position()
	}
	if pos < 0 {
		pos = 0
	}

	// An unknown duration never triggers end-of-track.
	if c.knownDuration > 0 && pos >= c.knownDuration-endGuard {
		if c.repeat == RepeatOne {
			// Restart the same track without advancing the index.
			if err := c.transport.Play(0); err == nil {
				c.transport.SetVolume(c.volume)
			}
			c.pendingManual = nil
			return c.status(0)
		}
		if err := c.Next(); err != nil {
			c.Stop()
		}
		return c.status(0)
	}

	return c.status(pos)
}

func (c *Controller) status(pos time.Duration) Status {
	st := Status{
		State:    c.State(),
		Index:    c.store.CurrentIndex(),
		Position: pos,
		Duration: c.knownDuration,
		Progress: -1,
	}
	if st.State == StateStopped {
		st.Position = 0
		st.Progress = 0
		return st
	}
	if c.knownDuration > 0 {
		st.Progress = float64(pos) / float64(c.knownDuration)
		if st.Progress > 1 {
			st.Progress = 1
		}
	}
	return st
}

// SetVolume clamps and stores the volume and applies it immediately.
func (c *Controller) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	c.volume = level
	c.transport.SetVolume(level)
}

// Volume returns the current volume level.
func (c *Controller) Volume() float64 { return c.volume }

// ToggleShuffle flips shuffle mode and returns the new value.
func (c *Controller) ToggleShuffle() bool {
	c.shuffle = !c.shuffle
	return c.shuffle
}

func (c *Controller) Shuffle() bool { return c.shuffle }

func (c *Controller) SetShuffle(enabled bool) { c.shuffle = enabled }

// CycleRepeat advances repeat mode (off → all → one → off) and returns it.
func (c *Controller) CycleRepeat() RepeatMode {
	c.repeat = c.repeat.Cycle()
	return c.repeat
}

func (c *Controller) RepeatMode() RepeatMode { return c.repeat }

func (c *Controller) SetRepeatMode(mode RepeatMode) { c.repeat = mode }

// AddTracks appends paths to the playlist (deduplicated).
func (c *Controller) AddTracks(paths ...string) bool {
	return c.store.Add(paths...)
}

// RemoveTrack removes the entry at index. Removing the current track stops
// playback and unsets the index.
func (c *Controller) RemoveTrack(index int) error {
	removedCurrent, err := c.store.Remove(index)
	if err != nil {
		return err
	}
	if removedCurrent {
		c.Stop()
	}
	return nil
}

// ClearTracks empties the playlist and stops playback.
func (c *Controller) ClearTracks() {
	c.store.Clear()
	c.Stop()
}

// SavePlaylist writes the playlist to path.
func (c *Controller) SavePlaylist(path string) error {
	return c.store.Save(path)
}

// LoadPlaylist replaces the playlist from path. Playback stops only when
// the load succeeds; on failure both playlist and playback are unchanged.
func (c *Controller) LoadPlaylist(path string) error {
	if err := c.store.Load(path); err != nil {
		return err
	}
	c.Stop()
	return nil
}

// Close stops the transport on shutdown. Transport state is not persisted.
func (c *Controller) Close() {
	c.Stop()
}
