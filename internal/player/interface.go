// Package player implements the audio transport: decoding local files and
// driving speaker output. It knows nothing about playlists or advance policy;
// the playback controller owns those.
package player

import "time"

// Transport defines the audio engine contract for dependency injection and
// testing. Seeking is expressed as Play(offset): the engine restarts output
// at the requested position rather than seeking in place.
type Transport interface {
	// Load opens and decodes the file's headers without starting output.
	Load(path string) error
	// Play (re)starts output of the loaded track at the given offset.
	Play(offset time.Duration) error
	Pause()
	Resume()
	Stop()
	// SetVolume sets the output volume (0.0 to 1.0). The setting does not
	// survive a Load/Play cycle and must be re-applied by the caller.
	SetVolume(level float64)
	// Position reports the elapsed position of the current track.
	// Best-effort: it may briefly report a stale value after a restart.
	Position() time.Duration
	// Busy reports whether the engine holds a track (playing or paused).
	Busy() bool
	State() State
}

// Verify implementations at compile time.
var (
	_ Transport = (*Player)(nil)
	_ Transport = (*Mock)(nil)
)
