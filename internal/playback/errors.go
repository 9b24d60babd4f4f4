package playback

import "fmt"

// LoadError reports that the transport could not open or decode a file.
// It is the only transport failure surfaced to the user; steady-state
// transport errors (pause, seek, stop) are swallowed at the controller
// boundary so the UI stays responsive.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
