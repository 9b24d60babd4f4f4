package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Player is the beep-backed audio transport.
type Player struct {
	state       State
	path        string
	file        *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	volumeLevel float64
}

// speakerSampleRate tracks the rate the speaker was initialized with so it
// can be re-initialized when a track with a different rate is played.
var speakerSampleRate beep.SampleRate

func New() *Player {
	return &Player{
		state:       Stopped,
		volumeLevel: 1.0,
	}
}

// Load opens the file and decodes its headers. Output is not started; a
// subsequent Play begins it. Any previously loaded track is released first.
func (p *Player) Load(path string) error {
	p.Stop()

	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		f.Close()
		return err
	}

	if err := ensureSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		f.Close()
		return err
	}

	p.path = path
	p.file = f
	p.streamer = streamer
	p.format = format

	return nil
}

// Play (re)starts output of the loaded track at the given offset. Calling it
// on an already playing track restarts output at the offset: this is the
// transport's seek primitive.
func (p *Player) Play(offset time.Duration) error {
	if p.streamer == nil {
		return fmt.Errorf("no track loaded")
	}

	speaker.Clear()

	pos := p.format.SampleRate.N(offset)
	pos = max(pos, 0)
	if maxPos := p.streamer.Len(); pos >= maxPos {
		pos = max(maxPos-1, 0)
	}
	if err := p.streamer.Seek(pos); err != nil {
		return err
	}

	p.ctrl = &beep.Ctrl{Streamer: p.streamer, Paused: false}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}

	speaker.Play(p.volume)
	p.state = Playing

	return nil
}

// Stop halts output and releases the loaded track.
func (p *Player) Stop() {
	if p.streamer == nil && p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.path = ""
	p.ctrl = nil
	p.volume = nil
	p.state = Stopped
}

func (p *Player) Pause() {
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

func (p *Player) Resume() {
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Position returns the elapsed position of the loaded track.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Busy() bool { return p.state.IsActive() }

func (p *Player) State() State { return p.state }

// Path returns the path of the loaded track ("" when none).
func (p *Player) Path() string { return p.path }

func ensureSpeaker(rate beep.SampleRate) error {
	if speakerSampleRate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	return nil
}
