//go:build linux

// Package mpris exposes the player on the org.mpris.MediaPlayer2 D-Bus
// interface so desktop media keys and applets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/quartzplayer/quartz/internal/playback"
	"github.com/quartzplayer/quartz/internal/tags"
)

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. The controller is driven
// from the UI event loop; D-Bus calls arrive on other goroutines, so every
// mutating call is forwarded through dispatch to be run on the loop.
func New(controller *playback.Controller, dispatch func(func())) (*Adapter, error) {
	a := &Adapter{}

	root := &rootAdapter{}
	player := &playerAdapter{controller: controller, dispatch: dispatch}

	a.server = server.NewServer("quartz", root, player)

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error  { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "Quartz", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/mp4", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional LoopStatus/Shuffle interfaces.
type playerAdapter struct {
	controller *playback.Controller
	dispatch   func(func())
}

func (p *playerAdapter) Next() error {
	p.dispatch(func() { _ = p.controller.Next() })
	return nil
}

func (p *playerAdapter) Previous() error {
	p.dispatch(func() { _ = p.controller.Previous() })
	return nil
}

func (p *playerAdapter) Pause() error {
	p.dispatch(p.controller.Pause)
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.dispatch(func() { _ = p.controller.PlayPause() })
	return nil
}

func (p *playerAdapter) Stop() error {
	p.dispatch(p.controller.Stop)
	return nil
}

func (p *playerAdapter) Play() error {
	p.dispatch(func() {
		if p.controller.IsPaused() {
			p.controller.Resume()
		} else if p.controller.IsStopped() {
			_ = p.controller.PlayPause()
		}
	})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.dispatch(func() {
		target := p.controller.Position() + time.Duration(offset)*time.Microsecond
		p.controller.SeekTo(target)
	})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.dispatch(func() {
		p.controller.SeekTo(time.Duration(position) * time.Microsecond)
	})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.controller.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error)        { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error       { return nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	path := p.controller.Store().Current()
	if path == "" {
		return types.Metadata{}, nil
	}

	tag := tags.Read(path)
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(path)),
		Length:      types.Microseconds(p.controller.Duration().Microseconds()),
		Title:       tag.Title,
		Artist:      []string{tag.Artist},
		Album:       tag.Album,
		TrackNumber: tag.TrackNumber,
	}

	if artPath := tags.FolderArtPath(path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.controller.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.dispatch(func() { p.controller.SetVolume(level) })
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.controller.Position().Microseconds(), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return !p.controller.Store().IsEmpty(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return !p.controller.Store().IsEmpty(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.controller.Store().IsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.controller.RepeatMode() {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	var mode playback.RepeatMode
	switch status {
	case types.LoopStatusTrack:
		mode = playback.RepeatOne
	case types.LoopStatusPlaylist:
		mode = playback.RepeatAll
	default:
		mode = playback.RepeatOff
	}
	p.dispatch(func() { p.controller.SetRepeatMode(mode) })
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.controller.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.dispatch(func() { p.controller.SetShuffle(shuffle) })
	return nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
