package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quartzplayer/quartz/internal/app"
	"github.com/quartzplayer/quartz/internal/config"
	"github.com/quartzplayer/quartz/internal/errmsg"
	"github.com/quartzplayer/quartz/internal/icons"
	"github.com/quartzplayer/quartz/internal/mpris"
	"github.com/quartzplayer/quartz/internal/playback"
	"github.com/quartzplayer/quartz/internal/player"
	"github.com/quartzplayer/quartz/internal/playlist"
	"github.com/quartzplayer/quartz/internal/state"
	"github.com/quartzplayer/quartz/internal/tags"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	icons.Init(cfg.Icons)

	// Settings persistence is best-effort: a broken database falls back to
	// config defaults.
	var stateMgr state.Interface
	if mgr, err := state.Open(); err == nil {
		stateMgr = mgr
	} else {
		stateMgr = state.NewMock()
	}
	defer stateMgr.Close()

	store := playlist.NewStore()
	controller := playback.New(player.New(), store)
	controller.SetVolume(cfg.Volume)

	playlistPath := cfg.PlaylistFile
	if session, err := stateMgr.GetSession(); err == nil && session != nil {
		controller.SetVolume(session.Volume)
		controller.SetShuffle(session.Shuffle)
		controller.SetRepeatMode(playback.RepeatMode(session.RepeatMode))
		if session.PlaylistPath != "" {
			playlistPath = session.PlaylistPath
		}
	}

	// Startup playlist: command-line paths win, otherwise the last saved
	// playlist, otherwise the configured default folder.
	switch {
	case len(os.Args) > 1:
		for _, arg := range os.Args[1:] {
			found, err := tags.FindMusicFiles(arg)
			if err != nil {
				continue
			}
			store.Add(found...)
		}
	default:
		if _, err := os.Stat(playlistPath); err == nil {
			if err := store.Load(playlistPath); err == nil {
				cfg.PlaylistFile = playlistPath
			}
		}
		if store.IsEmpty() && cfg.DefaultFolder != "" {
			if found, err := tags.FindMusicFiles(cfg.DefaultFolder); err == nil {
				store.Add(found...)
			}
		}
	}

	m := app.New(cfg, stateMgr, controller)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Media keys arrive over D-Bus on other goroutines; forward them onto
	// the update loop.
	adapter, err := mpris.New(controller, func(fn func()) {
		p.Send(app.ControlMsg{Fn: fn})
	})
	if err == nil {
		defer adapter.Close()
	}

	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quartz: %v\n", err)
		os.Exit(1)
	}
}
