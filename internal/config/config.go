package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const playlistFileName = "playlist.json"

type Config struct {
	DefaultFolder string  `koanf:"default_folder"` // folder scanned at startup when no args given
	PlaylistFile  string  `koanf:"playlist_file"`  // path used by save/load playlist
	Volume        float64 `koanf:"volume"`         // initial volume 0.0-1.0
	Icons         string  `koanf:"icons"`          // "unicode" or "ascii"
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Volume: 0.85,
		Icons:  "unicode",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	if cfg.PlaylistFile == "" {
		cfg.PlaylistFile = defaultPlaylistFile()
	} else {
		cfg.PlaylistFile = expandPath(cfg.PlaylistFile)
	}

	if cfg.Volume < 0 || cfg.Volume > 1 {
		cfg.Volume = 0.85
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/quartz/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "quartz", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func defaultPlaylistFile() string {
	path, err := xdg.DataFile(filepath.Join("quartz", playlistFileName))
	if err != nil {
		return playlistFileName
	}
	return path
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
