// Package tags resolves track metadata from local audio files: display tags,
// stream duration, and embedded or sibling cover art. It is stateless; every
// function takes a path and degrades silently when a file cannot be parsed.
package tags

import (
	"path/filepath"
	"strings"
)

// File extensions supported by the probe.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag contains the display metadata for a track.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	Year        int
	TrackNumber int
}

// IsMusicFile returns true if the path has a supported audio file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// DisplayName returns the name shown for a track in the playlist.
func DisplayName(path string) string {
	return filepath.Base(path)
}
