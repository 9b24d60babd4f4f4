package app

import "strings"

// KeyBinding describes a single key binding for the help line.
type KeyBinding struct {
	Keys        []string
	Description string
	Context     string // "global", "playback", "playlist"
}

// KeyMap contains all key bindings for help generation.
var KeyMap = []KeyBinding{
	// Global
	{[]string{"q", "ctrl+c"}, "Quit", "global"},
	{[]string{"/"}, "Filter playlist", "global"},

	// Playback
	{[]string{"space"}, "Play/pause", "playback"},
	{[]string{"enter"}, "Play selected", "playback"},
	{[]string{"s"}, "Stop", "playback"},
	{[]string{"n", "right"}, "Next track", "playback"},
	{[]string{"p", "left"}, "Previous track", "playback"},
	{[]string{"0-9"}, "Seek to 0%-90%", "playback"},
	{[]string{"-", "+"}, "Volume down/up", "playback"},
	{[]string{"x"}, "Toggle shuffle", "playback"},
	{[]string{"r"}, "Cycle repeat mode", "playback"},

	// Playlist
	{[]string{"j", "down"}, "Move down", "playlist"},
	{[]string{"k", "up"}, "Move up", "playlist"},
	{[]string{"a"}, "Add file or folder", "playlist"},
	{[]string{"d", "delete"}, "Remove selected", "playlist"},
	{[]string{"C"}, "Clear playlist", "playlist"},
	{[]string{"ctrl+s"}, "Save playlist", "playlist"},
	{[]string{"ctrl+o"}, "Load playlist", "playlist"},
}

// KeysByContext returns key bindings filtered by context.
func KeysByContext(context string) []KeyBinding {
	var result []KeyBinding
	for _, kb := range KeyMap {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Label returns the binding's keys joined for display ("n/right").
func (kb KeyBinding) Label() string {
	return strings.Join(kb.Keys, "/")
}

// helpLine renders the given bindings as a single help string. The caller
// truncates it to the window width.
func helpLine(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, kb.Label()+" "+strings.ToLower(kb.Description))
	}
	return strings.Join(parts, " · ")
}
