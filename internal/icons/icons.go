// Package icons maps transport and mode indicators to the configured icon
// style. Terminals without good glyph coverage can fall back to ASCII.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleUnicode Style = "unicode"
	StyleASCII   Style = "ascii"
)

// Icons holds the indicator characters for the current style.
type Icons struct {
	Play      string
	Pause     string
	Stop      string
	Shuffle   string
	RepeatAll string
	RepeatOne string
	Volume    string
	Note      string
}

var (
	unicodeIcons = Icons{
		Play:      "▶",
		Pause:     "⏸",
		Stop:      "■",
		Shuffle:   "🔀",
		RepeatAll: "🔁",
		RepeatOne: "🔂",
		Volume:    "🔊",
		Note:      "♪",
	}

	asciiIcons = Icons{
		Play:      ">",
		Pause:     "||",
		Stop:      "[]",
		Shuffle:   "[S]",
		RepeatAll: "[R]",
		RepeatOne: "[R1]",
		Volume:    "vol",
		Note:      "*",
	}

	current = unicodeIcons
)

// Init selects the active icon set. Call once at startup with the config
// value; unknown values keep the unicode set.
func Init(style string) {
	switch Style(style) {
	case StyleASCII:
		current = asciiIcons
	default:
		current = unicodeIcons
	}
}

func Play() string      { return current.Play }
func Pause() string     { return current.Pause }
func Stop() string      { return current.Stop }
func Shuffle() string   { return current.Shuffle }
func RepeatAll() string { return current.RepeatAll }
func RepeatOne() string { return current.RepeatOne }
func Volume() string    { return current.Volume }
func Note() string      { return current.Note }
