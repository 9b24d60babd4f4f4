package styles

import "testing"

func TestGraphemes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"quartz", 6},
		{"日本語", 3},
		{"étude", 5}, // combining accent stays with its base
	}

	for _, tt := range tests {
		if got := len(graphemes(tt.input)); got != tt.want {
			t.Errorf("graphemes(%q) count = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c := parseHex("#ff0000")
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("parseHex(#ff0000) = %+v, want pure red", c)
	}

	// ANSI palette colors carry no RGB value and fall back to gray.
	gray := parseHex("240")
	if gray.R != 0.5 || gray.G != 0.5 || gray.B != 0.5 {
		t.Errorf("parseHex(240) = %+v, want neutral gray", gray)
	}
}

func TestGradient_Empty(t *testing.T) {
	if got := Gradient("", false, T().Primary, T().Secondary); got != "" {
		t.Errorf("Gradient(\"\") = %q, want empty", got)
	}
}
