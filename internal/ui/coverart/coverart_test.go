package coverart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func testImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	out, err := Render(testImage(t), 10, 5)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Errorf("rendered %d rows, want 5", len(lines))
	}
	for i, line := range lines {
		if !strings.Contains(line, halfBlock) {
			t.Errorf("row %d has no half-block cells", i)
		}
	}
}

func TestRender_BadData(t *testing.T) {
	if _, err := Render([]byte("not an image"), 10, 5); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestRender_InvalidSize(t *testing.T) {
	if _, err := Render(testImage(t), 0, 5); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestPlaceholder_Deterministic(t *testing.T) {
	a := Placeholder("/music/a.mp3", 12, 6)
	b := Placeholder("/music/a.mp3", 12, 6)
	if a != b {
		t.Error("same seed produced different placeholders")
	}

	if lines := strings.Split(a, "\n"); len(lines) != 6 {
		t.Errorf("placeholder rows = %d, want 6", len(lines))
	}
}
