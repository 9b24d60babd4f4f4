// Package coverart renders embedded cover images as colored half-block
// cells. Each terminal cell carries two vertically stacked pixels via the
// upper-half-block glyph, so an image of W×H cells uses a W×2H pixel grid.
package coverart

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // cover art decoder
	_ "image/png"  // cover art decoder
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

const halfBlock = "▀"

// Render decodes raw image bytes and draws them as a block of width×height
// terminal cells. Returns an error when the data is not a decodable image.
func Render(data []byte, width, height int) (string, error) {
	if width < 1 || height < 1 {
		return "", fmt.Errorf("invalid cover size %dx%d", width, height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode cover: %w", err)
	}

	scaled := resize.Resize(uint(width), uint(2*height), img, resize.Lanczos3)
	return renderPixels(scaled, width, height), nil
}

func renderPixels(img image.Image, width, height int) string {
	bounds := img.Bounds()

	var b strings.Builder
	for row := range height {
		for col := range width {
			top := pixelHex(img, bounds, col, 2*row)
			bottom := pixelHex(img, bounds, col, 2*row+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			b.WriteString(cell.Render(halfBlock))
		}
		if row < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func pixelHex(img image.Image, bounds image.Rectangle, x, y int) string {
	px := bounds.Min.X + x
	py := bounds.Min.Y + y
	if px >= bounds.Max.X {
		px = bounds.Max.X - 1
	}
	if py >= bounds.Max.Y {
		py = bounds.Max.Y - 1
	}
	r, g, b, _ := img.At(px, py).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
