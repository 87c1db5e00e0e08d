package artwork

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// HalfBlocks renders img into cols×rows terminal cells, two pixels per cell.
func HalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	px := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear) //nolint:gosec // positive
	b := px.Bounds()

	var sb strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range cols {
			top := pixelHex(px, b.Min.X+col, b.Min.Y+row*2)
			bottom := pixelHex(px, b.Min.X+col, b.Min.Y+row*2+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
	}
	return sb.String()
}

func pixelHex(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return "#000000"
	}
	return c.Clamped().Hex()
}
