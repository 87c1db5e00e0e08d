package styles

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// FromColor converts any color to a lipgloss hex color.
func FromColor(c color.Color) lipgloss.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent
		return defaultTheme.BgBase
	}
	return lipgloss.Color(cf.Hex())
}

// Dim darkens c towards the base background, keeping its hue. Used to
// tint panels with artwork colors without hurting text contrast.
func Dim(c color.Color, amount float64) lipgloss.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return defaultTheme.BgBase
	}
	bg, err := colorful.Hex(string(defaultTheme.BgBase))
	if err != nil {
		return lipgloss.Color(cf.Hex())
	}
	return lipgloss.Color(cf.BlendLab(bg, amount).Clamped().Hex())
}
