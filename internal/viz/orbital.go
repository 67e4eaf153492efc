package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/hydrogensim/internal/orbital"
)

const shadeRamp = " .:-=+*#%@"

var (
	cloudDark  = colorful.Color{R: 0.02, G: 0.02, B: 0.08}
	cloudLight = colorful.Color{R: 0.55, G: 0.85, B: 1}
)

// Shade maps a brightness in [0, 1] to a ramp character.
func Shade(b float64) byte {
	b = min(max(b, 0), 1)
	return shadeRamp[int(b*float64(len(shadeRamp)-1)+0.5)]
}

// ShadeColor blends from the background to the cloud tint.
func ShadeColor(b float64) colorful.Color {
	b = min(max(b, 0), 1)
	return cloudDark.BlendLab(cloudLight, b).Clamped()
}

// RenderOrbital draws a brightness image as shaded text. Each cell is two
// characters wide so the image keeps its aspect. With color off only the
// ramp characters are written.
func RenderOrbital(g orbital.Grid, color bool) string {
	var b strings.Builder
	rows := g.Size()
	for r := 0; r < rows; r++ {
		for col := 0; col < rows; col++ {
			v := g.At(r, col)
			cell := strings.Repeat(string(Shade(v)), 2)
			if color {
				cell = lipgloss.NewStyle().Foreground(lipgloss.Color(ShadeColor(v).Hex())).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
