package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG converts a Braille canvas to SVG format, one circle per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	// 2x4 sub-pixels per cell
	dotsX, dotsY := canvas.Width*2, canvas.Height*4

	var sb strings.Builder
	header(&sb, float64(dotsX)*scale, float64(dotsY)*scale)
	fmt.Fprintf(&sb, "<g fill=%q>\n", fill)

	dotRadius := scale * 0.4
	for y := 0; y < dotsY; y++ {
		for x := 0; x < dotsX; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// OrbitalToSVG draws a brightness image as square cells tinted like the
// terminal rendering. Dark cells are left to the background.
func OrbitalToSVG(g orbital.Grid, cell float64) string {
	size := g.Size()
	if size == 0 {
		return ""
	}

	var sb strings.Builder
	header(&sb, float64(size)*cell, float64(size)*cell)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			v := g.At(row, col)
			if viz.Shade(v) == ' ' {
				continue
			}
			fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
				float64(col)*cell, float64(row)*cell, cell, cell, viz.ShadeColor(v).Hex())
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
