package export

import (
	"strings"
	"testing"

	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2, "#00ff00")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("expected 4x4 dots at scale 2")
	}
	if !strings.Contains(svg, `cx="7.0" cy="7.0"`) {
		t.Errorf("expected the second dot in the far corner, got\n%s", svg)
	}
}

func TestOrbitalToSVG(t *testing.T) {
	g := orbital.NewCache(21, false).Brightness(quantum.Ground)
	svg := OrbitalToSVG(g, 3)

	if !strings.Contains(svg, `width="126" height="126"`) {
		t.Error("expected 42 cells of 3 units")
	}
	n := strings.Count(svg, "<rect")
	if n < 2 || n > 42*42+1 {
		t.Errorf("unexpected cell count %d", n)
	}
	if !strings.Contains(svg, viz.ShadeColor(1).Hex()) {
		t.Error("expected the peak color")
	}
}
