package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/photon"
)

const (
	nucleusRadius  = 4.0
	electronRadius = 5.0
	waveAmplitude  = 8.0
)

// DrawScene renders the zoomed-in box: its outline, the atom and every
// photon in flight.
func DrawScene(c *Canvas, box photon.Box, model atom.Model, photons []*photon.Photon) {
	c.Clear()
	p := NewProjector(c, box.Min(), box.Max())

	x0, y0 := p.Point(box.Min())
	x1, y1 := p.Point(box.Max())
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)

	if model != nil {
		drawAtom(c, p, model)
	}
	for _, ph := range photons {
		x, y := p.Point(ph.Position)
		c.FillDisc(x, y, 1)
	}
}

func drawAtom(c *Canvas, p Projector, model atom.Model) {
	cx, cy := p.Point(model.Position())
	nucleus := true

	switch m := model.(type) {
	case *atom.BilliardBall:
		c.FillDisc(cx, cy, p.Length(atom.BilliardBallRadius))
		return
	case *atom.PlumPudding:
		c.DrawCircle(cx, cy, p.Length(atom.PlumPuddingRadius))
		nucleus = false
	case *atom.Bohr:
		c.DrawCircle(cx, cy, p.Length(atom.OrbitRadius(m.N())))
	case *atom.DeBroglie:
		drawStandingWave(c, p, m)
	case *atom.Schrodinger:
		c.DrawCircle(cx, cy, p.Length(atom.OrbitRadius(m.State().N)))
	}

	if nucleus {
		c.FillDisc(cx, cy, p.Length(nucleusRadius))
	}
	if _, wave := model.(*atom.DeBroglie); wave {
		return
	}
	if e, ok := model.(atom.ElectronLocator); ok {
		ex, ey := p.Point(e.ElectronPosition())
		c.FillDisc(ex, ey, p.Length(electronRadius))
	}
}

func drawStandingWave(c *Canvas, p Projector, m *atom.DeBroglie) {
	center := m.Position()
	radius := atom.OrbitRadius(m.N())
	steps := max(64, int(2*math.Pi*p.Length(radius)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		r := radius + m.RadialOffset(a, waveAmplitude)
		x, y := p.Point(r2.Add(center, r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}))
		c.Set(x, y)
	}
}
