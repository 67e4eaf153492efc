package atom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/photon"
)

const (
	PlumPuddingRadius = 30.0
	ElectronRadius    = 8.0

	// PlumPuddingWavelength is the only wavelength the plum pudding emits.
	PlumPuddingWavelength = 150

	MaxPhotonsAbsorbed = 1

	plumAbsorptionProbability = 0.5
	plumEmissionProbability   = 0.1

	// plumElectronSpeed is in distance units per second along the line of
	// oscillation.
	plumElectronSpeed = 60.0
)

// PlumPudding is a positive sphere with an electron at rest in its center.
// An absorbed photon sets the electron oscillating along a random line
// through the center; the oscillating electron may re-emit a UV photon each
// time it completes a full oscillation.
type PlumPudding struct {
	base

	lineAngle float64
	offset    float64
	sign      float64
	moving    bool
	absorbed  int
	crossings int
}

func NewPlumPudding(deps Deps) *PlumPudding {
	deps = deps.withDefaults()
	m := &PlumPudding{base: newBase(NamePlumPudding, deps.Rand)}
	m.Reset()
	return m
}

func (m *PlumPudding) ElectronPosition() r2.Vec {
	return orbitPoint(m.position, m.offset, m.lineAngle)
}

// Moving reports whether the electron is oscillating.
func (m *PlumPudding) Moving() bool { return m.moving }

func (m *PlumPudding) PhotonsAbsorbed() int { return m.absorbed }

// CanAbsorb reports whether p may be absorbed in the current state, ignoring
// position.
func (m *PlumPudding) CanAbsorb(p *photon.Photon) bool {
	if p.EmittedByAtom || m.absorbed >= MaxPhotonsAbsorbed {
		return false
	}
	return !(m.moving && m.absorbed == 0)
}

func (m *PlumPudding) ProcessPhoton(p *photon.Photon) {
	if !m.CanAbsorb(p) {
		return
	}
	if !photon.Collides(p.Position, m.ElectronPosition(), ElectronRadius+photon.Radius) {
		return
	}
	if m.rand.Float64() >= plumAbsorptionProbability {
		return
	}

	m.absorbed++
	if !m.moving {
		m.lineAngle = m.rand.Float64() * math.Pi
		m.offset = 0
		m.sign = 1
		m.crossings = 0
		m.moving = true
	}
	m.events.absorb(p)
}

func (m *PlumPudding) Step(dt float64) {
	if !m.moving {
		return
	}

	prev := m.offset
	next := m.offset + m.sign*plumElectronSpeed*dt
	if math.Abs(next) >= PlumPuddingRadius {
		next = clamp(next, -PlumPuddingRadius, PlumPuddingRadius)
		m.sign = -m.sign
	}
	m.offset = next

	crossed := (prev > 0 && next <= 0) || (prev < 0 && next >= 0)
	if crossed {
		m.crossed()
	}
}

// crossed handles the electron passing through the center.
func (m *PlumPudding) crossed() {
	m.crossings++
	if m.absorbed == 0 {
		m.moving = false
		m.offset = 0
		m.crossings = 0
		return
	}
	if m.crossings%2 != 0 {
		return
	}
	if m.rand.Float64() >= plumEmissionProbability {
		return
	}
	m.absorbed--
	m.events.emit(Emission{
		Wavelength: PlumPuddingWavelength,
		Position:   m.ElectronPosition(),
		Direction:  randomEmissionDirection(m.rand),
		Kind:       Spontaneous,
	})
}

func (m *PlumPudding) Reset() {
	m.lineAngle = 0
	m.offset = 0
	m.sign = 1
	m.moving = false
	m.absorbed = 0
	m.crossings = 0
}
