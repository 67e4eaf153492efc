package atom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/photon"
)

const (
	ElectronToProtonDistance = 150.0
	MinElectronDistance      = 5.0

	// ElectronDistanceDelta is the spiral's radial speed in units per second.
	ElectronDistanceDelta = 35.0

	// InitialAngularSpeed is in radians per second.
	InitialAngularSpeed = 3.0

	// angularAcceleration multiplies the angular speed once per tick.
	angularAcceleration = 1.008
)

// ClassicalSolarSystem is an electron orbiting the proton like a planet.
// It radiates energy and spirals into the nucleus; once it gets there the
// atom is destroyed until Reset.
type ClassicalSolarSystem struct {
	base

	distance     float64
	angle        float64
	angularSpeed float64
	destroyed    bool
	elapsed      float64
	destroyedAt  float64
}

func NewClassicalSolarSystem(deps Deps) *ClassicalSolarSystem {
	deps = deps.withDefaults()
	m := &ClassicalSolarSystem{base: newBase(NameClassicalSolarSystem, deps.Rand)}
	m.Reset()
	return m
}

func (m *ClassicalSolarSystem) Distance() float64 { return m.distance }

func (m *ClassicalSolarSystem) Destroyed() bool { return m.destroyed }

// DestroyedAt returns the simulated time at which the electron reached the
// nucleus.
func (m *ClassicalSolarSystem) DestroyedAt() (float64, bool) {
	return m.destroyedAt, m.destroyed
}

func (m *ClassicalSolarSystem) ElectronPosition() r2.Vec {
	return orbitPoint(m.position, m.distance, m.angle)
}

func (m *ClassicalSolarSystem) Step(dt float64) {
	if m.destroyed {
		return
	}
	m.elapsed += dt

	m.angle = math.Mod(m.angle-m.angularSpeed*dt, 2*math.Pi)
	m.angularSpeed *= angularAcceleration
	m.distance = clamp(m.distance-ElectronDistanceDelta*dt, 0, ElectronToProtonDistance)

	if m.distance <= MinElectronDistance {
		m.distance = 0
		m.destroyed = true
		m.destroyedAt = m.elapsed
	}
}

// ProcessPhoton does nothing; photons pass through a classical atom.
func (m *ClassicalSolarSystem) ProcessPhoton(p *photon.Photon) {}

func (m *ClassicalSolarSystem) Reset() {
	m.distance = ElectronToProtonDistance
	m.angle = m.rand.Float64() * 2 * math.Pi
	m.angularSpeed = InitialAngularSpeed
	m.destroyed = false
	m.elapsed = 0
	m.destroyedAt = 0
}
