package atom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/transition"
)

const (
	// MinTimeInStateBeforeAbsorption and MinTimeInStateBeforeEmission keep
	// the electron from flickering between states, in seconds.
	MinTimeInStateBeforeAbsorption = 0.75
	MinTimeInStateBeforeEmission   = 1.0

	// AbsorptionCloseness is how near a photon must pass to the electron.
	AbsorptionCloseness = 15.0

	// StimulatedEmissionOffset separates the stimulated photon from the
	// one that triggered it.
	StimulatedEmissionOffset = 10.0

	absorptionProbability          = 1.0
	stimulatedEmissionProbability  = 1.0
	spontaneousEmissionProbability = 0.5

	// orbitRate is the angular speed in the ground state; level n turns
	// 1/n² as fast.
	orbitRate = 480 * math.Pi / 180
)

var orbitRadii = [quantum.MaxN]float64{15, 44, 81, 124, 174, 233}

// OrbitRadius returns the Bohr orbit radius of level n.
func OrbitRadius(n int) float64 {
	return orbitRadii[n-1]
}

// OrbitRate returns the angular speed of the electron at level n in
// radians per second.
func OrbitRate(n int) float64 {
	return orbitRate / float64(n*n)
}

// levels is the electron of the Bohr family: a single level n that orbits
// the nucleus and moves between levels by absorbing or emitting photons.
type levels struct {
	base

	absorption  *transition.AbsorptionModel
	n           int
	timeInState float64
	angle       float64

	// hits decides whether a photon is close enough to interact.
	hits func(p *photon.Photon) bool
}

func (e *levels) ElectronPosition() r2.Vec {
	return orbitPoint(e.position, OrbitRadius(e.n), e.angle)
}

func (e *levels) State() quantum.Numbers { return quantum.Numbers{N: e.n, L: 0, M: 0} }

func (e *levels) N() int { return e.n }

func (e *levels) TimeInState() float64 { return e.timeInState }

// ElectronAngle returns the electron's orbit angle in radians.
func (e *levels) ElectronAngle() float64 { return e.angle }

func (e *levels) hitsElectron(p *photon.Photon) bool {
	return photon.Collides(p.Position, e.ElectronPosition(), AbsorptionCloseness)
}

// hitsOrbit treats the whole orbit as the electron.
func (e *levels) hitsOrbit(p *photon.Photon) bool {
	return math.Abs(p.DistanceTo(e.position)-OrbitRadius(e.n)) <= AbsorptionCloseness
}

func (e *levels) Step(dt float64) {
	e.timeInState += dt
	e.angle = advanceOrbit(e.angle, OrbitRate(e.n), dt)
	e.spontaneousEmission()
}

func (e *levels) ProcessPhoton(p *photon.Photon) {
	if e.absorb(p) {
		return
	}
	e.stimulatedEmission(p)
}

func (e *levels) absorb(p *photon.Photon) bool {
	if p.EmittedByAtom || e.n >= transition.MaxState || e.timeInState < MinTimeInStateBeforeAbsorption {
		return false
	}
	if !e.hits(p) {
		return false
	}
	nNew, ok := e.absorption.HigherStateForWavelength(e.n, p.Wavelength())
	if !ok || e.rand.Float64() >= absorptionProbability {
		return false
	}
	e.events.absorb(p)
	e.setN(nNew, false)
	return true
}

func (e *levels) stimulatedEmission(p *photon.Photon) bool {
	if e.n <= transition.GroundState || e.timeInState < MinTimeInStateBeforeEmission {
		return false
	}
	if !e.hits(p) {
		return false
	}
	nNew, ok := e.absorption.LowerStateForWavelength(e.n, p.Wavelength())
	if !ok || e.rand.Float64() >= stimulatedEmissionProbability {
		return false
	}
	e.events.emit(Emission{
		Wavelength: p.Wavelength(),
		Position:   r2.Add(p.Position, r2.Vec{X: StimulatedEmissionOffset}),
		Direction:  p.Direction,
		Kind:       Stimulated,
	})
	e.setN(nNew, false)
	return true
}

func (e *levels) spontaneousEmission() bool {
	if e.n <= transition.GroundState || e.timeInState < MinTimeInStateBeforeEmission {
		return false
	}
	if e.rand.Float64() >= spontaneousEmissionProbability {
		return false
	}
	nNew := transition.GroundState + e.rand.Intn(e.n-transition.GroundState)
	wl, err := e.absorption.EmissionWavelength(e.n, nNew)
	if err != nil {
		panic(fmt.Sprintf("atom: emission %d -> %d: %v", e.n, nNew, err))
	}
	e.events.emit(Emission{
		Wavelength: wl,
		Position:   e.ElectronPosition(),
		Direction:  e.spontaneousEmissionDirection(),
		Kind:       Spontaneous,
	})
	e.setN(nNew, false)
	return true
}

// spontaneousEmissionDirection is random for the inner levels. The outer
// levels sit near the edge of the box, so their photons head back across
// the nucleus.
func (e *levels) spontaneousEmissionDirection() float64 {
	if e.n < 5 {
		return randomEmissionDirection(e.rand)
	}
	return towardNucleusDirection(e.rand, e.angle)
}

func (e *levels) setN(n int, resetting bool) {
	from := e.State()
	e.n = n
	e.timeInState = 0
	e.events.transition(Transition{From: from, To: e.State(), Resetting: resetting})
}

func (e *levels) Reset() {
	if e.n != transition.GroundState {
		e.setN(transition.GroundState, true)
	}
	e.timeInState = 0
	e.angle = e.rand.Float64() * 2 * math.Pi
}

// Bohr quantizes the orbit of the solar system model. Only a photon that
// passes near the electron can interact with it.
type Bohr struct {
	levels
}

func NewBohr(deps Deps) *Bohr {
	deps = deps.withDefaults()
	m := &Bohr{levels: newLevels(NameBohr, deps)}
	m.hits = m.hitsElectron
	return m
}

func newLevels(name string, deps Deps) levels {
	return levels{
		base:       newBase(name, deps.Rand),
		absorption: deps.Absorption,
		n:          transition.GroundState,
		angle:      deps.Rand.Float64() * 2 * math.Pi,
	}
}

// SetN moves the electron to level n, ignoring the time-in-state gates.
func (e *levels) SetN(n int) error {
	if n < transition.GroundState || n > transition.MaxState {
		return fmt.Errorf("%w: n=%d", quantum.ErrInvalidState, n)
	}
	if n != e.n {
		e.setN(n, false)
	}
	return nil
}
