package atom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/transition"
)

// Schrodinger tracks the full (n, l, m) state. Absorption and emission follow
// the Bohr gates but only along dipole-allowed transitions, so some states,
// like (2,0,0), cannot decay on their own.
type Schrodinger struct {
	base

	absorption  *transition.AbsorptionModel
	orbitals    *orbital.Cache
	initial     quantum.Numbers
	state       quantum.Numbers
	timeInState float64
}

// NewSchrodinger returns a model in the initial state, which must be valid.
func NewSchrodinger(deps Deps, initial quantum.Numbers) (*Schrodinger, error) {
	return newSchrodinger(NameSchrodinger, deps, initial)
}

// NewExperiment returns the model standing in for the real atom. It behaves
// like the Schrödinger model from the ground state.
func NewExperiment(deps Deps) *Schrodinger {
	m, err := newSchrodinger(NameExperiment, deps, quantum.Ground)
	if err != nil {
		panic(err)
	}
	return m
}

func newSchrodinger(name string, deps Deps, initial quantum.Numbers) (*Schrodinger, error) {
	if !initial.Valid() {
		return nil, &quantum.InvalidStateError{N: initial.N, L: initial.L, M: initial.M}
	}
	deps = deps.withDefaults()
	return &Schrodinger{
		base:       newBase(name, deps.Rand),
		absorption: deps.Absorption,
		orbitals:   deps.Orbitals,
		initial:    initial,
		state:      initial,
	}, nil
}

func (m *Schrodinger) State() quantum.Numbers { return m.state }

func (m *Schrodinger) TimeInState() float64 { return m.timeInState }

// Orbital returns the brightness image of the current state. It reports
// false when the model has no orbital cache.
func (m *Schrodinger) Orbital() (orbital.Grid, bool) {
	if m.orbitals == nil {
		return orbital.Grid{}, false
	}
	return m.orbitals.Brightness(m.state), true
}

// SetState moves the electron to q, ignoring the time-in-state gates.
func (m *Schrodinger) SetState(q quantum.Numbers) error {
	if !q.Valid() {
		return &quantum.InvalidStateError{N: q.N, L: q.L, M: q.M}
	}
	if q != m.state {
		m.setState(q, false)
	}
	return nil
}

// hits treats the Bohr orbit of the current n as the electron cloud.
func (m *Schrodinger) hits(p *photon.Photon) bool {
	return math.Abs(p.DistanceTo(m.position)-OrbitRadius(m.state.N)) <= AbsorptionCloseness
}

func (m *Schrodinger) Step(dt float64) {
	m.timeInState += dt
	m.spontaneousEmission()
}

func (m *Schrodinger) ProcessPhoton(p *photon.Photon) {
	if m.absorb(p) {
		return
	}
	m.stimulatedEmission(p)
}

func (m *Schrodinger) absorb(p *photon.Photon) bool {
	n := m.state.N
	if p.EmittedByAtom || n >= transition.MaxState || m.timeInState < MinTimeInStateBeforeAbsorption {
		return false
	}
	if !m.hits(p) {
		return false
	}
	nNew, ok := m.absorption.HigherStateForWavelength(n, p.Wavelength())
	if !ok || !quantum.CanTransition(m.state, nNew) {
		return false
	}
	if m.rand.Float64() >= absorptionProbability {
		return false
	}
	m.events.absorb(p)
	m.moveTo(nNew)
	return true
}

func (m *Schrodinger) stimulatedEmission(p *photon.Photon) bool {
	n := m.state.N
	if n <= transition.GroundState || m.timeInState < MinTimeInStateBeforeEmission {
		return false
	}
	if !m.hits(p) {
		return false
	}
	nNew, ok := m.absorption.LowerStateForWavelength(n, p.Wavelength())
	if !ok || !quantum.CanTransition(m.state, nNew) {
		return false
	}
	if m.rand.Float64() >= stimulatedEmissionProbability {
		return false
	}
	m.events.emit(Emission{
		Wavelength: p.Wavelength(),
		Position:   r2.Add(p.Position, r2.Vec{X: StimulatedEmissionOffset}),
		Direction:  p.Direction,
		Kind:       Stimulated,
	})
	m.moveTo(nNew)
	return true
}

func (m *Schrodinger) spontaneousEmission() bool {
	if m.state.N <= transition.GroundState || m.timeInState < MinTimeInStateBeforeEmission {
		return false
	}
	nNew, ok := m.state.ChooseLowerN(m.rand)
	if !ok {
		return false
	}
	if m.rand.Float64() >= spontaneousEmissionProbability {
		return false
	}
	wl, err := m.absorption.EmissionWavelength(m.state.N, nNew)
	if err != nil {
		panic(fmt.Sprintf("atom: emission %v -> n=%d: %v", m.state, nNew, err))
	}
	m.events.emit(Emission{
		Wavelength: wl,
		Position:   m.position,
		Direction:  randomEmissionDirection(m.rand),
		Kind:       Spontaneous,
	})
	m.moveTo(nNew)
	return true
}

// moveTo changes n along a dipole-allowed path. The caller has checked
// CanTransition, so a failure here is a bug.
func (m *Schrodinger) moveTo(nNew int) {
	next, err := m.state.NextState(nNew, m.rand)
	if err != nil {
		panic(fmt.Sprintf("atom: %v -> n=%d: %v", m.state, nNew, err))
	}
	m.setState(next, false)
}

func (m *Schrodinger) setState(q quantum.Numbers, resetting bool) {
	from := m.state
	m.state = q
	m.timeInState = 0
	m.events.transition(Transition{From: from, To: q, Resetting: resetting})
}

func (m *Schrodinger) Reset() {
	if m.state != m.initial {
		m.setState(m.initial, true)
	}
	m.timeInState = 0
}
