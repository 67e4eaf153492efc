// Package atom implements the atomic models of hydrogen that photons interact
// with: billiard ball, plum pudding, classical solar system, Bohr, de Broglie,
// Schrödinger and the experiment.
//
// Every model satisfies Model. The host loop calls ProcessPhoton once for
// each live photon after the photon has moved, and Step once per tick.
// Absorptions, emissions and state transitions are published through the
// model's Events; the photon system and the spectrometer subscribe to them.
//
// All randomness comes from the *rand.Rand injected through Deps.
package atom

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/rng"
	"github.com/san-kum/hydrogensim/internal/transition"
)

type Model interface {
	Name() string
	Position() r2.Vec
	Step(dt float64)
	ProcessPhoton(p *photon.Photon)
	Reset()
	Events() *Events
}

// Quantized is implemented by models with a discrete electron state. Models
// that track only n report (n, 0, 0).
type Quantized interface {
	State() quantum.Numbers
}

// ElectronLocator is implemented by models whose electron is a point.
type ElectronLocator interface {
	ElectronPosition() r2.Vec
}

type Destructible interface {
	Destroyed() bool
}

// Deps are the collaborators shared by every model.
type Deps struct {
	Rand       *rand.Rand
	Absorption *transition.AbsorptionModel

	// Orbitals is optional; the Schrödinger models use it to expose the
	// image of the current state.
	Orbitals *orbital.Cache
}

func (d Deps) withDefaults() Deps {
	if d.Rand == nil {
		d.Rand = rng.New(0)
	}
	if d.Absorption == nil {
		d.Absorption = transition.NewAbsorptionModel()
	}
	return d
}

// base holds what every model shares.
type base struct {
	name     string
	position r2.Vec
	events   *Events
	rand     *rand.Rand
}

func newBase(name string, r *rand.Rand) base {
	return base{name: name, events: NewEvents(), rand: r}
}

func (b *base) Name() string { return b.name }
func (b *base) Position() r2.Vec { return b.position }
func (b *base) Events() *Events { return b.events }
func (b *base) SetPosition(p r2.Vec) { b.position = p }
