package atom

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
)

type EmissionKind int

const (
	Spontaneous EmissionKind = iota
	Stimulated
)

func (k EmissionKind) String() string {
	if k == Stimulated {
		return "stimulated"
	}
	return "spontaneous"
}

// Emission describes a photon leaving the atom.
type Emission struct {
	Wavelength int
	Position   r2.Vec
	Direction  float64
	Kind       EmissionKind
}

// Photon builds the emitted photon.
func (e Emission) Photon() *photon.Photon {
	return photon.New(e.Wavelength, e.Position, e.Direction, true)
}

// Transition is a change of electron state. Resetting marks the change
// caused by Reset, which views should not animate.
type Transition struct {
	From      quantum.Numbers
	To        quantum.Numbers
	Resetting bool
}

type listeners[T any] struct {
	subs []*func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	p := &fn
	l.subs = append(l.subs, p)
	return func() {
		l.subs = slices.DeleteFunc(l.subs, func(s *func(T)) bool { return s == p })
	}
}

func (l *listeners[T]) fire(v T) {
	for _, fn := range slices.Clone(l.subs) {
		(*fn)(v)
	}
}

// Events fans model notifications out to subscribers, synchronously and in
// subscription order. Each On method returns a func that unsubscribes.
type Events struct {
	emitted     listeners[Emission]
	absorbed    listeners[*photon.Photon]
	transitions listeners[Transition]
}

func NewEvents() *Events {
	return &Events{}
}

func (e *Events) OnEmitted(fn func(Emission)) func() { return e.emitted.add(fn) }

func (e *Events) OnAbsorbed(fn func(*photon.Photon)) func() { return e.absorbed.add(fn) }

func (e *Events) OnTransition(fn func(Transition)) func() { return e.transitions.add(fn) }

func (e *Events) emit(em Emission) { e.emitted.fire(em) }
func (e *Events) absorb(p *photon.Photon) { e.absorbed.fire(p) }
func (e *Events) transition(t Transition) { e.transitions.fire(t) }
