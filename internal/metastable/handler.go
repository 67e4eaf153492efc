// Package metastable frees the Schrödinger electron from the (2,0,0) state.
//
// No dipole-allowed transition leads down from (2,0,0), so under white light
// the electron can sit there until a photon happens to carry one of the few
// wavelengths that lift it out of n=2. The Handler shortens the wait by
// firing such a photon straight at the atom at a fixed interval.
package metastable

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/transition"
)

// DefaultInterval is in seconds.
const DefaultInterval = 2.0

// Target is the model the handler watches.
type Target interface {
	State() quantum.Numbers
	Position() r2.Vec
}

type Handler struct {
	Interval float64

	target     Target
	source     *light.Source
	sink       light.Sink
	box        photon.Box
	absorption *transition.AbsorptionModel
	rand       *rand.Rand

	elapsed float64
	fired   int
}

func New(target Target, source *light.Source, sink light.Sink, box photon.Box, absorption *transition.AbsorptionModel, r *rand.Rand) *Handler {
	return &Handler{
		Interval:   DefaultInterval,
		target:     target,
		source:     source,
		sink:       sink,
		box:        box,
		absorption: absorption,
		rand:       r,
	}
}

// Fired counts the photons the handler has injected.
func (h *Handler) Fired() int { return h.fired }

func (h *Handler) active() bool {
	return h.source.On && h.source.Mode == light.White && h.target.State() == quantum.Metastable
}

// Stuck reports whether the electron is in (2,0,0) under monochromatic
// light, where only the user can free it by changing the wavelength.
func (h *Handler) Stuck() bool {
	return h.source.On && h.source.Mode == light.Monochromatic && h.target.State() == quantum.Metastable
}

// Step fires an absorbable photon every Interval seconds spent in (2,0,0)
// under white light. Leaving that condition restarts the clock.
func (h *Handler) Step(dt float64) {
	if !h.active() {
		h.elapsed = 0
		return
	}
	h.elapsed += dt
	if h.elapsed < h.Interval {
		return
	}
	h.elapsed = 0
	h.fire()
}

func (h *Handler) fire() {
	wavelengths, err := h.absorption.AbsorptionWavelengths(quantum.Metastable.N)
	if err != nil || len(wavelengths) == 0 {
		return
	}
	wl := wavelengths[h.rand.Intn(len(wavelengths))]

	center := h.target.Position()
	start := r2.Vec{X: center.X, Y: h.box.Min().Y}
	h.sink.Add(photon.New(wl, start, photon.LightDirection, false))
	h.fired++
}

func (h *Handler) Reset() {
	h.elapsed = 0
	h.fired = 0
}
