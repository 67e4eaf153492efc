// Package light implements the light source that feeds photons into the
// zoomed-in box from its bottom edge.
package light

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/rng"
	"github.com/san-kum/hydrogensim/internal/transition"
)

type Mode int

const (
	White Mode = iota
	Monochromatic
)

func (m Mode) String() string {
	if m == Monochromatic {
		return "monochromatic"
	}
	return "white"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "white", "":
		return White, nil
	case "monochromatic", "mono":
		return Monochromatic, nil
	}
	return White, fmt.Errorf("unknown light mode: %s", s)
}

const (
	MinWavelength = 92
	MaxWavelength = 750

	MinVisibleWavelength = 380
	MaxVisibleWavelength = 750

	// DefaultRate is in photons per second.
	DefaultRate = 20.0

	DefaultWavelength = 94

	// transitionWeight is the share of white light photons whose
	// wavelength matches a transition.
	transitionWeight = 0.4
)

// Sink receives emitted photons; *photon.System is one.
type Sink interface {
	Add(p *photon.Photon)
}

type Source struct {
	On         bool
	Mode       Mode
	Wavelength int
	Rate       float64

	box         photon.Box
	rand        *rand.Rand
	transitions []int
	accumulator float64
	emitted     int
}

func NewSource(box photon.Box, r *rand.Rand, absorption *transition.AbsorptionModel) *Source {
	var inRange []int
	for _, wl := range absorption.Wavelengths() {
		if wl >= MinWavelength && wl <= MaxWavelength {
			inRange = append(inRange, wl)
		}
	}
	return &Source{
		On:          true,
		Mode:        White,
		Wavelength:  DefaultWavelength,
		Rate:        DefaultRate,
		box:         box,
		rand:        r,
		transitions: inRange,
	}
}

// TransitionWavelengths lists the transition wavelengths the source can
// produce, ascending.
func (s *Source) TransitionWavelengths() []int {
	out := make([]int, len(s.transitions))
	copy(out, s.transitions)
	return out
}

// SetWavelength switches to monochromatic light at wl.
func (s *Source) SetWavelength(wl int) error {
	if wl < MinWavelength || wl > MaxWavelength {
		return fmt.Errorf("wavelength %d outside [%d, %d]", wl, MinWavelength, MaxWavelength)
	}
	s.Wavelength = wl
	s.Mode = Monochromatic
	return nil
}

// Emitted counts photons produced since the last Reset.
func (s *Source) Emitted() int { return s.emitted }

// Step releases the photons due in dt. Fractional photons carry over to the
// next tick.
func (s *Source) Step(dt float64, sink Sink) int {
	if !s.On || s.Rate <= 0 {
		return 0
	}
	s.accumulator += s.Rate * dt
	n := int(math.Floor(s.accumulator))
	s.accumulator -= float64(n)
	for i := 0; i < n; i++ {
		sink.Add(photon.New(s.NextWavelength(), s.spawnPoint(), photon.LightDirection, false))
	}
	s.emitted += n
	return n
}

// NextWavelength picks the wavelength of the next photon. White light mixes
// transition wavelengths with a uniform draw over the whole range so that
// absorptions are not vanishingly rare.
func (s *Source) NextWavelength() int {
	if s.Mode == Monochromatic {
		return s.Wavelength
	}
	useTransition, _ := rng.ChooseWeighted(s.rand, []bool{true, false}, []float64{transitionWeight, 1 - transitionWeight})
	if useTransition && len(s.transitions) > 0 {
		return s.transitions[s.rand.Intn(len(s.transitions))]
	}
	return MinWavelength + s.rand.Intn(MaxWavelength-MinWavelength+1)
}

func (s *Source) spawnPoint() r2.Vec {
	lo, hi := s.box.Min(), s.box.Max()
	return r2.Vec{X: lo.X + s.rand.Float64()*(hi.X-lo.X), Y: lo.Y}
}

func (s *Source) Reset() {
	s.accumulator = 0
	s.emitted = 0
}

// Visible reports whether the current light can be seen.
func (s *Source) Visible() bool {
	return s.Mode == White || IsVisible(s.Wavelength)
}

// Color is white for white light, otherwise the color of the wavelength.
func (s *Source) Color() colorful.Color {
	if s.Mode == White {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return WavelengthColor(s.Wavelength)
}

func IsVisible(wl int) bool {
	return wl >= MinVisibleWavelength && wl <= MaxVisibleWavelength
}

// invisibleColor stands in for UV and IR light.
var invisibleColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// WavelengthColor approximates the perceived color of wl nanometers, dimmed
// toward both ends of the visible range.
func WavelengthColor(wl int) colorful.Color {
	if !IsVisible(wl) {
		return invisibleColor
	}
	w := float64(wl)
	var r, g, b float64
	switch {
	case w < 440:
		r, g, b = (440-w)/(440-380), 0, 1
	case w < 490:
		r, g, b = 0, (w-440)/(490-440), 1
	case w < 510:
		r, g, b = 0, 1, (510-w)/(510-490)
	case w < 580:
		r, g, b = (w-510)/(580-510), 1, 0
	case w < 645:
		r, g, b = 1, (645-w)/(645-580), 0
	default:
		r, g, b = 1, 0, 0
	}

	factor := 1.0
	switch {
	case w < 420:
		factor = 0.3 + 0.7*(w-380)/(420-380)
	case w > 700:
		factor = 0.3 + 0.7*(750-w)/(750-700)
	}
	return colorful.Color{R: r * factor, G: g * factor, B: b * factor}.Clamped()
}
