// Package photon implements the photons that travel through the zoomed-in
// box and the collection that owns them.
//
// Photons move in a straight line at constant Speed. Each tick the System
// moves every live photon first, drops the ones that left the Box and hands
// the rest to the active atomic model.
package photon

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Speed is in model distance units per second.
	Speed = 300.0

	// Radius is the collision radius of a photon.
	Radius = 15.0

	// LightDirection is the heading of photons leaving the light source.
	LightDirection = math.Pi / 2

	minDeflection = 120 * math.Pi / 180
	maxDeflection = 170 * math.Pi / 180
)

// Photon is a point particle with an immutable wavelength in nm.
type Photon struct {
	wavelength int

	Position         r2.Vec
	Direction        float64
	EmittedByAtom    bool
	CollidedWithAtom bool
}

func New(wavelength int, position r2.Vec, direction float64, emittedByAtom bool) *Photon {
	return &Photon{
		wavelength:    wavelength,
		Position:      position,
		Direction:     direction,
		EmittedByAtom: emittedByAtom,
	}
}

func (p *Photon) Wavelength() int { return p.wavelength }

// Velocity returns the displacement per second.
func (p *Photon) Velocity() r2.Vec {
	return r2.Vec{X: Speed * math.Cos(p.Direction), Y: Speed * math.Sin(p.Direction)}
}

// Move advances the photon along its direction for dt seconds.
func (p *Photon) Move(dt float64) {
	p.Position = r2.Add(p.Position, r2.Scale(dt, p.Velocity()))
}

// DistanceTo returns the distance between the photon and point.
func (p *Photon) DistanceTo(point r2.Vec) float64 {
	return r2.Norm(r2.Sub(p.Position, point))
}

// BounceBack deflects the photon off a rigid sphere centered at center. The
// deflection is a random angle in [120°, 170°] turning away from the side of
// the sphere the photon is on.
func (p *Photon) BounceBack(center r2.Vec, r *rand.Rand) {
	sign := -1.0
	if p.Position.X > center.X {
		sign = 1.0
	}
	deflection := minDeflection + r.Float64()*(maxDeflection-minDeflection)
	p.Direction += sign * deflection
	p.CollidedWithAtom = true
}

// Collides reports whether two points lie within distance of each other.
func Collides(a, b r2.Vec, distance float64) bool {
	return r2.Norm(r2.Sub(a, b)) <= distance
}
