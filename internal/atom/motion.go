package atom

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/rng"
)

// minLightSeparation keeps emitted photons from travelling alongside the
// light source beam.
const minLightSeparation = math.Pi / 8

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// orbitPoint returns the point at radius and angle around center.
func orbitPoint(center r2.Vec, radius, angle float64) r2.Vec {
	return r2.Add(center, r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
}

// advanceOrbit moves an orbit angle forward by rate·dt, wrapped to [0, 2π).
func advanceOrbit(angle, rate, dt float64) float64 {
	return math.Mod(angle+rate*dt, 2*math.Pi)
}

// randomEmissionDirection returns a uniformly random heading that is at
// least π/8 away from the light source direction.
func randomEmissionDirection(r *rand.Rand) float64 {
	return rng.DirectionAwayFrom(r, photon.LightDirection, minLightSeparation)
}

// towardNucleusDirection points from an electron at electronAngle back toward
// the nucleus, jittered by up to ±π/4 and pushed out of the light beam.
func towardNucleusDirection(r *rand.Rand, electronAngle float64) float64 {
	d := electronAngle + math.Pi + (r.Float64()*2-1)*math.Pi/4
	if sep := rng.AngleBetween(d, photon.LightDirection); sep < minLightSeparation {
		if math.Sin(d-photon.LightDirection) >= 0 {
			d = photon.LightDirection + minLightSeparation
		} else {
			d = photon.LightDirection - minLightSeparation
		}
	}
	return math.Mod(d+2*math.Pi, 2*math.Pi)
}
