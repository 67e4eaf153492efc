package atom

import "math"

// DeBroglie is the Bohr atom with the electron spread into a standing wave
// around its orbit. A photon interacts anywhere it crosses the orbit ring.
type DeBroglie struct {
	levels
}

func NewDeBroglie(deps Deps) *DeBroglie {
	deps = deps.withDefaults()
	m := &DeBroglie{levels: newLevels(NameDeBroglie, deps)}
	m.hits = m.hitsOrbit
	return m
}

// Amplitude returns the standing wave amplitude in [-1, 1] at angle around
// the orbit. Level n has n wavelengths per orbit; the electron's orbit angle
// sets the phase of the oscillation.
func (m *DeBroglie) Amplitude(angle float64) float64 {
	return math.Sin(float64(m.n)*angle) * math.Sin(m.angle)
}

// RadialOffset returns the displacement of the wave from the orbit radius at
// angle, scaled to maxOffset.
func (m *DeBroglie) RadialOffset(angle, maxOffset float64) float64 {
	return maxOffset * m.Amplitude(angle)
}
