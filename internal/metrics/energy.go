package metrics

import (
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/sim"
)

// Energy is the time-averaged electron energy in eV. Models without a
// quantum state are not sampled.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "mean_energy_ev"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s sim.Snapshot) {
	if !s.Quantized {
		return
	}
	e.totalEnergy += quantum.Energy(s.State.N)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Occupancy is the fraction of ticks spent above the ground state.
type Occupancy struct {
	name    string
	excited int
	samples int
}

func NewOccupancy() *Occupancy {
	return &Occupancy{name: "excited_occupancy"}
}

func (o *Occupancy) Name() string { return o.name }

func (o *Occupancy) Observe(s sim.Snapshot) {
	if !s.Quantized {
		return
	}
	o.samples++
	if s.State.N > quantum.GroundN {
		o.excited++
	}
}

func (o *Occupancy) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.excited) / float64(o.samples)
}

func (o *Occupancy) Reset() {
	o.excited = 0
	o.samples = 0
}
