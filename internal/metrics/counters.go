package metrics

import (
	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/sim"
)

// Counter reports the last value of one of the cumulative snapshot counts.
type Counter struct {
	name  string
	read  func(sim.Snapshot) int
	value int
}

func NewTransitions() *Counter {
	return &Counter{name: "transitions", read: func(s sim.Snapshot) int { return s.Transitions }}
}

func NewAbsorbed() *Counter {
	return &Counter{name: "photons_absorbed", read: func(s sim.Snapshot) int { return s.Absorbed }}
}

func NewEmitted() *Counter {
	return &Counter{name: "photons_emitted", read: func(s sim.Snapshot) int { return s.Emitted }}
}

func (c *Counter) Name() string           { return c.name }
func (c *Counter) Observe(s sim.Snapshot) { c.value = c.read(s) }
func (c *Counter) Value() float64         { return float64(c.value) }
func (c *Counter) Reset()                 { c.value = 0 }

// DestructionTime records when the classical atom collapsed, or -1 if it
// never did.
type DestructionTime struct {
	name string
	at   float64
	seen bool
}

func NewDestructionTime() *DestructionTime {
	return &DestructionTime{name: "destruction_time"}
}

func (d *DestructionTime) Name() string { return d.name }

func (d *DestructionTime) Observe(s sim.Snapshot) {
	if s.Destroyed && !d.seen {
		d.at = s.Time
		d.seen = true
	}
}

func (d *DestructionTime) Value() float64 {
	if !d.seen {
		return -1
	}
	return d.at
}

func (d *DestructionTime) Reset() {
	d.at = 0
	d.seen = false
}

// Defaults returns the metrics recorded for a model.
func Defaults(model string, quantized bool) []sim.Metric {
	ms := []sim.Metric{NewAbsorbed(), NewEmitted()}
	if quantized {
		ms = append(ms, NewEnergy(), NewOccupancy(), NewTransitions())
	}
	if model == atom.NameClassicalSolarSystem {
		ms = append(ms, NewDestructionTime())
	}
	return ms
}
