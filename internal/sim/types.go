package sim

import (
	"errors"

	"github.com/san-kum/hydrogensim/internal/quantum"
)

var ErrNoModel = errors.New("sim: no atomic model")

// Snapshot is the observable state of the simulation after a tick.
type Snapshot struct {
	Time float64

	// State is the electron state; it is meaningful only when Quantized.
	State     quantum.Numbers
	Quantized bool
	Destroyed bool

	Photons     int
	Absorbed    int
	Emitted     int
	Transitions int
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

// Handler is an auxiliary component stepped after the atom each tick.
type Handler interface {
	Step(dt float64)
	Reset()
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64

	// TimeScale multiplies dt; 0 means 1.
	TimeScale float64

	// SampleEvery records every n-th tick in the result; 0 means 1.
	SampleEvery int
}

// Sample is one recorded tick of a run.
type Sample struct {
	Time    float64
	State   quantum.Numbers
	Photons int
}

type Result struct {
	Model       string
	Seed        int64
	Samples     []Sample
	Metrics     map[string]float64
	Spectrum    map[int]int
	StepsTaken  int
	Elapsed     float64
	Absorbed    int
	Emitted     int
	Transitions int
}
