package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/spectrometer"
)

type Simulator struct {
	model    atom.Model
	source   *light.Source
	photons  *photon.System
	spectrum *spectrometer.Spectrometer

	handlers  []Handler
	metrics   []Metric
	observers []Observer

	unsubscribe []func()

	time        float64
	absorbed    int
	emitted     int
	transitions int
}

func New(model atom.Model, source *light.Source, photons *photon.System) *Simulator {
	s := &Simulator{
		source:    source,
		photons:   photons,
		spectrum:  spectrometer.New(),
		handlers:  make([]Handler, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	if model != nil {
		s.SetModel(model)
	}
	return s
}

func (s *Simulator) AddHandler(h Handler)   { s.handlers = append(s.handlers, h) }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Model() atom.Model                    { return s.model }
func (s *Simulator) Source() *light.Source                { return s.source }
func (s *Simulator) Photons() *photon.System              { return s.photons }
func (s *Simulator) Spectrum() *spectrometer.Spectrometer { return s.spectrum }
func (s *Simulator) Time() float64                        { return s.time }

// SetModel swaps the atom inside the box. Photons in flight are discarded
// and the counters restart.
func (s *Simulator) SetModel(model atom.Model) {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = s.unsubscribe[:0]

	s.model = model
	s.photons.Clear()
	s.photons.SetModel(model)
	s.resetCounters()

	events := model.Events()
	s.unsubscribe = append(s.unsubscribe,
		events.OnAbsorbed(func(p *photon.Photon) {
			s.photons.Remove(p)
			s.absorbed++
		}),
		events.OnEmitted(func(e atom.Emission) {
			s.photons.Add(e.Photon())
			s.emitted++
		}),
		events.OnTransition(func(t atom.Transition) {
			if !t.Resetting {
				s.transitions++
			}
		}),
		s.spectrum.Attach(events),
	)
}

// Tick advances every component by dt: light, photons, atom, then handlers.
func (s *Simulator) Tick(dt float64) {
	s.source.Step(dt, s.photons)
	s.photons.Step(dt)
	s.model.Step(dt)
	for _, h := range s.handlers {
		h.Step(dt)
	}
	s.time += dt
}

func (s *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		Time:        s.time,
		Photons:     s.photons.Len(),
		Absorbed:    s.absorbed,
		Emitted:     s.emitted,
		Transitions: s.transitions,
	}
	if q, ok := s.model.(atom.Quantized); ok {
		snap.State = q.State()
		snap.Quantized = true
	}
	if d, ok := s.model.(atom.Destructible); ok {
		snap.Destroyed = d.Destroyed()
	}
	return snap
}

// Reset returns the model, light, photons and handlers to their initial
// state.
func (s *Simulator) Reset() {
	if s.model != nil {
		s.model.Reset()
	}
	s.source.Reset()
	s.photons.Clear()
	for _, h := range s.handlers {
		h.Reset()
	}
	s.resetCounters()
}

func (s *Simulator) resetCounters() {
	s.spectrum.Reset()
	s.time = 0
	s.absorbed = 0
	s.emitted = 0
	s.transitions = 0
}

// Run resets the simulator and ticks it for cfg.Duration.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	s.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}

	steps := int(cfg.Duration / cfg.Dt)
	every := max(cfg.SampleEvery, 1)
	dt := cfg.Dt
	if cfg.TimeScale > 0 {
		dt *= cfg.TimeScale
	}

	result := &Result{
		Model:   s.model.Name(),
		Seed:    cfg.Seed,
		Samples: make([]Sample, 0, steps/every+1),
		Metrics: make(map[string]float64),
	}
	result.Samples = append(result.Samples, s.sample())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.Tick(dt)
		result.StepsTaken++

		snap := s.Snapshot()
		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnStep(snap)
		}

		if result.StepsTaken%every == 0 {
			result.Samples = append(result.Samples, s.sample())
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) sample() Sample {
	snap := s.Snapshot()
	return Sample{Time: snap.Time, State: snap.State, Photons: snap.Photons}
}

func (s *Simulator) finish(result *Result) {
	result.Elapsed = s.time
	result.Spectrum = s.spectrum.Counts()
	result.Absorbed = s.absorbed
	result.Emitted = s.emitted
	result.Transitions = s.transitions
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.model == nil {
		return ErrNoModel
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.TimeScale < 0 {
		return fmt.Errorf("time scale must not be negative, got %f", cfg.TimeScale)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d", cfg.SampleEvery)
	}
	return nil
}

// RunWithCallback ticks until the callback returns false, the context is
// cancelled, or cfg.Duration elapses. It does not reset the simulator.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Snapshot) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	dt := cfg.Dt
	if cfg.TimeScale > 0 {
		dt *= cfg.TimeScale
	}
	for t := 0.0; t < cfg.Duration; t += cfg.Dt {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Tick(dt)
		if !callback(s.Snapshot()) {
			return nil
		}
	}
	return nil
}
