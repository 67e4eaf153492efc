// Package experiment assembles a runnable simulation from a configuration.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/config"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/metastable"
	"github.com/san-kum/hydrogensim/internal/metrics"
	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/rng"
	"github.com/san-kum/hydrogensim/internal/sim"
	"github.com/san-kum/hydrogensim/internal/transition"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	handler   *metastable.Handler
}

// New builds the model, light source, photon system and handlers described
// by cfg. orbitals may be nil; a cache is then created when the model needs
// one. Models sharing a cache may run concurrently.
func New(cfg *config.Config, orbitals *orbital.Cache) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	initial, _ := cfg.Initial()

	if orbitals == nil && needsOrbitals(cfg.Model) {
		orbitals = orbital.NewCache(cfg.Schrodinger.GridSize, cfg.Schrodinger.EagerCache)
	}

	r := rng.New(cfg.Seed)
	absorption := transition.NewAbsorptionModel()
	deps := atom.Deps{Rand: r, Absorption: absorption, Orbitals: orbitals}

	model, err := atom.NewRegistry().Get(cfg.Model, deps, atom.Options{Initial: initial})
	if err != nil {
		return nil, err
	}

	box := photon.NewBox()
	source := light.NewSource(box, r, absorption)
	source.On = cfg.Light.On
	source.Rate = cfg.Light.Rate
	source.Wavelength = cfg.Light.Wavelength
	source.Mode = cfg.LightMode()

	photons := photon.NewSystem(box)
	s := sim.New(model, source, photons)

	_, quantized := model.(atom.Quantized)
	for _, m := range metrics.Defaults(cfg.Model, quantized) {
		s.AddMetric(m)
	}

	e := &Experiment{cfg: cfg, simulator: s}
	if sm, ok := model.(*atom.Schrodinger); ok && cfg.Metastable.Enabled {
		e.handler = metastable.New(sm, source, photons, box, absorption, r)
		e.handler.Interval = cfg.Metastable.Interval
		s.AddHandler(e.handler)
	}
	return e, nil
}

func needsOrbitals(model string) bool {
	return model == atom.NameSchrodinger || model == atom.NameExperiment
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

// Stuck reports whether the electron waits in (2,0,0) under monochromatic
// light.
func (e *Experiment) Stuck() bool {
	return e.handler != nil && e.handler.Stuck()
}

// Factory builds copies of cfg that differ only in seed. They share one
// orbital cache.
func Factory(cfg *config.Config) sim.Factory {
	var orbitals *orbital.Cache
	if needsOrbitals(cfg.Model) && cfg.Validate() == nil {
		orbitals = orbital.NewCache(cfg.Schrodinger.GridSize, cfg.Schrodinger.EagerCache)
	}
	return func(seed int64) (*sim.Simulator, error) {
		c := cfg.Clone()
		c.Seed = seed
		e, err := New(c, orbitals)
		if err != nil {
			return nil, err
		}
		return e.Simulator(), nil
	}
}
