package atom

import (
	"fmt"

	"github.com/san-kum/hydrogensim/internal/quantum"
)

const (
	NameBilliardBall         = "billiard_ball"
	NamePlumPudding          = "plum_pudding"
	NameClassicalSolarSystem = "classical_solar_system"
	NameBohr                 = "bohr"
	NameDeBroglie            = "de_broglie"
	NameSchrodinger          = "schrodinger"
	NameExperiment           = "experiment"
)

// Options tune model construction.
type Options struct {
	// Initial is the starting Schrödinger state; the zero value selects the
	// ground state.
	Initial quantum.Numbers
}

type factory func(deps Deps, opts Options) (Model, error)

type Registry struct {
	models map[string]factory
	order  []string
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]factory)}

	r.register(NameBilliardBall, func(d Deps, _ Options) (Model, error) { return NewBilliardBall(d), nil })
	r.register(NamePlumPudding, func(d Deps, _ Options) (Model, error) { return NewPlumPudding(d), nil })
	r.register(NameClassicalSolarSystem, func(d Deps, _ Options) (Model, error) { return NewClassicalSolarSystem(d), nil })
	r.register(NameBohr, func(d Deps, _ Options) (Model, error) { return NewBohr(d), nil })
	r.register(NameDeBroglie, func(d Deps, _ Options) (Model, error) { return NewDeBroglie(d), nil })
	r.register(NameSchrodinger, func(d Deps, o Options) (Model, error) {
		initial := o.Initial
		if initial == (quantum.Numbers{}) {
			initial = quantum.Ground
		}
		return NewSchrodinger(d, initial)
	})
	r.register(NameExperiment, func(d Deps, _ Options) (Model, error) { return NewExperiment(d), nil })

	return r
}

func (r *Registry) register(name string, f factory) {
	r.models[name] = f
	r.order = append(r.order, name)
}

func (r *Registry) Get(name string, deps Deps, opts Options) (Model, error) {
	f, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	m, err := f(deps, opts)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	return m, nil
}

// Names lists models from the most naive to the experiment.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Predictive reports whether a model's spectrum is meant to match the
// experiment.
func Predictive(name string) bool {
	switch name {
	case NameBohr, NameDeBroglie, NameSchrodinger, NameExperiment:
		return true
	}
	return false
}
