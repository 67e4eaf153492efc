package automation

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/config"
	"github.com/san-kum/hydrogensim/internal/experiment"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Zero fields keep the value of
// the preset, or of the defaults.
type ScenarioStep struct {
	Model      string  `yaml:"model"`
	Preset     string  `yaml:"preset"`
	Duration   float64 `yaml:"duration"`
	Dt         float64 `yaml:"dt"`
	Seed       int64   `yaml:"seed"`
	Light      string  `yaml:"light"`
	Wavelength int     `yaml:"wavelength"`
	NLM        []int   `yaml:"nlm"`
	// SaveAs names a file that receives the exported run.
	SaveAs     string  `yaml:"save_as"`
}

// StepResult pairs a step with the config it ran under.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Config resolves the step into a validated run config.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.Preset != "" {
		model := cfg.Model
		if cfg = config.GetPreset(model, s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for model %s", s.Preset, model)
		}
	}

	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	switch s.Light {
	case "":
	case "off":
		cfg.Light.On = false
	default:
		cfg.Light.On = true
		cfg.Light.Mode = s.Light
	}
	if s.Wavelength != 0 {
		cfg.Light.On = true
		cfg.Light.Mode = light.Monochromatic.String()
		cfg.Light.Wavelength = s.Wavelength
	}
	if len(s.NLM) > 0 {
		cfg.Schrodinger.NLM = s.NLM
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order. progress, if not nil, is called
// before each step.
func RunScenario(ctx context.Context, scenario *Scenario, progress func(i int, step ScenarioStep)) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if progress != nil {
			progress(i, step)
		}

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg, nil)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// WavelengthSweep runs one monochromatic simulation per wavelength in
// [Min, Max].
type WavelengthSweep struct {
	Base *config.Config
	Min  int
	Max  int
	Step int
}

// SweepResult holds the photon counters of one wavelength.
type SweepResult struct {
	Wavelength  int
	Absorbed    int
	Emitted     int
	Transitions int
}

func (w *WavelengthSweep) wavelengths() ([]int, error) {
	if w.Step <= 0 {
		return nil, fmt.Errorf("sweep step must be positive, got %d", w.Step)
	}
	if w.Min < light.MinWavelength || w.Max > light.MaxWavelength || w.Min > w.Max {
		return nil, fmt.Errorf("sweep range [%d, %d] outside [%d, %d]", w.Min, w.Max, light.MinWavelength, light.MaxWavelength)
	}
	var out []int
	for wl := w.Min; wl <= w.Max; wl += w.Step {
		out = append(out, wl)
	}
	return out, nil
}

// RunSweep executes the sweep in parallel. Results are in wavelength order.
func RunSweep(ctx context.Context, sweep *WavelengthSweep) ([]SweepResult, error) {
	wavelengths, err := sweep.wavelengths()
	if err != nil {
		return nil, err
	}
	if err := sweep.Base.Validate(); err != nil {
		return nil, err
	}

	var orbitals *orbital.Cache
	if sweep.Base.Model == atom.NameSchrodinger || sweep.Base.Model == atom.NameExperiment {
		orbitals = orbital.NewCache(sweep.Base.Schrodinger.GridSize, sweep.Base.Schrodinger.EagerCache)
	}

	results := make([]SweepResult, len(wavelengths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, wl := range wavelengths {
		g.Go(func() error {
			cfg := sweep.Base.Clone()
			cfg.Light.On = true
			cfg.Light.Mode = light.Monochromatic.String()
			cfg.Light.Wavelength = wl

			exp, err := experiment.New(cfg, orbitals)
			if err != nil {
				return fmt.Errorf("%dnm: %w", wl, err)
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("%dnm: %w", wl, err)
			}
			results[i] = SweepResult{
				Wavelength:  wl,
				Absorbed:    result.Absorbed,
				Emitted:     result.Emitted,
				Transitions: result.Transitions,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Best returns the wavelength that was absorbed most. ok is false when no
// photon was absorbed.
func Best(results []SweepResult) (SweepResult, bool) {
	var best SweepResult
	for _, r := range results {
		if r.Absorbed > best.Absorbed {
			best = r
		}
	}
	return best, best.Absorbed > 0
}

// Lines returns the wavelengths that were absorbed at least once.
func Lines(results []SweepResult) []int {
	var out []int
	for _, r := range results {
		if r.Absorbed > 0 {
			out = append(out, r.Wavelength)
		}
	}
	return out
}
