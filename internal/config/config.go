package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/metastable"
	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/sim"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultModel    = "experiment"
	DefaultDt       = 0.01
	DefaultDuration = 30.0
	DefaultSpeed    = "normal"

	// MinGridSize is exclusive.
	MinGridSize = 20
)

// Speeds index TimeScale.
var Speeds = []string{"fast", "normal", "slow"}

type Config struct {
	Model       string            `yaml:"model" toml:"model"`
	Dt          float64           `yaml:"dt" toml:"dt"`
	Duration    float64           `yaml:"duration" toml:"duration"`
	Seed        int64             `yaml:"seed" toml:"seed"`
	Speed       string            `yaml:"speed" toml:"speed"`
	TimeScale   []float64         `yaml:"time_scale" toml:"time_scale"`
	SampleEvery int               `yaml:"sample_every" toml:"sample_every"`
	Light       LightConfig       `yaml:"light" toml:"light"`
	Schrodinger SchrodingerConfig `yaml:"schrodinger" toml:"schrodinger"`
	Metastable  MetastableConfig  `yaml:"metastable" toml:"metastable"`
}

type LightConfig struct {
	On         bool    `yaml:"on" toml:"on"`
	Mode       string  `yaml:"mode" toml:"mode"`
	Wavelength int     `yaml:"wavelength" toml:"wavelength"`
	Rate       float64 `yaml:"rate" toml:"rate"`
}

type SchrodingerConfig struct {
	GridSize   int   `yaml:"grid_size" toml:"grid_size"`
	NLM        []int `yaml:"nlm" toml:"nlm"`
	EagerCache bool  `yaml:"eager_cache" toml:"eager_cache"`
}

type MetastableConfig struct {
	Enabled  bool    `yaml:"enabled" toml:"enabled"`
	Interval float64 `yaml:"interval" toml:"interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Speed:       DefaultSpeed,
		TimeScale:   []float64{3, 1, 0.25},
		SampleEvery: 1,
		Light: LightConfig{
			On:         true,
			Mode:       light.White.String(),
			Wavelength: light.DefaultWavelength,
			Rate:       light.DefaultRate,
		},
		Schrodinger: SchrodingerConfig{
			GridSize: orbital.DefaultGridSize,
			NLM:      []int{1, 0, 0},
		},
		Metastable: MetastableConfig{
			Enabled:  true,
			Interval: metastable.DefaultInterval,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML file, by extension, over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

// Validate checks every field. The error wraps ErrInvalidConfig and names
// the offending field.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return invalid("dt", "must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return invalid("duration", "must be positive, got %g", c.Duration)
	}
	if c.SampleEvery < 0 {
		return invalid("sample_every", "must not be negative, got %d", c.SampleEvery)
	}
	if len(c.TimeScale) != len(Speeds) {
		return invalid("time_scale", "need %d values, got %d", len(Speeds), len(c.TimeScale))
	}
	for i, v := range c.TimeScale {
		if v <= 0 {
			return invalid("time_scale", "values must be positive, got %g", v)
		}
		if i > 0 && v >= c.TimeScale[i-1] {
			return invalid("time_scale", "values must be strictly decreasing, got %v", c.TimeScale)
		}
	}
	if _, err := c.Scale(); err != nil {
		return err
	}

	if _, err := light.ParseMode(c.Light.Mode); err != nil {
		return invalid("light.mode", "%v", err)
	}
	if c.Light.Wavelength < light.MinWavelength || c.Light.Wavelength > light.MaxWavelength {
		return invalid("light.wavelength", "must be in [%d, %d], got %d", light.MinWavelength, light.MaxWavelength, c.Light.Wavelength)
	}
	if c.Light.Rate < 0 {
		return invalid("light.rate", "must not be negative, got %g", c.Light.Rate)
	}

	if c.Schrodinger.GridSize <= MinGridSize {
		return invalid("schrodinger.grid_size", "must be greater than %d, got %d", MinGridSize, c.Schrodinger.GridSize)
	}
	if _, err := c.Initial(); err != nil {
		return invalid("schrodinger.nlm", "%v", err)
	}

	if c.Metastable.Enabled && c.Metastable.Interval <= 0 {
		return invalid("metastable.interval", "must be positive, got %g", c.Metastable.Interval)
	}
	return nil
}

// Scale returns the dt multiplier of the selected speed.
func (c *Config) Scale() (float64, error) {
	for i, s := range Speeds {
		if s == c.Speed && i < len(c.TimeScale) {
			return c.TimeScale[i], nil
		}
	}
	return 0, invalid("speed", "unknown speed %q, want one of %v", c.Speed, Speeds)
}

// Initial returns the configured starting state of the Schrödinger model.
func (c *Config) Initial() (quantum.Numbers, error) {
	nlm := c.Schrodinger.NLM
	if len(nlm) != 3 {
		return quantum.Numbers{}, fmt.Errorf("need 3 quantum numbers, got %d", len(nlm))
	}
	return quantum.New(nlm[0], nlm[1], nlm[2])
}

func (c *Config) LightMode() light.Mode {
	mode, err := light.ParseMode(c.Light.Mode)
	if err != nil {
		return light.White
	}
	return mode
}

// SimConfig converts c for sim.Simulator.Run. c must be valid.
func (c *Config) SimConfig() sim.Config {
	scale, _ := c.Scale()
	return sim.Config{
		Dt:          c.Dt,
		Duration:    c.Duration,
		Seed:        c.Seed,
		TimeScale:   scale,
		SampleEvery: c.SampleEvery,
	}
}

func (c *Config) Clone() *Config {
	out := *c
	out.TimeScale = append([]float64(nil), c.TimeScale...)
	out.Schrodinger.NLM = append([]int(nil), c.Schrodinger.NLM...)
	return &out
}
