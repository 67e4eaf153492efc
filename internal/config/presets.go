package config

import (
	"maps"
	"slices"
)

// Presets holds per-model tweaks applied over DefaultConfig.
var Presets = map[string]map[string]func(*Config){
	"billiard_ball": {
		"white": func(c *Config) { c.Duration = 10 },
	},
	"plum_pudding": {
		"white": func(c *Config) { c.Duration = 20 },
		"dense": func(c *Config) {
			c.Duration = 20
			c.Light.Rate = 60
		},
	},
	"classical_solar_system": {
		"collapse": func(c *Config) {
			c.Duration = 6
			c.Light.On = false
		},
	},
	"bohr": {
		"white":  func(c *Config) { c.Duration = 60 },
		"lyman":  monochromatic(122),
		"balmer": monochromatic(656),
	},
	"de_broglie": {
		"white":  func(c *Config) { c.Duration = 60 },
		"balmer": monochromatic(656),
	},
	"schrodinger": {
		"ground": func(c *Config) { c.Duration = 60 },
		"metastable": func(c *Config) {
			c.Duration = 30
			c.Schrodinger.NLM = []int{2, 0, 0}
		},
		"stuck": func(c *Config) {
			monochromatic(500)(c)
			c.Schrodinger.NLM = []int{2, 0, 0}
		},
		"excited": func(c *Config) {
			c.Duration = 30
			c.Schrodinger.NLM = []int{6, 5, 2}
		},
	},
	"experiment": {
		"long": func(c *Config) {
			c.Duration = 300
			c.Speed = "fast"
			c.SampleEvery = 10
		},
	},
}

func monochromatic(wl int) func(*Config) {
	return func(c *Config) {
		c.Duration = 30
		c.Light.Mode = "monochromatic"
		c.Light.Wavelength = wl
	}
}

// GetPreset returns a fresh config for the preset, or nil if it does not
// exist.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	apply, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Model = model
	apply(cfg)
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(modelPresets))
}

// Models lists the models that have presets.
func Models() []string {
	return slices.Sorted(maps.Keys(Presets))
}
