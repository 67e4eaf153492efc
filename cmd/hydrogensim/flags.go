package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/hydrogensim/internal/config"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/quantum"
)

// resolveConfig builds the run config: defaults or a preset, then the config
// file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for model %s", preset, cfg.Model)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("light") {
		if lightMode == "off" {
			cfg.Light.On = false
		} else {
			mode, err := light.ParseMode(lightMode)
			if err != nil {
				return nil, err
			}
			cfg.Light.On = true
			cfg.Light.Mode = mode.String()
		}
	}
	if flags.Changed("wavelength") {
		cfg.Light.On = true
		cfg.Light.Mode = light.Monochromatic.String()
		cfg.Light.Wavelength = wavelength
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("grid") {
		cfg.Schrodinger.GridSize = gridSize
	}
	if flags.Changed("nlm") {
		values, err := parseNLM(nlm)
		if err != nil {
			return nil, err
		}
		cfg.Schrodinger.NLM = values
	}
	if flags.Changed("eager") {
		cfg.Schrodinger.EagerCache = eager
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseNLM reads "n,l,m".
func parseNLM(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected n,l,m, got %q", s)
	}
	return parseInts(parts)
}

func parseInts(parts []string) ([]int, error) {
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid quantum number %q", p)
		}
		values[i] = v
	}
	return values, nil
}

func parseState(args []string) (quantum.Numbers, error) {
	values, err := parseInts(args)
	if err != nil {
		return quantum.Numbers{}, err
	}
	if len(values) != 3 {
		return quantum.Numbers{}, fmt.Errorf("expected n l m, got %d values", len(values))
	}
	return quantum.New(values[0], values[1], values[2])
}
