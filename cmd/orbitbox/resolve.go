package main

import (
	"fmt"

	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/spf13/cobra"
)

// resolveConfig layers preset, config file, positional scene and changed
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Scene = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("g") {
		cfg.G = gravity
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("every") {
		cfg.SampleEvery = every
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadScene resolves cfg.Scene to a fresh scene along with its initial
// entries.
func loadScene(cfg *config.Config) (*scene.Scene, []scene.Entry, error) {
	entries, err := scene.Resolve(cfg.Scene, cfg.Dt)
	if err != nil {
		return nil, nil, err
	}
	sc := scene.New()
	sc.Load(entries)
	logf("loaded scene %s (%d bodies)", cfg.Scene, len(entries))
	return sc, entries, nil
}
