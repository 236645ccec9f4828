package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultScene       = "binary"
	DefaultDt          = 0.01
	DefaultG           = 5.0
	DefaultDuration    = 10.0
	DefaultSampleEvery = 1

	DefaultScaleStep            = 0.02
	DefaultDensityStep          = 1.2
	DefaultTranslateStep        = 0.005
	DefaultLaunchSpeedStep      = 0.01
	DefaultLaunchSpeedThreshold = 0.1
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Scene         string            `yaml:"scene"`
	Dt            float64           `yaml:"dt"`
	G             float64           `yaml:"g"`
	Duration      float64           `yaml:"duration"`
	SampleEvery   int               `yaml:"sample_every"`
	ValidateState bool              `yaml:"validate_state"`
	Seed          int64             `yaml:"seed"`
	Interaction   InteractionConfig `yaml:"interaction"`
}

// InteractionConfig tunes the live and gui editing keys.
type InteractionConfig struct {
	ScaleStep            float64 `yaml:"scale_step"`
	DensityStep          float64 `yaml:"density_step"`
	TranslateStep        float64 `yaml:"translate_step"`
	LaunchSpeedStep      float64 `yaml:"launch_speed_step"`
	LaunchSpeedThreshold float64 `yaml:"launch_speed_threshold"`
}

func DefaultInteraction() InteractionConfig {
	return InteractionConfig{
		ScaleStep:            DefaultScaleStep,
		DensityStep:          DefaultDensityStep,
		TranslateStep:        DefaultTranslateStep,
		LaunchSpeedStep:      DefaultLaunchSpeedStep,
		LaunchSpeedThreshold: DefaultLaunchSpeedThreshold,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Scene:         DefaultScene,
		Dt:            DefaultDt,
		G:             DefaultG,
		Duration:      DefaultDuration,
		SampleEvery:   DefaultSampleEvery,
		ValidateState: true,
		Interaction:   DefaultInteraction(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range field.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	case c.G < 0:
		return fmt.Errorf("%w: g must not be negative, got %g", ErrInvalidConfig, c.G)
	case c.SampleEvery < 1:
		return fmt.Errorf("%w: sample_every must be at least 1, got %d", ErrInvalidConfig, c.SampleEvery)
	case c.Scene == "":
		return fmt.Errorf("%w: scene is empty", ErrInvalidConfig)
	}

	in := c.Interaction
	steps := []struct {
		name string
		v    float64
	}{
		{"scale_step", in.ScaleStep},
		{"density_step", in.DensityStep},
		{"translate_step", in.TranslateStep},
		{"launch_speed_step", in.LaunchSpeedStep},
		{"launch_speed_threshold", in.LaunchSpeedThreshold},
	}
	for _, s := range steps {
		if s.v <= 0 {
			return fmt.Errorf("%w: interaction.%s must be positive, got %g", ErrInvalidConfig, s.name, s.v)
		}
	}
	return nil
}

// Steps is the number of frames Duration covers at Dt.
func (c *Config) Steps() int {
	return int(c.Duration/c.Dt + 0.5)
}
