package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/metrics"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/sim"
	"github.com/san-kum/orbitbox/internal/storage"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields fall back to the preset, then to
// the defaults.
type ScenarioStep struct {
	Scene       string  `yaml:"scene"`
	Preset      string  `yaml:"preset"`
	Dt          float64 `yaml:"dt"`
	G           float64 `yaml:"g"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
	Seed        int64   `yaml:"seed"`
	Save        bool    `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyScenario)
	}

	return &scenario, nil
}

// Config resolves the step against its preset and validates it.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Scene != "" {
		cfg.Scene = s.Scene
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.G != 0 {
		cfg.G = s.G
	}
	if s.Duration != 0 {
		cfg.Duration = s.Duration
	}
	if s.SampleEvery != 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, cfg.Validate()
}

// StepResult is the outcome of one scenario step. RunID is empty unless the
// step was saved.
type StepResult struct {
	Step   int
	Scene  string
	RunID  string
	Result *sim.Result
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: cfg.ValidateState,
	}
}

// RunScenario executes all steps in order. Steps marked save are written to
// st, which may be nil when nothing is saved.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		sim.Logger.Printf("step %d/%d: %s", i+1, len(scenario.Steps), cfg.Scene)

		entries, err := scene.Resolve(cfg.Scene, cfg.Dt)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		sc := scene.New()
		sc.Load(entries)

		s := sim.New(sc, cfg.G)
		s.AddMetric(metrics.NewEnergyDrift(cfg.G, cfg.Dt))
		s.AddMetric(metrics.NewCollisions())

		result, err := s.Run(ctx, simConfig(cfg))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Scene: cfg.Scene, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save to", i+1)
			}
			sr.RunID, err = st.Save(storage.RunInfo{
				Scene:    cfg.Scene,
				Dt:       cfg.Dt,
				G:        cfg.G,
				Duration: cfg.Duration,
				Seed:     cfg.Seed,
				Every:    cfg.SampleEvery,
				Initial:  entries,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Config *config.Config
	// Perturbation is the half width of the uniform offset added to every
	// position coordinate.
	Perturbation float64
	NumTrials    int
	// Radius is the escape distance from the centre of mass.
	Radius  float64
	Workers int
}

// MonteCarloResult holds one trial's outcome
type MonteCarloResult struct {
	Trial       int
	Bounded     float64
	Stable      bool
	EnergyDrift float64
	Collisions  int
}

// perturb offsets each body's position and previous position together so
// velocities are kept.
func perturb(entries []scene.Entry, amount float64, rng *rand.Rand) []scene.Entry {
	out := make([]scene.Entry, len(entries))
	for i, e := range entries {
		var d mgl64.Vec3
		for k := range d {
			d[k] = (rng.Float64() - 0.5) * 2 * amount
		}
		e.Body.Position = e.Body.Position.Add(d)
		e.Body.PositionPrev = e.Body.PositionPrev.Add(d)
		out[i] = e
	}
	return out
}

// RunMonteCarlo runs NumTrials randomly perturbed copies of entries
// concurrently. The perturbations depend only on cfg.Config.Seed; a zero
// seed draws one from the clock.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, entries []scene.Entry) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo: need at least one trial, got %d", cfg.NumTrials)
	}
	base := cfg.Config

	seed := base.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sims := make([]*sim.Simulator, cfg.NumTrials)
	bounded := make([]*metrics.Bounded, cfg.NumTrials)
	collisions := make([]*metrics.Collisions, cfg.NumTrials)
	for trial := range sims {
		sc := scene.New()
		sc.Load(perturb(entries, cfg.Perturbation, rng))

		s := sim.New(sc, base.G)
		bounded[trial] = metrics.NewBounded(cfg.Radius)
		collisions[trial] = metrics.NewCollisions()
		s.AddMetric(bounded[trial])
		s.AddMetric(collisions[trial])
		sims[trial] = s
	}

	runs, err := sim.NewEnsemble(cfg.Workers, sims...).Run(ctx, simConfig(base))
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	for trial, r := range runs {
		start, end := sims[trial].Scene().SimRange()
		b := bounded[trial].Value()
		results[trial] = MonteCarloResult{
			Trial:       trial,
			Bounded:     b,
			Stable:      b == 1 && len(r.Errors) == 0 && physics.IsFinite(sims[trial].Scene().Bodies(), start, end),
			EnergyDrift: r.EnergyDrift,
			Collisions:  collisions[trial].Count(),
		}
	}
	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
