package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/storage"
)

const script = `name: smoke
description: two short runs
steps:
  - scene: headon
    g: 1
    duration: 0.1
    save: true
  - preset: solar
    duration: 0.02
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScript(t, script))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("got %+v", sc)
	}
	if !sc.Steps[0].Save || sc.Steps[1].Preset != "solar" {
		t.Errorf("steps = %+v", sc.Steps)
	}

	if _, err := LoadScenario(writeScript(t, "name: empty\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("err = %v, want ErrEmptyScenario", err)
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestStepConfig(t *testing.T) {
	cfg, err := ScenarioStep{Preset: "solar", Duration: 1}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "solar" || cfg.Dt != 0.002 || cfg.Duration != 1 {
		t.Errorf("got %+v", cfg)
	}

	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("unknown preset accepted")
	}
	if _, err := (ScenarioStep{Dt: -1}).Config(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScript(t, script))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("run ids = %q, %q", results[0].RunID, results[1].RunID)
	}
	if results[0].Result.StepsTaken != 10 || results[1].Result.StepsTaken != 10 {
		t.Errorf("steps = %d, %d", results[0].Result.StepsTaken, results[1].Result.StepsTaken)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Scene != "headon" {
		t.Errorf("stored runs = %+v", runs)
	}

	if _, err := RunScenario(context.Background(), sc, nil); err == nil {
		t.Error("saving without a store accepted")
	}
}

func monteCarloConfig(seed int64) *MonteCarloConfig {
	cfg := config.DefaultConfig()
	cfg.Duration = 0.5
	cfg.Seed = seed
	return &MonteCarloConfig{
		Config:       cfg,
		Perturbation: 0.01,
		NumTrials:    4,
		Radius:       100,
		Workers:      2,
	}
}

func binary(t *testing.T) []scene.Entry {
	t.Helper()
	entries, err := scene.Premade("binary", config.DefaultDt)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestRunMonteCarloSeeded(t *testing.T) {
	a, err := RunMonteCarlo(context.Background(), monteCarloConfig(42), binary(t))
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunMonteCarlo(context.Background(), monteCarloConfig(42), binary(t))
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("trial %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if !a[i].Stable {
			t.Errorf("trial %d unstable: %+v", i, a[i])
		}
	}
	if a[0].EnergyDrift == a[1].EnergyDrift {
		t.Error("perturbed trials should differ")
	}

	stable, unstable := MonteCarloStats(a)
	if stable != 4 || unstable != 0 {
		t.Errorf("stats = %d, %d", stable, unstable)
	}
}

func TestRunMonteCarloUnperturbed(t *testing.T) {
	cfg := monteCarloConfig(7)
	cfg.Perturbation = 0
	results, err := RunMonteCarlo(context.Background(), cfg, binary(t))
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].EnergyDrift != results[0].EnergyDrift {
			t.Errorf("trial %d drift %v, want %v", i, results[i].EnergyDrift, results[0].EnergyDrift)
		}
	}

	cfg.NumTrials = 0
	if _, err := RunMonteCarlo(context.Background(), cfg, binary(t)); err == nil {
		t.Error("zero trials accepted")
	}
}

func TestMonteCarloStats(t *testing.T) {
	stable, unstable := MonteCarloStats([]MonteCarloResult{{Stable: true}, {}, {Stable: true}})
	if stable != 2 || unstable != 1 {
		t.Errorf("stats = %d, %d", stable, unstable)
	}
}
