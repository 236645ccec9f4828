package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/orbitbox/internal/automation"
	"github.com/san-kum/orbitbox/internal/optim"
	"github.com/san-kum/orbitbox/internal/storage"
	"github.com/spf13/cobra"
)

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, st)
	for _, r := range results {
		line := fmt.Sprintf("  %d %-10s steps=%d drift=%.3e", r.Step, r.Scene, r.Result.StepsTaken, r.Result.EnergyDrift)
		if r.RunID != "" {
			line += " run=" + r.RunID
		}
		fmt.Println(line)
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, entries, err := loadScene(cfg)
	if err != nil {
		return err
	}
	r := radius
	if r <= 0 {
		r = boundRadius(sc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("monte carlo: %s, %d trials, perturbation %g, radius %g\n", cfg.Scene, trials, mcPerturb, r)
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Config:       cfg,
		Perturbation: mcPerturb,
		NumTrials:    trials,
		Radius:       r,
		Workers:      workers,
	}, entries)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tBOUNDED\tCOLLISIONS\tDRIFT\tSTABLE")
	for _, res := range results {
		fmt.Fprintf(w, "%d\t%.3f\t%d\t%.2e\t%v\n", res.Trial, res.Bounded, res.Collisions, res.EnergyDrift, res.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	_, entries, err := loadScene(cfg)
	if err != nil {
		return err
	}

	var names []string
	var ranges [][]float64
	for _, p := range []struct {
		name   string
		values []float64
	}{
		{"g", sweepG},
		{"speed", sweepSpeed},
		{"radius", sweepSize},
	} {
		if len(p.values) > 0 {
			names = append(names, p.name)
			ranges = append(ranges, p.values)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to sweep: pass --gs, --speeds or --radii")
	}

	grid := optim.NewGridSearch(names, ranges)
	fmt.Printf("sweeping %s over %d points by %s\n", cfg.Scene, len(grid.Points()), metric)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, val, trialsRun, err := grid.Search(ctx, optim.Builder(entries, cfg.G, cfg.Dt), simConfig(cfg), metric, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINT\tVALUE")
	for _, tr := range trialsRun {
		fmt.Fprintf(w, "%s\t%.6g\n", tr.Point, tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: %s (%s=%.6g)\n", best, metric, val)
	return nil
}
