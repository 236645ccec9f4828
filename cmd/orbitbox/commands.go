package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitbox/internal/analysis"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/export"
	"github.com/san-kum/orbitbox/internal/gui"
	"github.com/san-kum/orbitbox/internal/metrics"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/sim"
	"github.com/san-kum/orbitbox/internal/storage"
	"github.com/san-kum/orbitbox/internal/viz"
	"github.com/spf13/cobra"
)

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: cfg.ValidateState,
	}
}

// boundRadius is how far from the centre of mass bodies may wander before
// the run counts as escaped.
func boundRadius(sc *scene.Scene) float64 {
	start, end := sc.SimRange()
	com := physics.CenterOfMass(sc.Bodies(), start, end)
	r := 1.0
	for _, b := range sc.Bodies()[start:end] {
		r = math.Max(r, b.Position.Sub(com).Len())
	}
	return 4 * r
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, entries, err := loadScene(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(sc, cfg.G)
	s.AddMetric(metrics.NewEnergyDrift(cfg.G, cfg.Dt))
	s.AddMetric(metrics.NewMomentumDrift(cfg.Dt))
	s.AddMetric(metrics.NewCollisions())
	s.AddMetric(metrics.NewBounded(boundRadius(sc)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d bodies, %d steps)...\n", cfg.Scene, sc.NumSimulated(), cfg.Steps())
	start := time.Now()

	result, err := s.Run(ctx, simConfig(cfg))
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d steps\n", result.StepsTaken)
	}

	elapsed := time.Since(start)

	runID, saveErr := st.Save(storage.RunInfo{
		Scene:    cfg.Scene,
		Dt:       cfg.Dt,
		G:        cfg.G,
		Duration: cfg.Duration,
		Seed:     cfg.Seed,
		Every:    cfg.SampleEvery,
		Initial:  entries,
	}, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	viz.SetTheme(theme)

	var m tea.Model
	if len(args) == 0 && preset == "" && configFile == "" {
		m = viz.NewPicker(cfg)
	} else {
		sc, _, err := loadScene(cfg)
		if err != nil {
			return err
		}
		m = viz.NewModel(sc, cfg.Scene, cfg)
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, _, err := loadScene(cfg)
	if err != nil {
		return err
	}
	gui.Run(sc, cfg.Scene, cfg)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tBODIES\tDURATION\tDT\tG\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%.2f\t%.2e\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Duration,
			run.Dt,
			run.G,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func parsePlane(s string) (analysis.Plane, error) {
	switch s {
	case "xy":
		return analysis.PlaneXY, nil
	case "xz":
		return analysis.PlaneXZ, nil
	case "yz":
		return analysis.PlaneYZ, nil
	}
	return 0, fmt.Errorf("unknown plane: %s", s)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	pl, err := parsePlane(plane)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, energies, err := st.LoadEnergy(runID)
	if err != nil {
		return err
	}
	_, positions, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s  bodies: %d  g: %.2f\n\n", meta.Scene, meta.Bodies, meta.G)

	if len(energies) > 1 {
		fmt.Println(asciigraph.Plot(energies,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("total energy"),
		))
		fmt.Println()
	}

	traces := make([]*analysis.Trace, meta.Bodies)
	for b := range traces {
		path := make([]mgl64.Vec3, 0, len(positions))
		for _, frame := range positions {
			if b < len(frame) {
				path = append(path, frame[b])
			}
		}
		traces[b] = analysis.NewTrace(path, pl)
	}
	fmt.Println(analysis.TraceToASCII(traces, 70, 24))

	if svgFile == "" {
		return nil
	}
	colors := make([]string, len(traces))
	if entries, err := st.LoadScene(runID, meta.Dt); err == nil {
		for b, e := range entries {
			if b < len(colors) {
				colors[b] = export.Hex(e.Look)
			}
		}
	} else {
		logf("no scene colours for %s: %v", runID, err)
	}
	f, err := os.Create(svgFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.TracesToSVG(f, traces, colors, 800, 800); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func periodRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("body index: %w", err)
	}
	j, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("body index: %w", err)
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if i < 0 || j < 0 || i >= meta.Bodies || j >= meta.Bodies || i == j {
		return fmt.Errorf("%w: bodies %d and %d of %d", scene.ErrIndexOutOfRange, i, j, meta.Bodies)
	}

	_, positions, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	series := make([]float64, len(positions))
	for k, frame := range positions {
		series[k] = frame[i].Sub(frame[j]).Len()
	}

	period, err := analysis.DominantPeriod(series, meta.SampleDt())
	if err != nil {
		return err
	}
	fmt.Printf("separation %d-%d: min %.4f max %.4f\n", i, j, minOf(series), maxOf(series))
	fmt.Printf("period: %.4f\n", period)
	return nil
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		m = math.Min(m, x)
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	return m
}

func chaosScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, _, err := loadScene(cfg)
	if err != nil {
		return err
	}
	start, end := sc.SimRange()
	lambda := analysis.LyapunovExponent(sc.Bodies(), start, end, cfg.G, cfg.Dt, cfg.Duration, perturb)
	fmt.Printf("scene: %s\n", cfg.Scene)
	fmt.Printf("lyapunov exponent: %.6f\n", lambda)
	if lambda > 0 {
		fmt.Println("nearby trajectories diverge")
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportJSON(f, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outFile)
	return nil
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tSCENE\tBODIES")
	for i, name := range scene.PremadeNames() {
		entries, err := scene.Premade(name, config.DefaultDt)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, name, len(entries))
	}
	return w.Flush()
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if benchSteps < 1 || benchRuns < 1 {
		return fmt.Errorf("steps and runs must be positive")
	}
	cfg.Duration = float64(benchSteps) * cfg.Dt
	cfg.SampleEvery = benchSteps

	sims := make([]*sim.Simulator, benchRuns)
	bodies := 0
	for k := range sims {
		sc, _, err := loadScene(cfg)
		if err != nil {
			return err
		}
		bodies = sc.NumSimulated()
		sims[k] = sim.New(sc, cfg.G)
	}

	fmt.Printf("benchmarking %s: %d bodies, %d steps, %d runs\n", cfg.Scene, bodies, benchSteps, benchRuns)

	start := time.Now()
	results, err := sim.NewEnsemble(0, sims...).Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := 0
	for _, r := range results {
		total += r.StepsTaken
	}
	fmt.Printf("total: %v\n", elapsed)
	fmt.Printf("per step: %v\n", elapsed/time.Duration(max(total, 1)))
	fmt.Printf("steps/sec: %.0f\n", float64(total)/elapsed.Seconds())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSCENE\tDT\tG\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%gs\n", name, p.Scene, p.Dt, p.G, p.Duration)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
