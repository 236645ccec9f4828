package main

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/san-kum/orbitbox/internal/sim"
	"github.com/san-kum/orbitbox/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	gravity    float64
	duration   float64
	every      int
	seed       int64
	configFile string
	preset     string
	quiet      bool
	plane      string
	outFile    string
	benchSteps int
	benchRuns  int
	perturb    float64
	mcPerturb  float64
	svgFile    string
	theme      string
	workers    int
	trials     int
	radius     float64
	metric     string
	sweepG     []float64
	sweepSpeed []float64
	sweepSize  []float64
)

// main registers the orbitbox commands and exits 1 when one fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orbitbox",
		Short: "n-body gravity and collision sandbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				sim.SetLogger(log.New(io.Discard, "orbitbox: ", 0))
				return
			}
			sim.SetLogger(log.New(os.Stderr, "orbitbox: ", 0))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitbox", "data directory")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "discard diagnostics")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "night", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run a scene in a raylib window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and body paths of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane for paths (xy, xz, yz)")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the paths as svg")

	periodCmd := &cobra.Command{
		Use:   "period [run_id] [i] [j]",
		Short: "orbital period from the separation of two bodies",
		Args:  cobra.ExactArgs(3),
		RunE:  periodRun,
	}

	chaosCmd := &cobra.Command{
		Use:   "chaos [scene]",
		Short: "estimate the largest lyapunov exponent of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  chaosScene,
	}
	addSimFlags(chaosCmd)
	chaosCmd.Flags().Float64Var(&perturb, "perturbation", 1e-8, "initial offset of the shadow scene")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list premade scenes",
		RunE:  listScenes,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "time the integrator on a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchSteps, "steps", 10000, "steps per run")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 1, "independent copies run concurrently")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted sequence of scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "count stable runs over randomly perturbed copies of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&mcPerturb, "perturbation", 0.05, "position offset half width")
	monteCarloCmd.Flags().Float64Var(&radius, "radius", 0, "escape radius (default 4x the initial extent)")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 means unlimited)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search g, velocity and radius scale by a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepG, "gs", nil, "gravitational constants to try")
	sweepCmd.Flags().Float64SliceVar(&sweepSpeed, "speeds", nil, "velocity scales to try")
	sweepCmd.Flags().Float64SliceVar(&sweepSize, "radii", nil, "radius scales to try")
	sweepCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimise")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 means unlimited)")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addSimFlags(initCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, periodCmd, chaosCmd, exportCmd, scenesCmd, benchCmd, presetsCmd, scriptCmd, monteCarloCmd, sweepCmd, initCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&gravity, "g", 5.0, "gravitational constant")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().IntVar(&every, "every", 1, "store every n-th frame")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed recorded with the run")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func logf(format string, args ...any) {
	sim.Logger.Printf(format, args...)
}
