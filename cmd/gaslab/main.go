package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pkozlow/gaslab/internal/config"
	"github.com/pkozlow/gaslab/internal/engine"
	"github.com/pkozlow/gaslab/internal/metrics"
	"github.com/pkozlow/gaslab/internal/storage"
	"github.com/pkozlow/gaslab/internal/tui"
	"github.com/pkozlow/gaslab/internal/world"
)

var (
	dataDir    string
	width      float64
	height     float64
	radius     float64
	dt         float64
	particles  int
	minSpeed   float64
	maxSpeed   float64
	steps      int
	seed       int64
	configFile string
	preset     string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gaslab",
		Short: "2d hard-disc gas collision simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gaslab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput",
		RunE:  benchSteps,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "domain width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "domain height")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "body radius")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of bodies")
	cmd.Flags().Float64Var(&minSpeed, "min-speed", config.DefaultMinSpeed, "minimum initial speed")
	cmd.Flags().Float64Var(&maxSpeed, "max-speed", config.DefaultMaxSpeed, "maximum initial speed")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file and changed CLI flags over the
// defaults, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("min-speed") {
		cfg.MinSpeed = minSpeed
	}
	if cmd.Flags().Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

func buildSimulator(cfg *config.Config) *engine.Simulator {
	p := world.Params{Width: cfg.Width, Height: cfg.Height, Radius: cfg.Radius}
	rng := rand.New(rand.NewSource(cfg.Seed))
	w := world.NewRandom(p, cfg.Particles, cfg.MinSpeed, cfg.MaxSpeed, rng)

	sim := engine.New(w, cfg.Dt)
	sim.AddMetric(metrics.NewEnergyDrift(metrics.DriftThreshold, os.Stderr))
	sim.AddMetric(metrics.NewTemperature())
	sim.AddMetric(metrics.NewWallPressure(cfg.Width, cfg.Height))
	sim.AddMetric(metrics.NewNetMomentum())
	return sim
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim := buildSimulator(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d bodies for %d steps...\n", cfg.Particles, cfg.Steps)
	start := time.Now()

	result, err := sim.Run(ctx, engine.Config{Dt: cfg.Dt, Steps: cfg.Steps})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Printf("energy baseline: %.4f\n", result.Baseline)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	sim := buildSimulator(cfg)
	return tui.Run(sim, cfg.MaxSpeed, frameRate)
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
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tSTEPS\tDT\tMAX DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%.6f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Steps,
			run.Dt,
			run.Metrics["energy_drift"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d, dt: %.2f, baseline: %.4f\n\n", meta.Particles, meta.Dt, meta.Baseline)

	for _, plot := range []struct {
		data    []float64
		caption string
	}{
		{series.Energy, "total kinetic energy"},
		{series.Drift, "energy drift |E - E0|"},
		{series.Pressure, "wall pressure"},
	} {
		graph := asciigraph.Plot(plot.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plot.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	out := struct {
		Meta     *storage.RunMetadata `json:"meta"`
		Times    []float64            `json:"times"`
		Energy   []float64            `json:"energy"`
		Drift    []float64            `json:"drift"`
		Pressure []float64            `json:"pressure"`
	}{meta, series.Times, series.Energy, series.Drift, series.Pressure}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func benchSteps(cmd *cobra.Command, args []string) error {
	counts := []int{500, 1000, 3000}
	dts := []float64{0.25, 0.5, 1.0}
	const nSteps = 200

	fmt.Println("benchmarking step pipeline")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, d := range dts {
			p := world.Params{Width: config.DefaultWidth, Height: config.DefaultHeight, Radius: config.DefaultRadius}
			rng := rand.New(rand.NewSource(42))
			sim := engine.New(world.NewRandom(p, n, 1, 10, rng), d)

			start := time.Now()
			result, err := sim.Run(context.Background(), engine.Config{Dt: d, Steps: nSteps})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.2f\t%d\t%v\t%.0f\n",
				n, d, result.Steps, elapsed, float64(result.Steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
