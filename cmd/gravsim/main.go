package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/systems"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	log      zerolog.Logger

	seed        int64
	steps       int
	speed       float64
	sampleEvery int
	count       int
	multiplier  float64
	configFile  string
	preset      string
	jsonOut     bool

	theme      string
	bodyIndex  int
	outFile    string
	svgWidth   int
	svgHeight  int
	numRuns    int
	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "n-body gravity simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation and store the samples",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the run as JSON to stdout instead of storing it")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "play a simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeDeepSpace.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's distance and speed",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 1, "body to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw run tracks as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := systems.Kinds()
			if len(args) == 1 {
				kinds = args
			}
			for _, kind := range kinds {
				presets := config.ListPresets(kind)
				if len(presets) == 0 {
					fmt.Printf("no presets for scenario: %s\n", kind)
					continue
				}
				fmt.Printf("presets for %s:\n", kind)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "measure step throughput for growing body counts",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 200, "steps per measurement")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run one simulation per seed concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportSVGCmd, presetsCmd, benchCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(w io.Writer) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed (cloud)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&speed, "speed", 0, "simulated seconds per real second (0 uses the scenario's)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record bodies every n steps")
	cmd.Flags().IntVar(&count, "count", 0, "number of satellites (orbital, cloud)")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 1, "orbital velocity multiplier")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// later layers winning.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) == 1 {
		cfg.Scenario = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scenario))
		}
		cfg = p
	}

	if configFile != "" {
		scenario := cfg.Scenario
		var err error
		cfg, err = config.Merge(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) == 1 {
			cfg.Scenario = scenario
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("count") {
		cfg.Orbital.Count = count
		cfg.Cloud.Count = count
	}
	if flags.Changed("multiplier") {
		cfg.Orbital.VelocityMultiplier = multiplier
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("scenario", cfg.Scenario).
		Int64("seed", cfg.Seed).
		Int("steps", cfg.Steps).
		Float64("speed", cfg.Speed).
		Str("preset", preset).
		Str("config", configFile).
		Msg("resolved configuration")
	return cfg, nil
}

func buildScenario(cfg *config.Config) (*systems.Scenario, error) {
	sc, err := systems.Build(cfg.Scenario, cfg.Params(), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	if cfg.Speed > 0 {
		sc.Speed = cfg.Speed
	}
	return sc, nil
}

func runMetrics(sc *systems.Scenario) []dynamo.Metric {
	ms := metrics.Default()
	if len(sc.Bodies) > 1 {
		ms = append(ms, metrics.NewRadialDeviation(0, 1))
	}
	return ms
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sc, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	s, err := sim.New(sc)
	if err != nil {
		return err
	}
	for _, m := range runMetrics(sc) {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("scenario", cfg.Scenario).Int("bodies", s.Len()).Str("speed", s.SpeedString()).Msg("running simulation")
	start := time.Now()

	result, err := s.Run(ctx, cfg.RunConfig())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		log.Warn().Int("steps", result.StepsTaken).Msg("interrupted, keeping partial run")
	}
	for _, w := range result.Warnings {
		log.Warn().Err(w).Msg("simulation health")
	}

	elapsed := time.Since(start)
	info := storage.RunInfo{Scenario: cfg.Scenario, Seed: cfg.Seed, Speed: s.Speed(), SampleEvery: cfg.SampleEvery}

	if jsonOut {
		return export.WriteJSON(os.Stdout, info, result)
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}
	log.Debug().Str("run", runID).Str("dir", cfg.DataDir).Msg("run saved")

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("simulated: %s\n", formatSimTime(s.Elapsed()))
	fmt.Printf("speed: %s\n", s.SpeedString())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	m, err := viz.LiveFromConfig(cfg, cfg.Seed)
	if err != nil {
		return err
	}
	return viz.RunLive(m.WithTheme(viz.GetTheme(theme)))
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSTEPS\tSPEED\tDRIFT\tWARN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%.2e\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Speed,
			run.EnergyDrift,
			len(run.Warnings),
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

	tracks, err := st.LoadTracks(runID)
	if err != nil {
		return err
	}
	if bodyIndex <= 0 || bodyIndex >= len(tracks) {
		return fmt.Errorf("body %d out of range (run has %d bodies, body 0 is the reference)", bodyIndex, len(tracks))
	}

	primary, body := tracks[0].Points, tracks[bodyIndex].Points
	if len(primary) < len(body) {
		body = body[:len(primary)]
	}
	if len(body) < 2 {
		return fmt.Errorf("no data to plot")
	}

	distance := make([]float64, len(body))
	speeds := make([]float64, len(body))
	for i, p := range body {
		distance[i] = p.Position.Distance(primary[i].Position)
		speeds[i] = p.Velocity.Magnitude()
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(body))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{distance, fmt.Sprintf("distance of body %d from body 0 (m)", bodyIndex)},
		{speeds, fmt.Sprintf("speed of body %d (m/s)", bodyIndex)},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if tracks[bodyIndex].EverBrokeUp() {
		fmt.Printf("body %d entered a Roche limit\n", bodyIndex)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.BodiesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tracks, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	svg := export.TracksToSVG(tracks, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	if outFile == "" {
		_, err = fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	log.Info().Str("file", outFile).Int("bodies", len(tracks)).Msg("svg written")
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	kind := args[0]
	counts := []int{8, 64, 256, 1024}
	if kind == systems.KindEarthMoon {
		counts = []int{1}
	}

	fmt.Printf("benchmarking %s\n\n", kind)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tSTEPS/SEC\tPAIRS/SEC")

	for _, n := range counts {
		p := systems.DefaultParams()
		p.Orbital.Count = n
		p.Cloud.Count = n

		sc, err := systems.Build(kind, p, rand.New(rand.NewSource(42)))
		if err != nil {
			return err
		}
		s, err := sim.New(sc)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := s.Run(context.Background(), sim.RunConfig{Steps: benchSteps})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		bodies := s.Len()
		stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
		pairsPerSec := stepsPerSec * float64(bodies*(bodies-1))

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3g\n",
			bodies, result.StepsTaken, elapsed, stepsPerSec, pairsPerSec)
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("scenario", cfg.Scenario).Int("runs", numRuns).Int64("first_seed", cfg.Seed).Msg("running ensemble")

	e := sim.NewEnsemble(cfg.Scenario, cfg.Params(), numRuns, cfg.Seed).WithMetrics(metrics.Default)
	results, err := e.Run(ctx, cfg.RunConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tENERGY DRIFT\tMOMENTUM DRIFT\tBREAKUP STEPS\tWARNINGS")

	worst := 0.0
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3e\t%.3e\t%d\t%s\n",
			cfg.Seed+int64(i),
			r.StepsTaken,
			r.Metrics["energy_drift"],
			r.Metrics["momentum_drift"],
			r.Breakups,
			warningSummary(r.Warnings),
		)
		worst = math.Max(worst, r.Metrics["energy_drift"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nworst energy drift: %.3e\n", worst)
	return nil
}

func warningSummary(warnings []error) string {
	if len(warnings) == 0 {
		return "-"
	}
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Error()
	}
	return strings.Join(msgs, "; ")
}

func formatSimTime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	if seconds < 365.25*86400 && d > 0 {
		return d.String()
	}
	return fmt.Sprintf("%.2f years", seconds/(365.25*86400))
}
