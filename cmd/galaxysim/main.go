package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/galaxysim/internal/analysis"
	"github.com/san-kum/galaxysim/internal/config"
	"github.com/san-kum/galaxysim/internal/dynamo"
	"github.com/san-kum/galaxysim/internal/experiment"
	"github.com/san-kum/galaxysim/internal/export"
	"github.com/san-kum/galaxysim/internal/gui"
	"github.com/san-kum/galaxysim/internal/optim"
	"github.com/san-kum/galaxysim/internal/sim"
	"github.com/san-kum/galaxysim/internal/storage"
	"github.com/san-kum/galaxysim/internal/viz"
)

var (
	configFile string
	preset     string
	verbose    bool

	stars      int
	holes      int
	workers    int
	seed       int64
	g          float64
	schedule   string
	bodyUpdate string

	runFrames   int
	benchFrames int
	orbitFrames int
	sweepFrames int
	svgPath     string
	outPath     string
	workerList  string
	holeA       int
	holeB       int
	frameRate   int
	themeName   string
	graphHeight int
	saveRun     bool
	dataDir     string
	sweepParams []string
	sweepMetric string
)

var log = slog.New(slog.NewTextHandler(os.Stderr, nil))

// main registers the galaxysim commands and runs the root command. With no
// subcommand the window renderer starts.
func main() {
	rootCmd := &cobra.Command{
		Use:   "galaxysim",
		Short: "stars and black holes on a torus",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: runGUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addWorldFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addWorldFlags(guiCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&themeName, "theme", viz.ThemeNebula.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().IntVar(&runFrames, "frames", 200, "frames to run")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	runCmd.Flags().IntVar(&graphHeight, "graph-height", 10, "height of the frame time chart")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "store the run under --data")
	runCmd.Flags().StringVar(&dataDir, "data", "runs", "directory for stored runs")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	runsCmd.Flags().StringVar(&dataDir, "data", "runs", "directory for stored runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search simulation parameters against a metric",
		Long: "Runs every combination of --param values and reports the one with the lowest metric.\n" +
			"Parameters: " + strings.Join(optim.ParamNames(), ", "),
		Example: "  galaxysim sweep --preset tiny --param workers=1,2,4 --param g=50,100 --metric ms_per_frame",
		Args:    cobra.NoArgs,
		RunE:    runSweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 50, "frames per grid point")
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "ms_per_frame", "metric to minimize")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure steps per second across worker counts and schedules",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addWorldFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 50, "frames per measurement")
	benchCmd.Flags().StringVar(&workerList, "workers-list", "1,2,4,8", "comma separated worker counts")

	orbitsCmd := &cobra.Command{
		Use:   "orbits",
		Short: "estimate the orbital period of two black holes",
		Args:  cobra.NoArgs,
		RunE:  runOrbits,
	}
	addWorldFlags(orbitsCmd)
	orbitsCmd.Flags().IntVar(&orbitFrames, "frames", 4096, "frames to record")
	orbitsCmd.Flags().IntVar(&holeA, "a", 0, "first hole index")
	orbitsCmd.Flags().IntVar(&holeB, "b", 1, "second hole index")
	orbitsCmd.Flags().StringVar(&svgPath, "svg", "", "write hole tracks as svg")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTARS\tHOLES\tWORLD\tWORKERS\tLAYOUT")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%gx%g\t%d\t%s\n",
					name,
					cfg.Seed.Stars,
					cfg.Seed.Holes,
					cfg.World.Width, cfg.World.Height,
					cfg.Simulation.Workers,
					cfg.Seed.Layout,
				)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if outPath != "" {
				if err := config.Save(outPath, cfg); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				log.Info("config written", "path", outPath)
				return nil
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	addWorldFlags(configCmd)
	configCmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, runsCmd, benchCmd, sweepCmd, orbitsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&stars, "stars", 0, "number of stars")
	f.IntVar(&holes, "holes", 0, "number of black holes")
	f.IntVar(&workers, "workers", 0, "worker goroutines for the star phase")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.Float64Var(&g, "g", 0, "gravitational constant")
	f.StringVar(&schedule, "schedule", string(dynamo.SchedulePool), "star phase schedule (pool, spawn)")
	f.StringVar(&bodyUpdate, "body-update", string(dynamo.BodyUpdateSnapshot), "hole update order (snapshot, sequential)")
}

// loadConfig resolves the configuration: defaults, then preset, then the
// config file applied over them, then any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
		log.Debug("preset selected", "preset", preset)
	}

	if configFile != "" {
		c, err := config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		log.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("stars") {
		cfg.Seed.Stars = stars
	}
	if flags.Changed("holes") {
		cfg.Seed.Holes = holes
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed.Seed = seed
	}
	if flags.Changed("g") {
		cfg.Simulation.G = g
	}
	if flags.Changed("schedule") {
		cfg.Simulation.Schedule = schedule
	}
	if flags.Changed("body-update") {
		cfg.Simulation.BodyUpdate = bodyUpdate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("world seeded",
		"stars", cfg.Seed.Stars,
		"holes", cfg.Seed.Holes,
		"workers", cfg.Simulation.Workers,
		"schedule", cfg.Simulation.Schedule,
		"body_update", cfg.Simulation.BodyUpdate,
	)
	return exp, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	defer exp.Close()

	cfg := exp.Config()
	width, height := cfg.ScreenSize()
	gui.Run(exp.Simulator(), gui.Options{
		Width:     width,
		Height:    height,
		Scale:     cfg.Render.Scale,
		StarShade: cfg.Render.StarShade,
		FPS:       cfg.Render.FPS,
		Title:     cfg.Render.Title,
		TuneStep:  cfg.Render.TuneStep,
		SpeedStep: cfg.Render.SpeedStep,
	})
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	defer exp.Close()

	viz.SetTheme(themeName)
	cfg := exp.Config()
	model := viz.NewModel(exp.Simulator(), viz.LiveOptions{
		Title:     cfg.Render.Title,
		FPS:       frameRate,
		TuneStep:  cfg.Render.TuneStep,
		SpeedStep: cfg.Render.SpeedStep,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	defer exp.Close()
	exp.Setup(experiment.NewRegistry().DefaultMetrics())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("run started", "frames", runFrames)
	result, err := exp.Run(ctx, runFrames)
	if err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("run finished", "frames", result.Frames, "elapsed", result.Elapsed)

	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("elapsed: %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("steps/sec: %.1f\n", result.StepsPerSecond())
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if len(result.FrameMillis) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.FrameMillis,
			asciigraph.Height(graphHeight),
			asciigraph.Width(80),
			asciigraph.Caption("ms/frame"),
		))
	}

	if svgPath != "" {
		cfg := exp.Config()
		w, h := cfg.ScreenSize()
		if err := os.WriteFile(svgPath, []byte(export.WorldToSVG(exp.Simulator().World, w, h)), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		log.Info("snapshot written", "path", svgPath)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		label := preset
		if label == "" {
			label = "run"
		}
		runID, err := st.Save(label, exp.Config(), result)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARS\tHOLES\tWORKERS\tSCHEDULE\tFRAMES\tMS/FRAME")
	for _, r := range runs {
		ms := 0.0
		if r.Frames > 0 {
			ms = r.ElapsedMillis / float64(r.Frames)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\t%.3f\n",
			r.ID, r.Stars, r.Holes, r.Workers, r.Schedule, r.Frames, ms)
	}
	return w.Flush()
}

func parseSweep(params []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(params))
	ranges := make([][]float64, 0, len(params))
	for _, arg := range params {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2", arg)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("param %s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("at least one --param is required")
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	names, ranges, err := parseSweep(sweepParams)
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	if _, err := registry.GetMetric(sweepMetric); err != nil {
		return fmt.Errorf("%w (available: %v)", err, registry.ListMetrics())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gs := optim.NewGridSearch(names, ranges)
	best, all, err := gs.Search(ctx, func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := optim.Apply(base, params)
		if err != nil {
			return nil, err
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return nil, err
		}
		m, _ := registry.GetMetric(sweepMetric)
		exp.Setup([]sim.Metric{m})
		log.Debug("grid point", "params", params)
		return exp, nil
	}, sweepFrames, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, p := range all {
		row := make([]string, 0, len(names)+1)
		for _, name := range names {
			row = append(row, strconv.FormatFloat(p.Params[name], 'g', -1, 64))
		}
		row = append(row, fmt.Sprintf("%.6f", p.Value))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.6f at %v\n", sweepMetric, best.Value, best.Params)
	return nil
}

func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid worker count %q", field)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no worker counts in %q", s)
	}
	return out, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	counts, err := parseWorkers(workerList)
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d stars, %d holes\n\n", base.Seed.Stars, base.Seed.Holes)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tSCHEDULE\tFRAMES\tTIME\tMS/FRAME\tSTEPS/SEC")

	for _, n := range counts {
		for _, sched := range []dynamo.Schedule{dynamo.SchedulePool, dynamo.ScheduleSpawn} {
			cfg := base.Clone()
			cfg.Simulation.Workers = n
			cfg.Simulation.Schedule = string(sched)

			exp, err := experiment.New(cfg)
			if err != nil {
				return err
			}
			result, err := exp.Run(context.Background(), benchFrames)
			exp.Close()
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.3f\t%.1f\n",
				n,
				sched,
				result.Frames,
				result.Elapsed.Round(time.Millisecond),
				float64(result.Elapsed)/float64(time.Millisecond)/float64(result.Frames),
				result.StepsPerSecond(),
			)
			log.Debug("bench point", "workers", n, "schedule", sched, "elapsed", result.Elapsed)
		}
	}

	return w.Flush()
}

func runOrbits(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	defer exp.Close()

	world := exp.Simulator().World
	if holeA == holeB || holeA < 0 || holeB < 0 || holeA >= len(world.Holes) || holeB >= len(world.Holes) {
		return fmt.Errorf("need two distinct holes in [0, %d), got %d and %d", len(world.Holes), holeA, holeB)
	}

	rec := analysis.NewSeparationRecorder(holeA, holeB)
	tracks := &export.TrackRecorder{}
	exp.Setup(nil, rec, tracks)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := exp.Run(ctx, orbitFrames); err != nil && ctx.Err() == nil {
		return err
	}

	samples := rec.Samples()
	if len(samples) > 1 {
		fmt.Println(asciigraph.Plot(samples,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("separation of holes %d and %d", holeA, holeB)),
		))
		fmt.Println()
	}

	period, err := analysis.DominantPeriod(samples, world.Params.Dt)
	if err != nil {
		return fmt.Errorf("orbital period: %w", err)
	}
	fmt.Printf("samples: %d\n", len(samples))
	fmt.Printf("dominant period: %.3f (%.1f steps)\n", period, period/world.Params.Dt)

	if svgPath != "" {
		w, h := exp.Config().ScreenSize()
		if err := os.WriteFile(svgPath, []byte(export.TracksToSVG(tracks.Tracks, world.Bounds, w, h)), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		log.Info("tracks written", "path", svgPath)
	}
	return nil
}
