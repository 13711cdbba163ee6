package main

import (
	"fmt"
	"os"

	"github.com/BrugadaSyndrome/bslogger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/fractalview/internal/config"
	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/metrics"
	"github.com/san-kum/fractalview/internal/render"
	"github.com/san-kum/fractalview/internal/storage"
	"github.com/san-kum/fractalview/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      int
	height     int
	maxIter    int
	minSpan    float64
	workers    int
	juliaRe    float64
	juliaIm    float64
	paletteArg string
	verbose    bool
	// explorer
	themeName string
	record    bool
	smooth    bool
	// previews
	cols      int
	rows      int
	trailPath string
	// bench
	frames int
	seed   int64
	// stats
	bins       int
	sweepSteps int
	sweepDelta float64
)

// main registers the fractalview commands and runs the root command, which
// opens the interactive explorer when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "fractalview",
		Short: "escape-time fractal explorer",
		RunE:  runApp,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fractalview", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	rootCmd.PersistentFlags().IntVar(&maxIter, "max-iter", config.DefaultMaxIterations, "iteration limit")
	rootCmd.PersistentFlags().Float64Var(&minSpan, "min-span", 0, "refuse zooms below this span (0 = unguarded)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", config.DefaultWorkers, "render workers (-1 = one per cpu)")
	rootCmd.PersistentFlags().Float64Var(&juliaRe, "julia-re", real(escape.DefaultJuliaConstant), "julia constant, real part")
	rootCmd.PersistentFlags().Float64Var(&juliaIm, "julia-im", imag(escape.DefaultJuliaConstant), "julia constant, imaginary part")
	rootCmd.PersistentFlags().StringVar(&paletteArg, "palette", "", "palette override (mandelbrot, julia)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "ui theme")
	rootCmd.Flags().BoolVar(&record, "record", false, "save the session on exit")
	rootCmd.Flags().BoolVar(&smooth, "smooth", false, "smooth scaling")

	viewCmd := &cobra.Command{
		Use:   "view [variant]",
		Short: "explore one variant interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "ui theme")
	viewCmd.Flags().BoolVar(&record, "record", false, "save the session on exit")
	viewCmd.Flags().BoolVar(&smooth, "smooth", false, "smooth scaling")

	renderCmd := &cobra.Command{
		Use:   "render [variant]",
		Short: "render one frame to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	renderCmd.Flags().IntVar(&cols, "cols", 80, "preview columns")
	renderCmd.Flags().IntVar(&rows, "rows", 24, "preview rows")
	renderCmd.Flags().BoolVar(&smooth, "smooth", false, "smooth scaling")

	inspectCmd := &cobra.Command{
		Use:     "inspect [variant] <re> <im>",
		Short:   "iteration count and color of one point",
		Example: "  fractalview inspect -- -0.75 0.1\n  fractalview inspect julia -- 0.3 -0.2",
		Args:    cobra.RangeArgs(2, 3),
		RunE:    inspectPoint,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [variant]",
		Short: "benchmark renderers",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchRender,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 20, "frames per renderer")
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "random walk seed")

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	runCmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "run a scripted exploration",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().BoolVar(&record, "record", false, "save the run as a session")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "list recorded sessions",
		RunE:  listSessions,
	}
	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "export a session as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSession,
	}
	sessionsCmd.AddCommand(exportCmd)

	replayCmd := &cobra.Command{
		Use:   "replay <id>",
		Short: "replay a recorded session headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  replaySession,
	}
	replayCmd.Flags().IntVar(&cols, "cols", 80, "preview columns")
	replayCmd.Flags().IntVar(&rows, "rows", 24, "preview rows")
	replayCmd.Flags().StringVar(&trailPath, "trail", "", "write the path of view centers as svg")

	statsCmd := &cobra.Command{
		Use:   "stats [variant]",
		Short: "frame statistics and zoom sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  frameStats,
	}
	statsCmd.Flags().IntVar(&bins, "bins", 32, "histogram bins")
	statsCmd.Flags().IntVar(&sweepSteps, "sweep", 8, "zoom sweep steps toward the view center")
	statsCmd.Flags().Float64Var(&sweepDelta, "delta", 3, "scroll delta per sweep step")

	rootCmd.AddCommand(viewCmd, renderCmd, inspectCmd, benchCmd, presetsCmd,
		runCmd, sessionsCmd, replayCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(name string) bslogger.Logger {
	if verbose {
		return bslogger.NewLogger(name, bslogger.All, nil)
	}
	return bslogger.NewLogger(name, bslogger.Normal, nil)
}

// tuiLogger keeps stdout for the terminal UI.
func tuiLogger(name string) bslogger.Logger {
	return bslogger.NewLogger(name, bslogger.Minimal, nil)
}

// checkError logs err and reports whether there was one.
func checkError(err error, logger bslogger.Logger) bool {
	if err == nil {
		return false
	}
	logger.Error(err.Error())
	return true
}

// variantArg returns the variant named by args[0], or mandelbrot.
func variantArg(args []string) (string, bool, error) {
	if len(args) == 0 {
		return escape.Mandelbrot.String(), false, nil
	}
	v, err := escape.ParseVariant(args[0])
	if err != nil {
		return "", false, err
	}
	return v.String(), true, nil
}

// buildConfig resolves defaults, then a preset or config file, then any
// flag the user set explicitly.
func buildConfig(cmd *cobra.Command, variant string, explicit bool) (*config.Config, error) {
	if preset != "" && configFile != "" {
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	}

	cfg := config.DefaultConfig(variant)
	switch {
	case preset != "":
		p, err := config.GetPreset(variant, preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if explicit && loaded.Variant != variant {
			return nil, fmt.Errorf("config file is %s, asked for %s", loaded.Variant, variant)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("min-span") {
		cfg.MinSpan = minSpan
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("julia-re") {
		cfg.Julia.Real = juliaRe
	}
	if flags.Changed("julia-im") {
		cfg.Julia.Imag = juliaIm
	}
	if flags.Changed("palette") {
		cfg.Palette = paletteArg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController wires a renderer, the default metrics and the other variant
// as the toggle target.
func newController(cfg *config.Config, sink control.Sink, logger bslogger.Logger) (*control.Controller, error) {
	scene, err := cfg.Scene()
	if err != nil {
		return nil, err
	}
	companion, err := cfg.Companion().Scene()
	if err != nil {
		return nil, err
	}
	return control.New(scene, render.New(cfg.Workers), sink,
		control.WithLogger(logger),
		control.WithMetrics(metrics.Default()...),
		control.WithScene(companion),
	), nil
}

func metricValues(ctrl *control.Controller) map[string]float64 {
	values := make(map[string]float64)
	for _, m := range ctrl.Metrics() {
		values[m.Name()] = m.Value()
	}
	return values
}

func saveSession(cfg *config.Config, ctrl *control.Controller, logger bslogger.Logger) {
	history := ctrl.History()
	if len(history) == 0 {
		logger.Info("nothing to record")
		return
	}

	st := storage.New(dataDir)
	if checkError(st.Init(), logger) {
		return
	}
	id, err := st.Save(cfg, history, metricValues(ctrl))
	if checkError(err, logger) {
		return
	}
	logger.Infof("saved session %s (%d events)", id, len(history))
}

func runApp(cmd *cobra.Command, args []string) error {
	logger := tuiLogger("Explorer")
	flags := cmd.Flags()

	launch := func(cfg *config.Config, sink control.Sink) (*control.Controller, error) {
		if flags.Changed("workers") {
			cfg.Workers = workers
		}
		if flags.Changed("min-span") {
			cfg.MinSpan = minSpan
		}
		if screen, ok := sink.(*viz.Screen); ok {
			screen.Smooth(smooth)
		}
		return newController(cfg, sink, tuiLogger("Controller"))
	}

	app := viz.NewApp(launch, viz.GetTheme(themeName), record)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}

	if record {
		if cfg, ctrl := final.(viz.App).Session(); ctrl != nil {
			saveSession(cfg, ctrl, newLogger("Explorer"))
		} else {
			logger.Warning("no explorer was started, nothing recorded")
		}
	}
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	variant, explicit, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, variant, explicit)
	if err != nil {
		return err
	}

	screen := viz.NewScreen(80, 24)
	screen.Smooth(smooth)
	ctrl, err := newController(cfg, screen, tuiLogger("Controller"))
	if err != nil {
		return err
	}

	m := viz.NewModel(ctrl, screen, viz.GetTheme(themeName)).Recording(record)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	if record {
		saveSession(cfg, ctrl, newLogger("Explorer"))
	}
	return nil
}
