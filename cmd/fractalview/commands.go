package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/fractalview/internal/analysis"
	"github.com/san-kum/fractalview/internal/automation"
	"github.com/san-kum/fractalview/internal/config"
	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/render"
	"github.com/san-kum/fractalview/internal/viz"
)

func renderFrame(cmd *cobra.Command, args []string) error {
	variant, explicit, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, variant, explicit)
	if err != nil {
		return err
	}

	logger := newLogger("Render")
	screen := viz.NewScreen(cols, rows)
	screen.Smooth(smooth)
	ctrl, err := newController(cfg, screen, logger)
	if err != nil {
		return err
	}

	frame, err := ctrl.Refresh()
	if err != nil {
		return err
	}
	fmt.Println(screen.String())
	vp := ctrl.Viewport()
	fmt.Printf("%s  %s  max=%d\n", cfg.Variant, vp.String(), frame.MaxIterations)
	return nil
}

func inspectPoint(cmd *cobra.Command, args []string) error {
	variant, explicit := escape.Mandelbrot.String(), false
	if len(args) == 3 {
		v, err := escape.ParseVariant(args[0])
		if err != nil {
			return err
		}
		variant, explicit = v.String(), true
		args = args[1:]
	}

	re, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("real part: %w", err)
	}
	im, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("imaginary part: %w", err)
	}

	cfg, err := buildConfig(cmd, variant, explicit)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	pal, err := cfg.PaletteValue()
	if err != nil {
		return err
	}
	vp, err := cfg.Viewport()
	if err != nil {
		return err
	}

	point := complex(re, im)
	n := escape.Iterate(point, p)
	c := pal.Colorize(n, p.MaxIterations)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "point\t(%g, %g)\n", re, im)
	fmt.Fprintf(w, "variant\t%s\n", p.Variant)
	if p.Variant == escape.Julia {
		fmt.Fprintf(w, "c\t(%g, %g)\n", real(p.C), imag(p.C))
	}
	fmt.Fprintf(w, "iterations\t%d / %d\n", n, p.MaxIterations)
	if n == p.MaxIterations {
		fmt.Fprintf(w, "status\tinside\n")
	} else {
		fmt.Fprintf(w, "status\tescaped\n")
		fmt.Fprintf(w, "band\t%d\n", n%palette.Size)
	}
	fmt.Fprintf(w, "color\t%s\n", palette.Hex(c))
	x, y := vp.Pixel(point)
	fmt.Fprintf(w, "pixel\t(%.1f, %.1f) in %dx%d\n", x, y, vp.Width, vp.Height)
	return w.Flush()
}

func benchRender(cmd *cobra.Command, args []string) error {
	if frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", frames)
	}
	variant, explicit, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, variant, explicit)
	if err != nil {
		return err
	}
	scene, err := cfg.Scene()
	if err != nil {
		return err
	}

	parallel := cfg.Workers
	if parallel <= 1 {
		parallel = runtime.NumCPU()
	}
	renderers := []*render.Renderer{render.New(1), render.New(parallel)}

	p := message.NewPrinter(language.English)
	p.Printf("benchmarking %s at %dx%d, max %d iterations\n\n",
		cfg.Variant, cfg.Width, cfg.Height, cfg.MaxIterations)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RENDERER\tWORKERS\tFRAMES\tTIME/FRAME\tPIXELS/SEC")
	for _, r := range renderers {
		start := time.Now()
		for i := 0; i < frames; i++ {
			r.Render(scene.Viewport, scene.Params, scene.Palette)
		}
		elapsed := time.Since(start)
		perFrame := elapsed / time.Duration(frames)
		pixels := float64(cfg.Width*cfg.Height*frames) / elapsed.Seconds()
		p.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", r.Name(), r.Workers, frames, perFrame, pixels)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	events := automation.RandomEvents(automation.RandomWalkConfig{
		Steps:    frames,
		MaxDelta: 2,
		Seed:     seed,
	}, cfg.Width, cfg.Height)

	// Keep the walk from collapsing the view.
	walkCfg := cfg.Clone()
	if walkCfg.MinSpan == 0 {
		walkCfg.MinSpan = 1e-12
	}
	walkCfg.Workers = parallel
	ctrl, err := newController(walkCfg, control.Discard, newLogger("Bench"))
	if err != nil {
		return err
	}
	runner := automation.NewRunner(ctrl, newLogger("Walk"))

	start := time.Now()
	n, err := runner.Replay(context.Background(), events)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	vp := ctrl.Viewport()
	p.Printf("\nrandom walk: %d events in %v, %d frames rendered\n", n, elapsed, len(ctrl.History()))
	p.Printf("final view: %s (zoom x%.3g)\n", vp.String(), ctrl.Magnification())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	variants := []string{escape.Mandelbrot.String(), escape.Julia.String()}
	if len(args) > 0 {
		v, err := escape.ParseVariant(args[0])
		if err != nil {
			return err
		}
		variants = []string{v.String()}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tPRESET\tCENTER\tSPAN\tMAX ITER\tJULIA C")
	for _, variant := range variants {
		for _, name := range config.ListPresets(variant) {
			cfg, err := config.GetPreset(variant, name)
			if err != nil {
				return err
			}
			vp, err := cfg.Viewport()
			if err != nil {
				return err
			}
			c := vp.Center()
			juliaC := "-"
			if variant == escape.Julia.String() {
				juliaC = fmt.Sprintf("%g%+gi", cfg.Julia.Real, cfg.Julia.Imag)
			}
			fmt.Fprintf(w, "%s\t%s\t(%.6g, %.6g)\t%.4g\t%d\t%s\n",
				variant, name, real(c), imag(c), vp.RealSpan, cfg.MaxIterations, juliaC)
		}
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger := newLogger("Scenario")

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	cfg, err := scenario.Config()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	ctrl, err := newController(cfg, control.Discard, newLogger("Controller"))
	if err != nil {
		return err
	}
	if _, err := ctrl.Refresh(); err != nil {
		return err
	}
	logger.Infof("running %q: %d steps", scenario.Name, len(scenario.Steps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := automation.NewRunner(ctrl, logger)
	results, runErr := runner.RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tEVENT\tRENDERED\tCENTER\tREAL SPAN\tIMAG SPAN")
	for _, res := range results {
		c := res.Viewport.Center()
		fmt.Fprintf(w, "%d\t%v\t%v\t(%.6g, %.6g)\t%.4g\t%.4g\n",
			res.Step, res.Event, res.Rendered, real(c), imag(c),
			res.Viewport.RealSpan, res.Viewport.ImagSpan)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if record {
		saveSession(cfg, ctrl, logger)
	}
	return runErr
}

func frameStats(cmd *cobra.Command, args []string) error {
	variant, explicit, err := variantArg(args)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, variant, explicit)
	if err != nil {
		return err
	}
	scene, err := cfg.Scene()
	if err != nil {
		return err
	}

	r := render.New(cfg.Workers)
	frame := r.Render(scene.Viewport, scene.Params, scene.Palette)
	s := analysis.Summarize(frame)

	p := message.NewPrinter(language.English)
	p.Printf("%s %s\n\n", cfg.Variant, scene.Viewport.String())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	p.Fprintf(w, "pixels\t%d\n", s.Pixels)
	p.Fprintf(w, "inside\t%d (%.1f%%)\n", s.Inside, s.InsideRatio*100)
	p.Fprintf(w, "escaped\t%d\n", s.Escaped)
	p.Fprintf(w, "escape iterations\tmin %d, max %d, mean %.2f\n", s.MinEscape, s.MaxEscape, s.MeanEscape)
	p.Fprintf(w, "dominant band\t%d (%s)\n", s.DominantBand(), palette.Hex(scene.Palette.Colors[s.DominantBand()]))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println(viz.BandStrip(scene.Palette, s.Bands))
	fmt.Println()

	if hist := analysis.Histogram(frame, bins); len(hist) > 0 && s.Escaped > 0 {
		graph := asciigraph.Plot(hist,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("escape iteration histogram"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if sweepSteps <= 0 {
		return nil
	}
	points := analysis.ZoomSweep(r, scene.Viewport, scene.Params, scene.Viewport.Center(), sweepDelta, sweepSteps)

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tZOOM\tINSIDE\tMEAN ESCAPE\tMAX ESCAPE")
	ratios := make([]float64, 0, len(points))
	for _, pt := range points {
		p.Fprintf(w, "%d\tx%.3g\t%.1f%%\t%.2f\t%d\n",
			pt.Step, pt.Magnification, pt.Stats.InsideRatio*100, pt.Stats.MeanEscape, pt.Stats.MaxEscape)
		ratios = append(ratios, pt.Stats.InsideRatio)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(points) < sweepSteps+1 {
		fmt.Printf("sweep stopped after %d steps\n", len(points)-1)
	}
	if len(ratios) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ratios,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("inside ratio while zooming"),
		))
	}
	return nil
}

// parseID trims a session directory path down to its id.
func parseID(arg string) string {
	arg = strings.TrimRight(arg, "/")
	if i := strings.LastIndex(arg, "/"); i >= 0 {
		return arg[i+1:]
	}
	return arg
}
