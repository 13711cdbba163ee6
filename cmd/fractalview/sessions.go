package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fractalview/internal/automation"
	"github.com/san-kum/fractalview/internal/export"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/storage"
	"github.com/san-kum/fractalview/internal/viz"
)

func listSessions(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tEVENTS\tSIZE\tRENDER MS")
	for _, s := range sessions {
		renderMs := "-"
		if v, ok := s.Metrics["render_ms"]; ok {
			renderMs = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\n",
			s.ID,
			s.Variant,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Events,
			s.Config.Width, s.Config.Height,
			renderMs,
		)
	}
	return w.Flush()
}

func exportSession(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, parseID(args[0]))
}

func replaySession(cmd *cobra.Command, args []string) error {
	id := parseID(args[0])
	logger := newLogger("Replay")

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(id)
	if err != nil {
		return err
	}

	cfg := meta.Config
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	screen := viz.NewScreen(cols, rows)
	ctrl, err := newController(&cfg, screen, newLogger("Controller"))
	if err != nil {
		return err
	}
	if _, err := ctrl.Refresh(); err != nil {
		return err
	}

	logger.Infof("replaying %s: %d events", meta.ID, len(events))
	runner := automation.NewRunner(ctrl, logger)
	if _, err := runner.Replay(context.Background(), events); err != nil {
		return err
	}

	fmt.Println(screen.String())
	vp := ctrl.Viewport()
	fmt.Printf("%s  %s  zoom x%.3g\n", ctrl.Variant(), vp.String(), ctrl.Magnification())

	if trailPath != "" {
		trail := export.TrailToSVG(ctrl.History(), 400, 400, palette.Hex(ctrl.Palette().Colors[0]))
		if trail == "" {
			logger.Warning("fewer than two events, no trail written")
			return nil
		}
		if err := os.WriteFile(trailPath, []byte(trail), 0644); err != nil {
			return err
		}
		logger.Infof("wrote %s", trailPath)
	}
	return nil
}
