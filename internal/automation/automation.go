package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractalview/internal/config"
	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/viewport"
)

var ErrInvalidStep = errors.New("automation: invalid step")

// Scenario is a scripted exploration: a starting view plus input steps.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Variant     string         `yaml:"variant"`
	Preset      string         `yaml:"preset"`
	Width       int            `yaml:"width"`
	Height      int            `yaml:"height"`
	MinSpan     float64        `yaml:"min_span"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep holds exactly one action. Repeat applies it several times.
type ScenarioStep struct {
	Click   []float64       `yaml:"click"`
	Focus   *config.Complex `yaml:"focus"`
	Scroll  *float64        `yaml:"scroll"`
	Reset   bool            `yaml:"reset"`
	Variant string          `yaml:"variant"`
	Repeat  int             `yaml:"repeat"`
}

type StepResult struct {
	Step     int
	Event    control.Event
	Rendered bool
	Viewport viewport.Viewport
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the scenario's starting view.
func (s *Scenario) Config() (*config.Config, error) {
	variant := escape.Mandelbrot.String()
	if s.Variant != "" {
		v, err := escape.ParseVariant(s.Variant)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownVariant, s.Variant)
		}
		variant = v.String()
	}

	cfg := config.DefaultConfig(variant)
	if s.Preset != "" {
		preset, err := config.GetPreset(variant, s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = preset
	}
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	cfg.MinSpan = s.MinSpan

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Event converts a step into a controller event. Focus is resolved against
// the viewport current at the time the step runs.
func (st ScenarioStep) Event(vp viewport.Viewport) (control.Event, error) {
	actions := 0
	var ev control.Event

	if len(st.Click) > 0 {
		if len(st.Click) != 2 {
			return nil, fmt.Errorf("%w: click needs [x, y], got %v", ErrInvalidStep, st.Click)
		}
		ev = control.PointerPressed{X: st.Click[0], Y: st.Click[1]}
		actions++
	}
	if st.Focus != nil {
		x, y := vp.Pixel(st.Focus.Value())
		ev = control.PointerPressed{X: x, Y: y}
		actions++
	}
	if st.Scroll != nil {
		ev = control.ScrollWheel{Delta: *st.Scroll}
		actions++
	}
	if st.Reset {
		ev = control.ResetView{}
		actions++
	}
	if st.Variant != "" {
		v, err := escape.ParseVariant(st.Variant)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		ev = control.SwitchVariant{Variant: v}
		actions++
	}

	if actions != 1 {
		return nil, fmt.Errorf("%w: expected one action, got %d", ErrInvalidStep, actions)
	}
	return ev, nil
}

type Runner struct {
	ctrl   *control.Controller
	logger bslogger.Logger
}

func NewRunner(ctrl *control.Controller, logger bslogger.Logger) *Runner {
	return &Runner{ctrl: ctrl, logger: logger}
}

// RunScenario dispatches every step in order, one render per applied event.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		repeat := step.Repeat
		if repeat <= 0 {
			repeat = 1
		}

		for n := 0; n < repeat; n++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			ev, err := step.Event(r.ctrl.Viewport())
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}

			r.logger.Infof("step %d/%d: %v", i+1, len(scenario.Steps), ev)
			frame, err := r.ctrl.Dispatch(ev)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}

			results = append(results, StepResult{
				Step:     i + 1,
				Event:    ev,
				Rendered: frame != nil,
				Viewport: r.ctrl.Viewport(),
			})
		}
	}

	return results, nil
}

// Replay dispatches recorded events in order.
func (r *Runner) Replay(ctx context.Context, events []control.Event) (int, error) {
	q := control.NewQueue(r.ctrl)
	q.Push(events...)
	n, err := q.Drain(ctx)
	r.logger.Infof("replayed %d/%d events", n, len(events))
	return n, err
}

// RandomWalkConfig drives an unscripted exploration used for benchmarking.
type RandomWalkConfig struct {
	Steps    int
	MaxDelta float64
	Seed     int64
}

// RandomEvents generates a reproducible mix of clicks and scrolls inside a
// width x height frame. Zero scrolls are never produced and a non-positive
// step count yields no events.
func RandomEvents(cfg RandomWalkConfig, width, height int) []control.Event {
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	maxDelta := cfg.MaxDelta
	if maxDelta <= 0 {
		maxDelta = 1
	}

	if cfg.Steps <= 0 {
		return nil
	}
	events := make([]control.Event, 0, cfg.Steps)
	for i := 0; i < cfg.Steps; i++ {
		if rng.Intn(2) == 0 {
			events = append(events, control.PointerPressed{
				X: float64(rng.Intn(width)),
				Y: float64(rng.Intn(height)),
			})
			continue
		}
		delta := (rng.Float64()*2 - 1) * maxDelta
		if delta == 0 {
			delta = maxDelta
		}
		events = append(events, control.ScrollWheel{Delta: delta})
	}
	return events
}
