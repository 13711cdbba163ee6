package control

import (
	"fmt"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/metrics"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/render"
	"github.com/san-kum/fractalview/internal/viewport"
)

// Record is one applied event and the viewport it produced.
type Record struct {
	Seq      int
	Event    Event
	Viewport viewport.Viewport
	Elapsed  time.Duration
}

type Controller struct {
	vp       *viewport.Viewport
	params   escape.Params
	pal      palette.Palette
	initial  viewport.Viewport
	scenes   map[escape.Variant]Scene
	renderer *render.Renderer
	sink     Sink
	metrics  []metrics.Metric
	history  []Record
	last     *render.Frame
	logger   bslogger.Logger
}

type Option func(*Controller)

func WithLogger(logger bslogger.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithMetrics(m ...metrics.Metric) Option {
	return func(c *Controller) { c.metrics = append(c.metrics, m...) }
}

// WithScene registers an extra scene reachable through SwitchVariant.
func WithScene(s Scene) Option {
	return func(c *Controller) { c.scenes[s.Variant()] = s }
}

func New(scene Scene, renderer *render.Renderer, sink Sink, opts ...Option) *Controller {
	if renderer == nil {
		renderer = render.New(1)
	}
	if sink == nil {
		sink = Discard
	}

	c := &Controller{
		scenes:   make(map[escape.Variant]Scene),
		renderer: renderer,
		sink:     sink,
		logger:   bslogger.NewLogger("Controller", bslogger.Normal, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scenes[scene.Variant()] = scene
	c.load(scene)
	return c
}

func (c *Controller) load(s Scene) {
	vp := s.Viewport
	c.vp = &vp
	c.initial = s.Viewport
	c.params = s.Params
	c.pal = s.Palette
}

// Refresh renders the current state without applying any event.
func (c *Controller) Refresh() (*render.Frame, error) {
	c.logger.Infof("rendering %s %dx%d", c.params.Variant, c.vp.Width, c.vp.Height)
	return c.render()
}

// Dispatch applies ev and renders once. Events that leave the viewport
// untouched return a nil frame and no error.
func (c *Controller) Dispatch(ev Event) (*render.Frame, error) {
	switch e := ev.(type) {
	case PointerPressed:
		c.vp.Recenter(e.X, e.Y)
	case ScrollWheel:
		if e.Delta == 0 {
			return nil, nil
		}
		if !c.vp.Zoom(e.Delta) {
			c.logger.Warningf("zoom %+g refused at span %g (min %g)", e.Delta, c.vp.RealSpan, c.vp.MinSpan)
			return nil, nil
		}
	case ResetView:
		vp := c.initial
		c.vp = &vp
	case SwitchVariant:
		s, ok := c.scenes[e.Variant]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScene, e.Variant)
		}
		c.load(s)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	c.logger.Debugf("%v -> %s", ev, c.vp)
	if c.vp.Degenerate() {
		c.logger.Warningf("viewport span collapsed to %g x %g", c.vp.RealSpan, c.vp.ImagSpan)
	}

	start := time.Now()
	frame, err := c.render()
	c.history = append(c.history, Record{
		Seq:      len(c.history) + 1,
		Event:    ev,
		Viewport: c.vp.Snapshot(),
		Elapsed:  time.Since(start),
	})
	return frame, err
}

func (c *Controller) render() (*render.Frame, error) {
	start := time.Now()
	frame := c.renderer.Render(c.vp.Snapshot(), c.params, c.pal)
	elapsed := time.Since(start)

	for _, m := range c.metrics {
		m.Observe(frame, elapsed)
	}
	c.last = frame

	if err := c.sink.Display(frame); err != nil {
		return frame, fmt.Errorf("%w: %v", ErrSink, err)
	}
	return frame, nil
}

// Reset restores the initial viewport of the current scene and renders.
func (c *Controller) Reset() (*render.Frame, error) {
	return c.Dispatch(ResetView{})
}

// Toggle switches to the next registered scene in variant order.
func (c *Controller) Toggle() (*render.Frame, error) {
	next := c.params.Variant
	for i := 0; i < len(escape.Variants()); i++ {
		next = (next + 1) % escape.Variant(len(escape.Variants()))
		if _, ok := c.scenes[next]; ok {
			break
		}
	}
	if next == c.params.Variant {
		return nil, nil
	}
	return c.Dispatch(SwitchVariant{Variant: next})
}

func (c *Controller) Viewport() viewport.Viewport { return c.vp.Snapshot() }

func (c *Controller) Params() escape.Params { return c.params }

func (c *Controller) Palette() palette.Palette { return c.pal }

func (c *Controller) Variant() escape.Variant { return c.params.Variant }

func (c *Controller) Frame() *render.Frame { return c.last }

func (c *Controller) Metrics() []metrics.Metric { return c.metrics }

// Magnification is the zoom factor relative to the scene's initial span.
func (c *Controller) Magnification() float64 {
	return c.vp.Magnification(c.initial.RealSpan)
}

func (c *Controller) History() []Record {
	out := make([]Record, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Controller) Events() []Event {
	out := make([]Event, len(c.history))
	for i, r := range c.history {
		out[i] = r.Event
	}
	return out
}
