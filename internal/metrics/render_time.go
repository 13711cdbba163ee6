package metrics

import (
	"time"

	"github.com/san-kum/fractalview/internal/render"
)

// RenderTime tracks mean milliseconds per frame and keeps a bounded history
// for plotting.
type RenderTime struct {
	name    string
	total   time.Duration
	last    time.Duration
	samples int
	history []float64
	limit   int
}

const defaultHistory = 60

func NewRenderTime() *RenderTime {
	return &RenderTime{
		name:  "render_ms",
		limit: defaultHistory,
	}
}

func (r *RenderTime) Name() string { return r.name }

func (r *RenderTime) Observe(frame *render.Frame, elapsed time.Duration) {
	r.total += elapsed
	r.last = elapsed
	r.samples++

	r.history = append(r.history, millis(elapsed))
	if len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
}

func (r *RenderTime) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return millis(r.total) / float64(r.samples)
}

func (r *RenderTime) Last() time.Duration { return r.last }

// History returns the most recent per-frame times in milliseconds.
func (r *RenderTime) History() []float64 {
	out := make([]float64, len(r.history))
	copy(out, r.history)
	return out
}

func (r *RenderTime) Reset() {
	r.total = 0
	r.last = 0
	r.samples = 0
	r.history = r.history[:0]
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
