package metrics

import (
	"time"

	"github.com/san-kum/fractalview/internal/render"
)

// Throughput is pixels rendered per second over all observed frames.
type Throughput struct {
	name    string
	pixels  int
	elapsed time.Duration
}

func NewThroughput() *Throughput {
	return &Throughput{name: "pixels_per_sec"}
}

func (t *Throughput) Name() string { return t.name }

func (t *Throughput) Observe(frame *render.Frame, elapsed time.Duration) {
	if frame == nil {
		return
	}
	t.pixels += frame.Pixels()
	t.elapsed += elapsed
}

func (t *Throughput) Value() float64 {
	if t.elapsed <= 0 {
		return 0
	}
	return float64(t.pixels) / t.elapsed.Seconds()
}

func (t *Throughput) Reset() {
	t.pixels = 0
	t.elapsed = 0
}
