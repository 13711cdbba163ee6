package metrics

import (
	"time"

	"github.com/san-kum/fractalview/internal/render"
)

// InsideRatio reports the share of pixels in the most recent frame whose
// orbit never escaped.
type InsideRatio struct {
	name  string
	ratio float64
}

func NewInsideRatio() *InsideRatio {
	return &InsideRatio{name: "inside_ratio"}
}

func (i *InsideRatio) Name() string { return i.name }

func (i *InsideRatio) Observe(frame *render.Frame, elapsed time.Duration) {
	if frame == nil || frame.Pixels() == 0 {
		i.ratio = 0
		return
	}
	i.ratio = float64(frame.Inside()) / float64(frame.Pixels())
}

func (i *InsideRatio) Value() float64 { return i.ratio }

func (i *InsideRatio) Reset() { i.ratio = 0 }
