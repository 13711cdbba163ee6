// Package metrics observes rendered frames.
//
// Every metric sees each frame the controller produces, together with the
// wall time the render took, and reduces the stream to one number.
package metrics

import (
	"time"

	"github.com/san-kum/fractalview/internal/render"
)

type Metric interface {
	Name() string
	Observe(frame *render.Frame, elapsed time.Duration)
	Value() float64
	Reset()
}

// Default returns the metrics attached to an interactive session.
func Default() []Metric {
	return []Metric{
		NewRenderTime(),
		NewThroughput(),
		NewInsideRatio(),
	}
}
