package render

import (
	"runtime"

	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/viewport"
)

// minRowsPerWorker keeps tiny frames on the calling goroutine.
const minRowsPerWorker = 8

type Renderer struct {
	Workers int
}

// New returns a renderer. workers <= 1 renders on the calling goroutine;
// AutoWorkers picks one worker per CPU.
func New(workers int) *Renderer {
	return &Renderer{Workers: workers}
}

const AutoWorkers = -1

func (r *Renderer) workers() int {
	if r.Workers == AutoWorkers {
		return runtime.NumCPU()
	}
	return r.Workers
}

func (r *Renderer) Name() string {
	if r.workers() > 1 {
		return "parallel"
	}
	return "serial"
}

// Render computes every pixel of vp. The viewport is taken by value so later
// navigation cannot affect a frame in progress.
func (r *Renderer) Render(vp viewport.Viewport, p escape.Params, pal palette.Palette) *Frame {
	frame := NewFrame(vp.Width, vp.Height, p.MaxIterations)

	ParallelFor(vp.Height, r.workers(), minRowsPerWorker, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < vp.Width; x++ {
				n := escape.Iterate(vp.Point(float64(x), float64(y)), p)
				frame.set(x, y, n, pal.Colorize(n, p.MaxIterations))
			}
		}
	})

	return frame
}
