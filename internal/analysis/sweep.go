package analysis

import (
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/render"
	"github.com/san-kum/fractalview/internal/viewport"
)

type SweepPoint struct {
	Step          int
	Magnification float64
	Center        complex128
	Stats         Stats
}

// ZoomSweep centers the viewport on target, then zooms in by delta for the
// given number of steps, rendering and summarizing each step. The first
// point is the unzoomed view. Stops early if the viewport degenerates or a
// zoom is refused.
func ZoomSweep(
	r *render.Renderer,
	start viewport.Viewport,
	p escape.Params,
	target complex128,
	delta float64,
	steps int,
) []SweepPoint {
	vp := start
	px, py := vp.Pixel(target)
	vp.Recenter(px, py)

	pal := palette.ForVariant(p.Variant)
	points := make([]SweepPoint, 0, steps+1)

	for i := 0; i <= steps; i++ {
		if i > 0 && !vp.Zoom(delta) {
			break
		}
		if vp.Degenerate() {
			break
		}
		frame := r.Render(vp.Snapshot(), p, pal)
		points = append(points, SweepPoint{
			Step:          i,
			Magnification: vp.Magnification(start.RealSpan),
			Center:        vp.Center(),
			Stats:         Summarize(frame),
		})
	}
	return points
}
