// Package render produces full frames from a viewport, kernel parameters and
// a palette.
//
//   - [Renderer]: runs the per-pixel loop, serially or split across rows
//   - [Frame]: owned output buffer holding iteration counts and RGBA pixels
//
// # Example
//
//	vp, _ := viewport.New(320, 180, -3, -2, 4.5, 10)
//	r := render.New(1)
//	frame := r.Render(vp.Snapshot(), escape.NewMandelbrot(100), palette.Mandelbrot)
//
// # Thread Safety
//
// Render reads only its arguments and writes only the frame it returns, so a
// Renderer may be shared. With Workers > 1 rows are split into disjoint
// chunks over a read-only viewport copy.
package render
