// Package escape provides the escape-time iteration kernel shared by the
// Mandelbrot and Julia explorers.
//
// A single recurrence z = z*z + c drives both fractals; only the choice of c
// differs:
//
//   - [Mandelbrot]: c is the sampled point itself
//   - [Julia]: c is a fixed constant shared by every pixel
//
// # Example
//
//	p := escape.NewJulia(complex(-0.7, 0.27015), 100)
//	n := escape.Iterate(complex(0, 0), p)
//	if n == p.MaxIterations {
//	    // bounded orbit
//	}
//
// Arithmetic is plain float64; deep zoom beyond double precision is not
// supported.
package escape
