// Package viewport maps a W×H pixel grid onto a rectangular window of the
// complex plane and implements the two navigation operations: recenter on a
// pointer position and zoom by a scroll delta.
//
// Spans on each axis are updated independently, so the aspect ratio fixed at
// construction may drift. Repeated zoom-in with |delta| close to or above the
// zoom granularity drives the spans to zero or below; this is left unguarded
// unless MinSpan is set.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDimensions  = errors.New("viewport: width and height must be positive")
	ErrInvalidSpan        = errors.New("viewport: span must be positive")
	ErrInvalidGranularity = errors.New("viewport: zoom granularity must be positive")
)

const (
	DefaultRealSpan        = 4.5
	DefaultZoomGranularity = 10
)

// Viewport is mutated in place by navigation; renders take a value copy.
type Viewport struct {
	Width, Height          int
	RealOrigin, ImagOrigin float64
	RealSpan, ImagSpan     float64
	ZoomGranularity        int

	// MinSpan refuses zooms that would shrink either span below it. Zero
	// keeps the unguarded arithmetic.
	MinSpan float64
}

// New builds a viewport whose imaginary span follows the pixel aspect ratio.
func New(width, height int, realOrigin, imagOrigin, realSpan float64, zoomGranularity int) (*Viewport, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w, got %dx%d", ErrInvalidDimensions, width, height)
	}
	if realSpan <= 0 || math.IsNaN(realSpan) || math.IsInf(realSpan, 0) {
		return nil, fmt.Errorf("%w, got %f", ErrInvalidSpan, realSpan)
	}
	if zoomGranularity <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidGranularity, zoomGranularity)
	}
	return &Viewport{
		Width:           width,
		Height:          height,
		RealOrigin:      realOrigin,
		ImagOrigin:      imagOrigin,
		RealSpan:        realSpan,
		ImagSpan:        realSpan * float64(height) / float64(width),
		ZoomGranularity: zoomGranularity,
	}, nil
}

// Point maps pixel (x, y) to the complex plane. (0, 0) is the origin corner and
// (Width, Height) the opposite corner.
func (v *Viewport) Point(x, y float64) complex128 {
	re := v.RealOrigin + v.RealSpan*x/float64(v.Width)
	im := v.ImagOrigin + v.ImagSpan*y/float64(v.Height)
	return complex(re, im)
}

// Pixel is the inverse of Point.
func (v *Viewport) Pixel(c complex128) (x, y float64) {
	x = (real(c) - v.RealOrigin) / v.RealSpan * float64(v.Width)
	y = (imag(c) - v.ImagOrigin) / v.ImagSpan * float64(v.Height)
	return x, y
}

// Recenter shifts the window so the plane point under the pointer becomes
// the center of the next render. Zoom level is unchanged.
func (v *Viewport) Recenter(px, py float64) {
	w, h := float64(v.Width), float64(v.Height)
	v.RealOrigin += (px - w/2) / w * v.RealSpan
	v.ImagOrigin += (py - h/2) / h * v.ImagSpan
}

// Zoom shrinks (positive delta) or grows (negative delta) both spans by
// delta/ZoomGranularity, keeping the window center fixed. It reports whether
// the viewport changed: a zero delta is a no-op and, with MinSpan set, a zoom
// that would collapse a span below MinSpan is refused.
func (v *Viewport) Zoom(delta float64) bool {
	if delta == 0 || math.IsNaN(delta) {
		return false
	}
	g := float64(v.ZoomGranularity)
	rf := v.RealSpan * delta / g
	imf := v.ImagSpan * delta / g

	if v.MinSpan > 0 && (v.RealSpan-rf < v.MinSpan || v.ImagSpan-imf < v.MinSpan) {
		return false
	}

	v.RealSpan -= rf
	v.ImagSpan -= imf
	v.RealOrigin += rf / 2
	v.ImagOrigin += imf / 2
	return true
}

func (v *Viewport) Center() complex128 {
	return complex(v.RealOrigin+v.RealSpan/2, v.ImagOrigin+v.ImagSpan/2)
}

// Magnification is relative to a reference real span, usually the initial one.
func (v *Viewport) Magnification(referenceSpan float64) float64 {
	if v.RealSpan == 0 {
		return math.Inf(1)
	}
	return referenceSpan / v.RealSpan
}

// Degenerate reports spans that no longer describe a proper window.
func (v *Viewport) Degenerate() bool {
	return v.RealSpan <= 0 || v.ImagSpan <= 0 ||
		math.IsNaN(v.RealSpan) || math.IsNaN(v.ImagSpan)
}

// Snapshot returns a copy safe to hand to a renderer while v keeps changing.
func (v *Viewport) Snapshot() Viewport {
	return *v
}

func (v *Viewport) String() string {
	c := v.Center()
	return fmt.Sprintf("%dx%d center=(%.6g, %.6g) span=(%.6g, %.6g)",
		v.Width, v.Height, real(c), imag(c), v.RealSpan, v.ImagSpan)
}
