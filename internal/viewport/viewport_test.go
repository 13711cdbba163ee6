package viewport

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func newTestViewport(t *testing.T) *Viewport {
	t.Helper()
	v, err := New(160, 90, -3.0, -2.0, DefaultRealSpan, DefaultZoomGranularity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return v
}

func TestNewDerivesImagSpan(t *testing.T) {
	v := newTestViewport(t)
	want := 4.5 * 90.0 / 160.0
	if math.Abs(v.ImagSpan-want) > eps {
		t.Errorf("expected imag span %f, got %f", want, v.ImagSpan)
	}
	if v.RealSpan <= 0 || v.ImagSpan <= 0 {
		t.Error("spans should be positive")
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		span    float64
		gran    int
		wantErr error
	}{
		{"zero width", 0, 10, 4.5, 10, ErrInvalidDimensions},
		{"negative height", 10, -1, 4.5, 10, ErrInvalidDimensions},
		{"zero span", 10, 10, 0, 10, ErrInvalidSpan},
		{"nan span", 10, 10, math.NaN(), 10, ErrInvalidSpan},
		{"zero granularity", 10, 10, 4.5, 0, ErrInvalidGranularity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h, 0, 0, tt.span, tt.gran)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPointCorners(t *testing.T) {
	v := newTestViewport(t)

	p := v.Point(0, 0)
	if real(p) != v.RealOrigin || imag(p) != v.ImagOrigin {
		t.Errorf("Point(0,0) = %v, want (%f, %f)", p, v.RealOrigin, v.ImagOrigin)
	}

	q := v.Point(float64(v.Width), float64(v.Height))
	if math.Abs(real(q)-(v.RealOrigin+v.RealSpan)) > eps || math.Abs(imag(q)-(v.ImagOrigin+v.ImagSpan)) > eps {
		t.Errorf("Point(W,H) = %v", q)
	}
}

func TestPixelInvertsPoint(t *testing.T) {
	v := newTestViewport(t)
	v.Zoom(3)
	v.Recenter(20, 70)

	for _, px := range [][2]float64{{0, 0}, {13, 7}, {80, 45}, {159, 89}} {
		x, y := v.Pixel(v.Point(px[0], px[1]))
		if math.Abs(x-px[0]) > 1e-6 || math.Abs(y-px[1]) > 1e-6 {
			t.Errorf("Pixel(Point(%v)) = (%f, %f)", px, x, y)
		}
	}
}

func TestRecenterAtCenterIsNoop(t *testing.T) {
	v := newTestViewport(t)
	before := v.Snapshot()

	v.Recenter(float64(v.Width)/2, float64(v.Height)/2)

	if *v != before {
		t.Errorf("recenter at center changed viewport: %+v -> %+v", before, *v)
	}
}

func TestRecenterMovesPointToCenter(t *testing.T) {
	v := newTestViewport(t)
	target := v.Point(40, 60)

	v.Recenter(40, 60)

	c := v.Center()
	if math.Abs(real(c)-real(target)) > eps || math.Abs(imag(c)-imag(target)) > eps {
		t.Errorf("center %v, want %v", c, target)
	}
	if v.RealSpan != DefaultRealSpan {
		t.Error("recenter should not change zoom")
	}
}

func TestZoomInverse(t *testing.T) {
	// Zooming in then out by the same delta multiplies the span by
	// (1 - d/g)(1 + d/g) = 1 - (d/g)^2, so exact inversion only holds to
	// first order. Small deltas keep the residual within tolerance.
	for _, d := range []float64{0.001, 0.0005, -0.001} {
		v := newTestViewport(t)
		rs, is := v.RealSpan, v.ImagSpan

		v.Zoom(d)
		v.Zoom(-d)

		tol := 1e-5
		if math.Abs(v.RealSpan-rs) > tol || math.Abs(v.ImagSpan-is) > tol {
			t.Errorf("delta %f: spans (%f, %f), want (%f, %f)", d, v.RealSpan, v.ImagSpan, rs, is)
		}
	}
}

func TestZoomKeepsCenter(t *testing.T) {
	v := newTestViewport(t)
	c := v.Center()

	if !v.Zoom(1) {
		t.Fatal("zoom reported no change")
	}

	if v.RealSpan >= DefaultRealSpan {
		t.Error("positive delta should shrink span")
	}
	got := v.Center()
	if math.Abs(real(got)-real(c)) > eps || math.Abs(imag(got)-imag(c)) > eps {
		t.Errorf("center moved from %v to %v", c, got)
	}

	v.Zoom(-2)
	if v.RealSpan <= DefaultRealSpan*0.9 {
		t.Error("negative delta should grow span")
	}
}

func TestZoomZeroIsNoop(t *testing.T) {
	v := newTestViewport(t)
	before := v.Snapshot()
	if v.Zoom(0) {
		t.Error("zero delta should report no change")
	}
	if *v != before {
		t.Error("zero delta changed viewport")
	}
}

func TestZoomUnguardedCanCollapse(t *testing.T) {
	v := newTestViewport(t)
	v.Zoom(float64(v.ZoomGranularity))

	if v.RealSpan != 0 {
		t.Errorf("expected span collapsed to 0, got %f", v.RealSpan)
	}
	if !v.Degenerate() {
		t.Error("expected degenerate viewport")
	}

	v.Zoom(15)
	if v.RealSpan != 0 {
		t.Errorf("zero span should stay zero, got %f", v.RealSpan)
	}
}

func TestZoomMinSpanRefuses(t *testing.T) {
	v := newTestViewport(t)
	v.MinSpan = 1e-3
	before := v.Snapshot()

	if v.Zoom(float64(v.ZoomGranularity)) {
		t.Error("expected refused zoom")
	}
	if *v != before {
		t.Error("refused zoom changed viewport")
	}

	if !v.Zoom(5) {
		t.Error("moderate zoom should be accepted")
	}
	if v.Degenerate() {
		t.Error("clamped viewport became degenerate")
	}
}

func TestMagnification(t *testing.T) {
	v := newTestViewport(t)
	if m := v.Magnification(DefaultRealSpan); m != 1 {
		t.Errorf("expected 1x, got %f", m)
	}
	v.Zoom(5)
	if m := v.Magnification(DefaultRealSpan); math.Abs(m-2) > eps {
		t.Errorf("expected 2x, got %f", m)
	}
}
