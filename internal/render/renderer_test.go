package render

import (
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/viewport"
)

func testViewport(t testing.TB, w, h int) *viewport.Viewport {
	t.Helper()
	vp, err := viewport.New(w, h, -3.0, -2.0, viewport.DefaultRealSpan, viewport.DefaultZoomGranularity)
	if err != nil {
		t.Fatalf("viewport: %v", err)
	}
	return vp
}

func TestRenderDimensions(t *testing.T) {
	vp := testViewport(t, 64, 36)
	r := New(1)
	p := escape.NewMandelbrot(50)

	for i := 0; i < 4; i++ {
		vp.Zoom(2)
		vp.Recenter(10, 30)
		frame := r.Render(vp.Snapshot(), p, palette.Mandelbrot)
		if frame.Width != vp.Width || frame.Height != vp.Height {
			t.Fatalf("frame %dx%d, viewport %dx%d", frame.Width, frame.Height, vp.Width, vp.Height)
		}
		b := frame.Image.Bounds()
		if b.Dx() != vp.Width || b.Dy() != vp.Height {
			t.Fatalf("image bounds %v", b)
		}
		if len(frame.Counts) != vp.Width*vp.Height {
			t.Fatalf("counts len %d", len(frame.Counts))
		}
	}
}

func TestRenderMatchesKernel(t *testing.T) {
	vp := testViewport(t, 40, 30)
	p := escape.NewJulia(escape.DefaultJuliaConstant, 80)
	frame := New(1).Render(vp.Snapshot(), p, palette.Julia)

	for _, px := range [][2]int{{0, 0}, {5, 9}, {20, 15}, {39, 29}} {
		x, y := px[0], px[1]
		want := escape.Iterate(vp.Point(float64(x), float64(y)), p)
		if got := frame.At(x, y); got != want {
			t.Errorf("At(%d,%d) = %d, want %d", x, y, got, want)
		}
		if got := frame.ColorAt(x, y); got != palette.Julia.Colorize(want, p.MaxIterations) {
			t.Errorf("ColorAt(%d,%d) = %v", x, y, got)
		}
	}
}

func TestRenderInsideIsBlack(t *testing.T) {
	// A tiny window around the origin lies entirely inside the main cardioid.
	vp, err := viewport.New(8, 8, -0.05, -0.05, 0.1, 10)
	if err != nil {
		t.Fatal(err)
	}
	p := escape.NewMandelbrot(30)
	frame := New(1).Render(vp.Snapshot(), p, palette.Mandelbrot)

	if frame.Inside() != frame.Pixels() {
		t.Errorf("expected all %d pixels inside, got %d", frame.Pixels(), frame.Inside())
	}
	if c := frame.ColorAt(3, 3); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("inside color %v", c)
	}
}

func TestRenderSerialParallelEqual(t *testing.T) {
	vp := testViewport(t, 97, 61)
	vp.Zoom(3)
	p := escape.NewMandelbrot(100)

	serial := New(1).Render(vp.Snapshot(), p, palette.Mandelbrot)
	parallel := New(7).Render(vp.Snapshot(), p, palette.Mandelbrot)

	for i := range serial.Counts {
		if serial.Counts[i] != parallel.Counts[i] {
			t.Fatalf("count mismatch at %d: %d vs %d", i, serial.Counts[i], parallel.Counts[i])
		}
	}
	for i := range serial.Image.Pix {
		if serial.Image.Pix[i] != parallel.Image.Pix[i] {
			t.Fatalf("pixel mismatch at byte %d", i)
		}
	}
}

func TestRenderSnapshotIsolation(t *testing.T) {
	vp := testViewport(t, 16, 9)
	snap := vp.Snapshot()
	vp.Zoom(5)

	a := New(1).Render(snap, escape.NewMandelbrot(40), palette.Mandelbrot)
	b := New(1).Render(vp.Snapshot(), escape.NewMandelbrot(40), palette.Mandelbrot)

	same := true
	for i := range a.Counts {
		if a.Counts[i] != b.Counts[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("expected frames of different viewports to differ")
	}
}

func TestFrameAtOutOfBounds(t *testing.T) {
	f := NewFrame(4, 3, 10)
	for _, px := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if f.At(px[0], px[1]) != -1 {
			t.Errorf("At(%v) should be -1", px)
		}
		if f.ColorAt(px[0], px[1]) != (color.RGBA{}) {
			t.Errorf("ColorAt(%v) should be transparent", px)
		}
	}
}

func TestParallelForCoversRange(t *testing.T) {
	tests := []struct {
		n, workers, minChunk int
	}{
		{0, 4, 1},
		{1, 4, 1},
		{10, 1, 1},
		{10, 3, 1},
		{100, 8, 8},
		{7, 16, 2},
	}
	for _, tt := range tests {
		seen := make([]int32, tt.n)
		ParallelFor(tt.n, tt.workers, tt.minChunk, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Errorf("n=%d workers=%d: index %d visited %d times", tt.n, tt.workers, i, c)
			}
		}
	}
}

func TestRendererName(t *testing.T) {
	if New(1).Name() != "serial" {
		t.Error("expected serial")
	}
	if New(4).Name() != "parallel" {
		t.Error("expected parallel")
	}
}
