package viz

import (
	"github.com/san-kum/fractalview/internal/render"
)

// Screen is a display sink sized to a region of the terminal. It keeps the
// latest frame so a resize can redraw without rendering again.
type Screen struct {
	maxCols, maxRows int
	smooth           bool
	frame            *render.Frame
	canvas           *Canvas
}

func NewScreen(maxCols, maxRows int) *Screen {
	return &Screen{maxCols: maxCols, maxRows: maxRows}
}

// Smooth switches the downscaler to interpolation.
func (s *Screen) Smooth(on bool) {
	s.smooth = on
	s.redraw()
}

func (s *Screen) Display(frame *render.Frame) error {
	s.frame = frame
	s.redraw()
	return nil
}

func (s *Screen) Resize(maxCols, maxRows int) {
	s.maxCols, s.maxRows = maxCols, maxRows
	s.redraw()
}

func (s *Screen) redraw() {
	if s.frame == nil {
		return
	}
	cols, rows := FitSize(s.frame.Width, s.frame.Height, s.maxCols, s.maxRows)
	if cols == 0 || rows == 0 {
		s.canvas = nil
		return
	}
	if s.smooth {
		s.canvas = FromImage(FitSmooth(s.frame.Image, cols, rows*2), true)
	} else {
		s.canvas = FromImage(Fit(s.frame.Image, cols, rows*2), true)
	}
}

func (s *Screen) Frame() *render.Frame { return s.frame }

func (s *Screen) Canvas() *Canvas { return s.canvas }

// CellToPixel maps a cell, relative to the canvas' top-left corner, to frame
// pixel coordinates. The frame's y axis runs bottom-up.
func (s *Screen) CellToPixel(cx, cy int) (x, y float64, ok bool) {
	if s.canvas == nil || s.frame == nil {
		return 0, 0, false
	}
	if cx < 0 || cy < 0 || cx >= s.canvas.Cols || cy >= s.canvas.Rows {
		return 0, 0, false
	}
	w, h := float64(s.frame.Width), float64(s.frame.Height)
	x = (float64(cx) + 0.5) * w / float64(s.canvas.Cols)
	d := float64(2*cy+1) * h / float64(2*s.canvas.Rows)
	return x, h - d, true
}

func (s *Screen) String() string {
	if s.canvas == nil {
		return ""
	}
	return s.canvas.String()
}
