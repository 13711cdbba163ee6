package render

import (
	"image"
	"image/color"
)

// Frame is the output of one render: row-major iteration counts plus the
// colorized image. Row y corresponds to the plane's imaginary offset
// ImagOrigin + ImagSpan*y/Height.
type Frame struct {
	Width, Height int
	MaxIterations int
	Counts        []int
	Image         *image.RGBA
}

func NewFrame(width, height, maxIterations int) *Frame {
	return &Frame{
		Width:         width,
		Height:        height,
		MaxIterations: maxIterations,
		Counts:        make([]int, width*height),
		Image:         image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// At returns the iteration count at (x, y), or -1 outside the frame.
func (f *Frame) At(x, y int) int {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return -1
	}
	return f.Counts[y*f.Width+x]
}

// ColorAt returns the pixel color, transparent outside the frame.
func (f *Frame) ColorAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	return f.Image.RGBAAt(x, y)
}

func (f *Frame) set(x, y, count int, c color.RGBA) {
	f.Counts[y*f.Width+x] = count
	i := f.Image.PixOffset(x, y)
	f.Image.Pix[i+0] = c.R
	f.Image.Pix[i+1] = c.G
	f.Image.Pix[i+2] = c.B
	f.Image.Pix[i+3] = c.A
}

// Inside counts pixels whose orbit stayed bounded.
func (f *Frame) Inside() int {
	n := 0
	for _, c := range f.Counts {
		if c == f.MaxIterations {
			n++
		}
	}
	return n
}

func (f *Frame) Pixels() int {
	return f.Width * f.Height
}
