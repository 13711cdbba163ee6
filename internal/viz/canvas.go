package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractalview/internal/palette"
)

const halfBlock = "▀"

// Canvas holds Cols x 2*Rows pixels. Each terminal cell shows its top pixel
// as the foreground and its bottom pixel as the background of a half block.
type Canvas struct {
	Cols, Rows int
	Pixels     [][]color.RGBA
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		Cols:   cols,
		Rows:   rows,
		Pixels: make([][]color.RGBA, rows*2),
	}
	for i := range c.Pixels {
		c.Pixels[i] = make([]color.RGBA, cols)
	}
	return c
}

// FromImage copies img into a canvas. With flip set, the last image row is
// drawn at the top.
func FromImage(img *image.RGBA, flip bool) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), (b.Dy()+1)/2)
	for y := 0; y < b.Dy(); y++ {
		src := y
		if flip {
			src = b.Dy() - 1 - y
		}
		for x := 0; x < b.Dx(); x++ {
			c.Pixels[y][x] = img.RGBAAt(b.Min.X+x, b.Min.Y+src)
		}
	}
	return c
}

// Set colors a pixel in display coordinates, y = 0 at the top.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows*2 {
		return
	}
	c.Pixels[y][x] = col
}

func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows*2 {
		return color.RGBA{}
	}
	return c.Pixels[y][x]
}

func (c *Canvas) Clear() {
	for _, row := range c.Pixels {
		for i := range row {
			row[i] = color.RGBA{}
		}
	}
}

func (c *Canvas) String() string {
	cells := make(map[[2]color.RGBA]string)
	var b strings.Builder
	for r := 0; r < c.Rows; r++ {
		top, bottom := c.Pixels[2*r], c.Pixels[2*r+1]
		for x := 0; x < c.Cols; x++ {
			key := [2]color.RGBA{top[x], bottom[x]}
			cell, ok := cells[key]
			if !ok {
				cell = lipgloss.NewStyle().
					Foreground(lipgloss.Color(palette.Hex(top[x]))).
					Background(lipgloss.Color(palette.Hex(bottom[x]))).
					Render(halfBlock)
				cells[key] = cell
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}
