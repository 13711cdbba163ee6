// Package palette maps escape-time iteration counts to display colors using
// fixed 16-band tables.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/fractalview/internal/escape"
)

// Size is the number of bands in every palette.
const Size = 16

var ErrUnknownPalette = errors.New("palette: unknown palette")

// Inside is the color of points that never escaped.
var Inside = color.RGBA{R: 0, G: 0, B: 0, A: 255}

type Palette struct {
	Name   string
	Colors [Size]color.RGBA
}

// Mandelbrot ramps from lime green through teal and cyan to deep blue.
var Mandelbrot = Palette{
	Name: "mandelbrot",
	Colors: [Size]color.RGBA{
		{50, 205, 50, 255},  // lime green
		{60, 210, 60, 255},  // light lime green
		{70, 215, 70, 255},  // soft lime
		{80, 220, 80, 255},  // lime
		{90, 230, 90, 255},  // bright green
		{100, 240, 100, 255},
		{110, 250, 110, 255}, // light green
		{120, 255, 120, 255}, // soft green
		{80, 255, 150, 255},  // light teal
		{50, 255, 180, 255},  // soft teal
		{20, 220, 255, 255},  // light cyan
		{10, 180, 255, 255},  // cyan
		{0, 140, 255, 255},   // light blue
		{0, 100, 255, 255},   // blue
		{0, 60, 255, 255},    // dark blue
		{0, 0, 128, 255},     // deep blue
	},
}

// Julia ramps from bright yellow through orange and red to deep purple.
var Julia = Palette{
	Name: "julia",
	Colors: [Size]color.RGBA{
		{255, 255, 0, 255}, // bright yellow
		{255, 230, 0, 255},
		{255, 204, 0, 255},
		{255, 178, 0, 255},
		{255, 153, 0, 255},
		{255, 128, 0, 255},
		{255, 102, 0, 255}, // light orange
		{255, 76, 0, 255},  // orange
		{255, 51, 0, 255},  // dark orange
		{255, 0, 0, 255},   // light red
		{204, 0, 0, 255},
		{153, 0, 0, 255},
		{102, 0, 0, 255},  // deep red
		{76, 0, 76, 255},  // light purple
		{51, 0, 102, 255}, // purple
		{25, 0, 128, 255}, // deep purple
	},
}

var palettes = []Palette{Mandelbrot, Julia}

// Colorize returns Inside when count == max, otherwise band count mod Size.
func (p Palette) Colorize(count, max int) color.RGBA {
	if count == max {
		return Inside
	}
	i := count % Size
	if i < 0 {
		i += Size
	}
	return p.Colors[i]
}

// ForVariant returns the table each explorer ships with.
func ForVariant(v escape.Variant) Palette {
	if v == escape.Julia {
		return Julia
	}
	return Mandelbrot
}

func ByName(name string) (Palette, error) {
	for _, p := range palettes {
		if p.Name == strings.ToLower(name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownPalette, name, Names())
}

func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// Hex renders c as #rrggbb for terminal styling.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
