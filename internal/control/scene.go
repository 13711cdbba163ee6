package control

import (
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/viewport"
)

// Scene is everything needed to start exploring one fractal.
type Scene struct {
	Viewport viewport.Viewport
	Params   escape.Params
	Palette  palette.Palette
}

func (s Scene) Variant() escape.Variant {
	return s.Params.Variant
}
