package control

import (
	"fmt"

	"github.com/san-kum/fractalview/internal/escape"
)

type Event interface {
	Kind() string
}

const (
	KindPointer = "pointer"
	KindScroll  = "scroll"
	KindReset   = "reset"
	KindVariant = "variant"
)

// PointerPressed is a primary-button press at pixel coordinates with y = 0
// on the first frame row.
type PointerPressed struct {
	X, Y float64
}

func (PointerPressed) Kind() string { return KindPointer }

func (e PointerPressed) String() string {
	return fmt.Sprintf("pointer(%.1f, %.1f)", e.X, e.Y)
}

// ScrollWheel carries a signed wheel delta; positive zooms in.
type ScrollWheel struct {
	Delta float64
}

func (ScrollWheel) Kind() string { return KindScroll }

func (e ScrollWheel) String() string {
	return fmt.Sprintf("scroll(%+g)", e.Delta)
}

type ResetView struct{}

func (ResetView) Kind() string { return KindReset }

func (ResetView) String() string { return "reset" }

type SwitchVariant struct {
	Variant escape.Variant
}

func (SwitchVariant) Kind() string { return KindVariant }

func (e SwitchVariant) String() string {
	return "variant(" + e.Variant.String() + ")"
}
