package escape

import (
	"fmt"
	"strings"
)

const (
	DefaultMaxIterations = 100
	DefaultEscapeRadius  = 2.0
)

// DefaultJuliaConstant is the c used by the Julia explorer unless configured otherwise.
var DefaultJuliaConstant = complex(-0.7, 0.27015)

type Variant int

const (
	Mandelbrot Variant = iota
	Julia
)

func (v Variant) String() string {
	switch v {
	case Mandelbrot:
		return "mandelbrot"
	case Julia:
		return "julia"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

func Variants() []Variant {
	return []Variant{Mandelbrot, Julia}
}

// ParseVariant accepts the names produced by String, case-insensitively.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mandelbrot", "m":
		return Mandelbrot, nil
	case "julia", "j":
		return Julia, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Params configures one kernel evaluation. C is ignored for Mandelbrot.
type Params struct {
	Variant       Variant
	C             complex128
	MaxIterations int
	EscapeRadius  float64
}

func NewMandelbrot(maxIterations int) Params {
	return Params{
		Variant:       Mandelbrot,
		MaxIterations: maxIterations,
		EscapeRadius:  DefaultEscapeRadius,
	}
}

func NewJulia(c complex128, maxIterations int) Params {
	return Params{
		Variant:       Julia,
		C:             c,
		MaxIterations: maxIterations,
		EscapeRadius:  DefaultEscapeRadius,
	}
}

func (p Params) Validate() error {
	if p.MaxIterations <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidIterations, p.MaxIterations)
	}
	if p.EscapeRadius <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidRadius, p.EscapeRadius)
	}
	return nil
}

// Iterate returns the number of completed iterations before |z| exceeds the
// escape radius. The iteration that escapes is not counted. A point that never
// escapes returns exactly p.MaxIterations.
func Iterate(point complex128, p Params) int {
	c := point
	if p.Variant == Julia {
		c = p.C
	}
	r2 := p.EscapeRadius * p.EscapeRadius

	z := point
	n := 0
	for n < p.MaxIterations {
		z = z*z + c
		re, im := real(z), imag(z)
		if re*re+im*im > r2 {
			break
		}
		n++
	}
	return n
}
