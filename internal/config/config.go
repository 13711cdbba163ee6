package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/viewport"
)

const (
	DefaultWidth           = 320
	DefaultHeight          = 180
	DefaultMaxIterations   = escape.DefaultMaxIterations
	DefaultZoomGranularity = viewport.DefaultZoomGranularity
	DefaultRealSpan        = viewport.DefaultRealSpan
	DefaultWorkers         = 1
)

var (
	ErrUnknownVariant = errors.New("config: unknown variant")
	ErrUnknownPreset  = errors.New("config: unknown preset")
)

type Config struct {
	Variant         string  `yaml:"variant" json:"variant"`
	Width           int     `yaml:"width" json:"width"`
	Height          int     `yaml:"height" json:"height"`
	MaxIterations   int     `yaml:"max_iterations" json:"max_iterations"`
	ZoomGranularity int     `yaml:"zoom_granularity" json:"zoom_granularity"`
	RealSpan        float64 `yaml:"real_span" json:"real_span"`
	Origin          Complex `yaml:"origin" json:"origin"`
	Julia           Complex `yaml:"julia" json:"julia"`
	MinSpan         float64 `yaml:"min_span" json:"min_span"`
	Workers         int     `yaml:"workers" json:"workers"`
	Palette         string  `yaml:"palette,omitempty" json:"palette,omitempty"`
}

type Complex struct {
	Real float64 `yaml:"real" json:"real"`
	Imag float64 `yaml:"imag" json:"imag"`
}

func (c Complex) Value() complex128 {
	return complex(c.Real, c.Imag)
}

func FromComplex(z complex128) Complex {
	return Complex{Real: real(z), Imag: imag(z)}
}

// DefaultConfig returns the startup view for a variant. Unknown names fall
// back to mandelbrot.
func DefaultConfig(variant string) *Config {
	cfg := &Config{
		Variant:         escape.Mandelbrot.String(),
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		MaxIterations:   DefaultMaxIterations,
		ZoomGranularity: DefaultZoomGranularity,
		RealSpan:        DefaultRealSpan,
		Origin:          Complex{Real: -3.0, Imag: -2.0},
		Julia:           FromComplex(escape.DefaultJuliaConstant),
		Workers:         DefaultWorkers,
	}
	if v, err := escape.ParseVariant(variant); err == nil && v == escape.Julia {
		cfg.Variant = escape.Julia.String()
		cfg.Origin = Complex{Real: -2.0, Imag: -1.5}
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	cfg := DefaultConfig(probe.Variant)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	return &out
}

func (c *Config) VariantValue() (escape.Variant, error) {
	v, err := escape.ParseVariant(c.Variant)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, c.Variant)
	}
	return v, nil
}

func (c *Config) Params() (escape.Params, error) {
	v, err := c.VariantValue()
	if err != nil {
		return escape.Params{}, err
	}

	var p escape.Params
	switch v {
	case escape.Julia:
		p = escape.NewJulia(c.Julia.Value(), c.MaxIterations)
	default:
		p = escape.NewMandelbrot(c.MaxIterations)
	}
	if err := p.Validate(); err != nil {
		return escape.Params{}, err
	}
	return p, nil
}

func (c *Config) Viewport() (*viewport.Viewport, error) {
	vp, err := viewport.New(c.Width, c.Height, c.Origin.Real, c.Origin.Imag, c.RealSpan, c.ZoomGranularity)
	if err != nil {
		return nil, err
	}
	if c.MinSpan < 0 {
		return nil, fmt.Errorf("%w: min_span %g", viewport.ErrInvalidSpan, c.MinSpan)
	}
	vp.MinSpan = c.MinSpan
	return vp, nil
}

// PaletteValue returns the named palette, or the variant's own palette when
// none is configured.
func (c *Config) PaletteValue() (palette.Palette, error) {
	if c.Palette != "" {
		return palette.ByName(c.Palette)
	}
	v, err := c.VariantValue()
	if err != nil {
		return palette.Palette{}, err
	}
	return palette.ForVariant(v), nil
}

func (c *Config) Scene() (control.Scene, error) {
	p, err := c.Params()
	if err != nil {
		return control.Scene{}, err
	}
	vp, err := c.Viewport()
	if err != nil {
		return control.Scene{}, err
	}
	pal, err := c.PaletteValue()
	if err != nil {
		return control.Scene{}, err
	}
	return control.Scene{Viewport: *vp, Params: p, Palette: pal}, nil
}

// Validate builds every derived value once and reports the first problem.
func (c *Config) Validate() error {
	_, err := c.Scene()
	return err
}

// Companion returns the default config of the other variant with the same
// frame size and limits, for runtime toggling.
func (c *Config) Companion() *Config {
	other := escape.Julia.String()
	if v, err := c.VariantValue(); err == nil && v == escape.Julia {
		other = escape.Mandelbrot.String()
	}
	out := DefaultConfig(other)
	out.Width = c.Width
	out.Height = c.Height
	out.MaxIterations = c.MaxIterations
	out.ZoomGranularity = c.ZoomGranularity
	out.MinSpan = c.MinSpan
	out.Workers = c.Workers
	out.Julia = c.Julia
	return out
}
