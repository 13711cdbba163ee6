package config

import (
	"fmt"
	"sort"
)

// region builds a mandelbrot preset from the plane rectangle's left and
// bottom edges and its real width. The imaginary span follows the frame.
func region(xmin, ymin, xmax float64, maxIter int) *Config {
	cfg := DefaultConfig("mandelbrot")
	cfg.Origin = Complex{Real: xmin, Imag: ymin}
	cfg.RealSpan = xmax - xmin
	cfg.MaxIterations = maxIter
	return cfg
}

func julia(re, im float64) *Config {
	cfg := DefaultConfig("julia")
	cfg.Julia = Complex{Real: re, Imag: im}
	return cfg
}

var Presets = map[string]map[string]*Config{
	"mandelbrot": {
		"full":          DefaultConfig("mandelbrot"),
		"seahorse":      region(-0.8, 0.05, -0.7, 200),
		"elephant":      region(-1.85, -0.10, -1.75, 200),
		"spiral":        region(-0.7435, 0.1310, -0.7420, 500),
		"triple-spiral": region(-0.7480, 0.0950, -0.7450, 500),
		"dragon":        region(-0.7400, 0.1800, -0.7350, 500),
		"minibrot":      region(-1.7390, -0.0235, -1.7375, 500),
	},
	"julia": {
		"default":   DefaultConfig("julia"),
		"dendrite":  julia(0, 1),
		"rabbit":    julia(-0.123, 0.745),
		"siegel":    julia(-0.391, -0.587),
		"san-marco": julia(-0.75, 0),
		"dragon":    julia(-0.8, 0.156),
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(variant, name string) (*Config, error) {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	cfg, ok := variantPresets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, variant, name)
	}
	return cfg.Clone(), nil
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
