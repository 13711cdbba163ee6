package analysis

import "github.com/san-kum/fractalview/internal/render"

// Histogram bins the iteration counts of escaped pixels into bins equal
// ranges over [0, MaxIterations). Inside pixels are not counted.
func Histogram(frame *render.Frame, bins int) []float64 {
	if frame == nil || bins <= 0 || frame.MaxIterations <= 0 {
		return nil
	}
	if bins > frame.MaxIterations {
		bins = frame.MaxIterations
	}

	hist := make([]float64, bins)
	for _, n := range frame.Counts {
		if n >= frame.MaxIterations {
			continue
		}
		idx := n * bins / frame.MaxIterations
		hist[idx]++
	}
	return hist
}
