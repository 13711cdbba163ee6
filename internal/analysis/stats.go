package analysis

import (
	"github.com/san-kum/fractalview/internal/palette"
	"github.com/san-kum/fractalview/internal/render"
)

type Stats struct {
	Pixels      int
	Inside      int
	Escaped     int
	InsideRatio float64

	// Extremes and mean over escaped pixels only.
	MinEscape  int
	MaxEscape  int
	MeanEscape float64

	// Bands counts escaped pixels per palette entry.
	Bands [palette.Size]int
}

func Summarize(frame *render.Frame) Stats {
	var s Stats
	if frame == nil {
		return s
	}

	s.Pixels = frame.Pixels()
	s.MinEscape = -1
	sum := 0

	for _, n := range frame.Counts {
		if n == frame.MaxIterations {
			s.Inside++
			continue
		}
		s.Escaped++
		sum += n
		s.Bands[n%palette.Size]++
		if s.MinEscape < 0 || n < s.MinEscape {
			s.MinEscape = n
		}
		if n > s.MaxEscape {
			s.MaxEscape = n
		}
	}

	if s.Pixels > 0 {
		s.InsideRatio = float64(s.Inside) / float64(s.Pixels)
	}
	if s.Escaped > 0 {
		s.MeanEscape = float64(sum) / float64(s.Escaped)
	} else {
		s.MinEscape = 0
	}
	return s
}

// DominantBand is the palette index covering the most escaped pixels.
func (s Stats) DominantBand() int {
	best := 0
	for i, n := range s.Bands {
		if n > s.Bands[best] {
			best = i
		}
	}
	return best
}
