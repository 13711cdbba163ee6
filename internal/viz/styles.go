package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractalview/internal/palette"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasPadY, canvasPadX)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)
)

const (
	canvasPadX = 2
	canvasPadY = 1
	panelWidth = 40
)

// GradientText colors each rune of text along a straight line between two
// colors.
func GradientText(text string, start, end color.RGBA) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		mix := color.RGBA{
			R: lerp(start.R, end.R, t),
			G: lerp(start.G, end.G, t),
			B: lerp(start.B, end.B, t),
			A: 255,
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Hex(mix)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5)
}

// ProgressBar renders a ratio in [0, 1] as a filled bar.
func ProgressBar(ratio float64, width int, theme Theme) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(theme.Muted).Render(strings.Repeat("░", width-filled))
	return bar + rest
}

// BandStrip draws one block per palette entry, scaled by how many pixels fell
// into that band.
func BandStrip(pal palette.Palette, bands [palette.Size]int) string {
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := 0
	for _, n := range bands {
		if n > max {
			max = n
		}
	}

	var result strings.Builder
	for i, n := range bands {
		idx := 0
		if max > 0 {
			idx = n * (len(chars) - 1) / max
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(pal.Colors[i])))
		result.WriteString(style.Render(string(chars[idx])))
	}
	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return Subtle.Render(strings.Repeat("─", width))
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
