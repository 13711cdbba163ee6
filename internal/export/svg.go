package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fractalview/internal/control"
)

// TrailToSVG plots the viewport centers visited by a session, in dispatch
// order, as one path on the complex plane. The last center is marked.
func TrailToSVG(records []control.Record, width, height int, strokeColor string) string {
	if len(records) < 2 {
		return ""
	}

	points := make([]complex128, len(records))
	for i, rec := range records {
		points[i] = rec.Viewport.Center()
	}

	minX, maxX := real(points[0]), real(points[0])
	minY, maxY := imag(points[0]), imag(points[0])
	for _, p := range points {
		minX, maxX = min(minX, real(p)), max(maxX, real(p))
		minY, maxY = min(minY, imag(p)), max(maxY, imag(p))
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	var lastX, lastY float64
	for i, p := range points {
		x := (real(p) - minX) / rangeX * float64(width)
		y := float64(height) - (imag(p)-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
		lastX, lastY = x, y
	}

	sb.WriteString(fmt.Sprintf(`"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
</svg>`, lastX, lastY, strokeColor))
	return sb.String()
}
