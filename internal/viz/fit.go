package viz

import (
	"image"

	"golang.org/x/image/draw"
)

// FitSize returns the largest canvas, in cells, that shows a srcW x srcH
// frame inside maxCols x maxRows without distorting it. Half-block pixels
// are treated as square.
func FitSize(srcW, srcH, maxCols, maxRows int) (cols, rows int) {
	if srcW <= 0 || srcH <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	sx := float64(maxCols) / float64(srcW)
	sy := float64(maxRows*2) / float64(srcH)
	scale := sx
	if sy < scale {
		scale = sy
	}

	cols = int(float64(srcW) * scale)
	pixH := int(float64(srcH) * scale)
	if cols < 1 {
		cols = 1
	}
	if pixH < 2 {
		pixH = 2
	}
	rows = (pixH + 1) / 2
	if rows > maxRows {
		rows = maxRows
	}
	return cols, rows
}

// Fit scales src to w x h with nearest-neighbour sampling, so every output
// pixel keeps an exact palette color.
func Fit(src image.Image, w, h int) *image.RGBA {
	return scale(src, w, h, draw.NearestNeighbor)
}

// FitSmooth scales with Catmull-Rom interpolation for previews where band
// edges may blend.
func FitSmooth(src image.Image, w, h int) *image.RGBA {
	return scale(src, w, h, draw.CatmullRom)
}

func scale(src image.Image, w, h int, s draw.Scaler) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
