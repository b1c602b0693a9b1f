package refine

import (
	"github.com/cadtrace/cadvec/internal/raster"
	"github.com/cadtrace/cadvec/internal/vectorpath"
)

// Rasterize draws every path's Bresenham lines onto a width x height
// BinaryMask, closing the loop back to the first point when Closed is set.
func Rasterize(paths []vectorpath.Path, width, height int) *raster.BinaryMask {
	mask := raster.NewBinaryMask(width, height)
	for _, p := range paths {
		n := len(p.Points)
		for i := 1; i < n; i++ {
			bresenhamLine(mask, p.Points[i-1], p.Points[i])
		}
		if p.Closed && n > 1 {
			bresenhamLine(mask, p.Points[n-1], p.Points[0])
		}
	}
	return mask
}

func bresenhamLine(mask *raster.BinaryMask, a, b raster.Point) {
	x0, y0 := round(a.X), round(a.Y)
	x1, y1 := round(b.X), round(b.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		mask.Set(x, y, true)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func round(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
