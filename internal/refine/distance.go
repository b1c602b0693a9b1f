package refine

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

const sqrt2 = math.Sqrt2

// ChamferDistance computes a two-pass chamfer approximation of the distance
// from every pixel to the nearest set pixel of mask: 0 at source pixels,
// +Inf elsewhere before the passes run.
func ChamferDistance(mask *raster.BinaryMask) *raster.DistanceField {
	w, h := mask.Width, mask.Height
	field := raster.NewDistanceField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.At(x, y) > 0 {
				field.Set(x, y, 0)
			}
		}
	}

	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return math.Inf(1)
		}
		return field.At(x, y)
	}
	min5 := func(vals ...float64) float64 {
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	}

	// Forward pass: y ascending, x ascending.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := min5(
				at(x, y),
				at(x, y-1)+1,
				at(x-1, y)+1,
				at(x-1, y-1)+sqrt2,
				at(x+1, y-1)+sqrt2,
			)
			field.Set(x, y, d)
		}
	}

	// Backward pass: y descending, x descending.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			d := min5(
				at(x, y),
				at(x, y+1)+1,
				at(x+1, y)+1,
				at(x+1, y+1)+sqrt2,
				at(x-1, y+1)+sqrt2,
			)
			field.Set(x, y, d)
		}
	}

	return field
}
