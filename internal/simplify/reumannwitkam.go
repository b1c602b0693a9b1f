package simplify

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

// ReumannWitkam streams points, keeping any whose perpendicular distance to
// the line through a running key segment exceeds tolerance, and advancing
// the key segment to start at each newly kept point. The first and last
// points are always kept.
func ReumannWitkam(points []raster.Point, tolerance float64) []raster.Point {
	n := len(points)
	if n < 3 {
		return points
	}

	lineDist := func(p, a, b raster.Point) float64 {
		l := dist(a, b)
		if l == 0 {
			return dist(p, a)
		}
		return math.Abs((p.X-a.X)*(b.Y-a.Y)-(p.Y-a.Y)*(b.X-a.X)) / l
	}

	out := []raster.Point{points[0]}
	keyA, keyB := points[0], points[1]

	for i := 2; i < n-1; i++ {
		if lineDist(points[i], keyA, keyB) > tolerance {
			out = append(out, points[i])
			keyA, keyB = points[i], points[i+1]
		}
	}

	return append(out, points[n-1])
}
