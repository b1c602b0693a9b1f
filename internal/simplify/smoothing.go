package simplify

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

// Chaikin performs corner-cutting smoothing: each edge AB becomes the two
// points 0.75A+0.25B and 0.25A+0.75B, repeated iterations times. Closed
// paths wrap the last edge back to the first point.
func Chaikin(points []raster.Point, iterations int, closed bool) []raster.Point {
	cur := points
	for it := 0; it < iterations; it++ {
		n := len(cur)
		if n < 3 {
			break
		}
		var out []raster.Point
		limit := n - 1
		if closed {
			limit = n
		}
		if !closed {
			out = append(out, cur[0])
		}
		for i := 0; i < limit; i++ {
			a := cur[i]
			b := cur[(i+1)%n]
			out = append(out,
				raster.Point{X: 0.75*a.X + 0.25*b.X, Y: 0.75*a.Y + 0.25*b.Y},
				raster.Point{X: 0.25*a.X + 0.75*b.X, Y: 0.25*a.Y + 0.75*b.Y},
			)
		}
		if !closed {
			out = append(out, cur[n-1])
		}
		cur = out
	}
	return cur
}

// MovingAverage smooths points with a window of 2k+1 points, clamping at
// the edges (boundary points average over however many neighbors exist).
func MovingAverage(points []raster.Point, k int) []raster.Point {
	n := len(points)
	if k <= 0 || n == 0 {
		return points
	}
	out := make([]raster.Point, n)
	for i := 0; i < n; i++ {
		lo := i - k
		if lo < 0 {
			lo = 0
		}
		hi := i + k
		if hi >= n {
			hi = n - 1
		}
		var sx, sy float64
		count := 0
		for j := lo; j <= hi; j++ {
			sx += points[j].X
			sy += points[j].Y
			count++
		}
		out[i] = raster.Point{X: sx / float64(count), Y: sy / float64(count)}
	}
	return out
}

// GaussianSmooth convolves the polyline with a 1-D Gaussian kernel, using
// mirror padding at the boundaries.
func GaussianSmooth(points []raster.Point, sigma float64) []raster.Point {
	n := len(points)
	if sigma <= 0 || n == 0 {
		return points
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	mirror := func(i int) int {
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			}
			if i >= n {
				i = 2*n - i - 1
			}
		}
		return i
	}

	out := make([]raster.Point, n)
	for i := 0; i < n; i++ {
		var sx, sy float64
		for k := -radius; k <= radius; k++ {
			p := points[mirror(i+k)]
			w := kernel[k+radius]
			sx += p.X * w
			sy += p.Y * w
		}
		out[i] = raster.Point{X: sx, Y: sy}
	}
	return out
}
