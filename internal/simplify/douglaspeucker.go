package simplify

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

// perpendicularDistance returns the distance from p to the segment ab: the
// projected distance when the projection parameter t falls in [0,1], else
// the Euclidean distance to the nearer endpoint.
func perpendicularDistance(p, a, b raster.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		return dist(p, a)
	}
	if t > 1 {
		return dist(p, b)
	}
	proj := raster.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return dist(p, proj)
}

func dist(a, b raster.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DouglasPeucker simplifies points using an absolute distance tolerance.
func DouglasPeucker(points []raster.Point, tolerance float64) []raster.Point {
	if len(points) < 3 {
		return points
	}
	return douglasPeuckerRange(points, tolerance)
}

func douglasPeuckerRange(points []raster.Point, tolerance float64) []raster.Point {
	n := len(points)
	if n < 3 {
		return points
	}
	first, last := points[0], points[n-1]
	maxDist := -1.0
	maxIdx := -1
	for i := 1; i < n-1; i++ {
		d := perpendicularDistance(points[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= tolerance {
		return []raster.Point{first, last}
	}
	left := douglasPeuckerRange(points[:maxIdx+1], tolerance)
	right := douglasPeuckerRange(points[maxIdx:], tolerance)
	out := make([]raster.Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	out = append(out, right...)
	return out
}

// DouglasPeuckerRelative simplifies using tolerance = diagonal(boundingBox) * percent / 100.
func DouglasPeuckerRelative(points []raster.Point, percent float64) []raster.Point {
	if len(points) < 3 {
		return points
	}
	minX, minY, maxX, maxY := points[0].X, points[0].Y, points[0].X, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	diagonal := math.Hypot(maxX-minX, maxY-minY)
	tolerance := diagonal * percent / 100
	return DouglasPeucker(points, tolerance)
}
