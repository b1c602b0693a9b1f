package contour

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

// BoundingBox is an axis-aligned box in pixel coordinates.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contour is an ordered point sequence produced by a tracer.
type Contour struct {
	Points    []raster.Point
	Closed    bool
	Hole      bool
	Bounds    BoundingBox
	Area      float64
	Perimeter float64
}

// NewContour computes Bounds/Area/Perimeter from points and wraps them into
// a Contour with the given closed/hole flags.
func NewContour(points []raster.Point, closed, hole bool) Contour {
	c := Contour{Points: points, Closed: closed, Hole: hole}
	c.Bounds = boundsOf(points)
	c.Area = shoelaceArea(points)
	c.Perimeter = perimeterOf(points, closed)
	return c
}

func boundsOf(points []raster.Point) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// shoelaceArea computes the (unsigned) polygon area via the shoelace
// formula, treating the point sequence as implicitly closed.
func shoelaceArea(points []raster.Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

func perimeterOf(points []raster.Point, closed bool) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < n; i++ {
		total += dist(points[i-1], points[i])
	}
	if closed {
		total += dist(points[n-1], points[0])
	}
	return total
}

func dist(a, b raster.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// FilterByArea keeps only contours whose Area lies in [minArea, maxArea].
// A non-positive maxArea is treated as "no upper bound".
func FilterByArea(contours []Contour, minArea, maxArea float64) []Contour {
	out := make([]Contour, 0, len(contours))
	for _, c := range contours {
		if c.Area < minArea {
			continue
		}
		if maxArea > 0 && c.Area > maxArea {
			continue
		}
		out = append(out, c)
	}
	return out
}
