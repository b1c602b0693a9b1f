package simplify

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

// CubicBezier is a single cubic Bezier segment: P0/P3 are the on-curve
// endpoints, P1/P2 are the tangent-aligned control points.
type CubicBezier struct {
	P0, P1, P2, P3 raster.Point
}

// FitBezier fits a sequence of cubic Bezier curves to points using
// Schneider's method: chord-length parameterize, solve the 2x2 normal
// system for the endpoint tangent distances, and subdivide at the point of
// maximum error whenever the fit error exceeds tolerance.
func FitBezier(points []raster.Point, tolerance float64) []CubicBezier {
	if len(points) < 2 {
		return nil
	}
	leftTangent := unit(sub(points[1], points[0]))
	rightTangent := unit(sub(points[len(points)-2], points[len(points)-1]))
	return fitCubic(points, leftTangent, rightTangent, tolerance)
}

func fitCubic(points []raster.Point, leftTangent, rightTangent raster.Point, tolerance float64) []CubicBezier {
	if len(points) == 2 {
		dist := dist(points[0], points[1]) / 3
		return []CubicBezier{{
			P0: points[0],
			P1: add(points[0], scale(leftTangent, dist)),
			P2: add(points[1], scale(rightTangent, dist)),
			P3: points[1],
		}}
	}

	u := chordLengthParameterize(points)
	curve := generateBezier(points, u, leftTangent, rightTangent)
	maxErrSq, splitIdx := computeMaxError(points, curve, u)
	maxErr := math.Sqrt(maxErrSq)

	if maxErr < tolerance {
		return []CubicBezier{curve}
	}

	if splitIdx <= 0 || splitIdx >= len(points)-1 {
		splitIdx = len(points) / 2
	}
	centerTangent := unit(sub(points[splitIdx-1], points[splitIdx+1]))
	left := fitCubic(points[:splitIdx+1], leftTangent, centerTangent, tolerance)
	right := fitCubic(points[splitIdx:], scale(centerTangent, -1), rightTangent, tolerance)
	return append(left, right...)
}

func chordLengthParameterize(points []raster.Point) []float64 {
	n := len(points)
	u := make([]float64, n)
	u[0] = 0
	for i := 1; i < n; i++ {
		u[i] = u[i-1] + dist(points[i-1], points[i])
	}
	total := u[n-1]
	if total == 0 {
		return u
	}
	for i := range u {
		u[i] /= total
	}
	return u
}

func bernstein(t float64) (b0, b1, b2, b3 float64) {
	mt := 1 - t
	b0 = mt * mt * mt
	b1 = 3 * mt * mt * t
	b2 = 3 * mt * t * t
	b3 = t * t * t
	return
}

// generateBezier solves the 2x2 normal system for the tangent-aligned
// control-point distances alpha1/alpha2, falling back to one third of the
// endpoint chord length when a solved alpha is non-positive.
func generateBezier(points []raster.Point, u []float64, leftTangent, rightTangent raster.Point) CubicBezier {
	first, last := points[0], points[len(points)-1]

	var c00, c01, c11, x0, x1 float64
	for i, t := range u {
		b0, b1, b2, b3 := bernstein(t)
		a1 := scale(leftTangent, b1)
		a2 := scale(rightTangent, b2)

		c00 += dot(a1, a1)
		c01 += dot(a1, a2)
		c11 += dot(a2, a2)

		base := add(scale(first, b0+b1), scale(last, b2+b3))
		diff := sub(points[i], base)
		x0 += dot(a1, diff)
		x1 += dot(a2, diff)
	}

	det := c00*c11 - c01*c01
	var alpha1, alpha2 float64
	if det != 0 {
		alpha1 = (x0*c11 - x1*c01) / det
		alpha2 = (c00*x1 - c01*x0) / det
	}

	segLen := dist(first, last)
	fallback := segLen / 3
	if alpha1 <= 1e-9 || alpha2 <= 1e-9 {
		alpha1, alpha2 = fallback, fallback
	}

	return CubicBezier{
		P0: first,
		P1: add(first, scale(leftTangent, alpha1)),
		P2: add(last, scale(rightTangent, alpha2)),
		P3: last,
	}
}

// SampleBezier flattens a sequence of fitted curves back into a polyline,
// stepping through each segment in stepsPerSegment increments. Segment
// endpoints are shared between consecutive curves, so each is only emitted
// once.
func SampleBezier(curves []CubicBezier, stepsPerSegment int) []raster.Point {
	if len(curves) == 0 {
		return nil
	}
	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	out := []raster.Point{curves[0].P0}
	for _, c := range curves {
		for step := 1; step <= stepsPerSegment; step++ {
			t := float64(step) / float64(stepsPerSegment)
			out = append(out, evalBezier(c, t))
		}
	}
	return out
}

func evalBezier(c CubicBezier, t float64) raster.Point {
	b0, b1, b2, b3 := bernstein(t)
	return raster.Point{
		X: b0*c.P0.X + b1*c.P1.X + b2*c.P2.X + b3*c.P3.X,
		Y: b0*c.P0.Y + b1*c.P1.Y + b2*c.P2.Y + b3*c.P3.Y,
	}
}

// computeMaxError returns the squared distance of the worst-fitting point
// (and its index) against curve; callers compare against tolerance^2 or
// take the square root before comparing against a linear tolerance.
func computeMaxError(points []raster.Point, curve CubicBezier, u []float64) (float64, int) {
	maxErr := 0.0
	maxIdx := len(points) / 2
	for i, t := range u {
		p := evalBezier(curve, t)
		d := dist(p, points[i])
		if d*d > maxErr {
			maxErr = d * d
			maxIdx = i
		}
	}
	return maxErr, maxIdx
}

func sub(a, b raster.Point) raster.Point   { return raster.Point{X: a.X - b.X, Y: a.Y - b.Y} }
func add(a, b raster.Point) raster.Point   { return raster.Point{X: a.X + b.X, Y: a.Y + b.Y} }
func scale(a raster.Point, s float64) raster.Point { return raster.Point{X: a.X * s, Y: a.Y * s} }
func dot(a, b raster.Point) float64        { return a.X*b.X + a.Y*b.Y }
func unit(a raster.Point) raster.Point {
	l := math.Hypot(a.X, a.Y)
	if l == 0 {
		return raster.Point{}
	}
	return raster.Point{X: a.X / l, Y: a.Y / l}
}
