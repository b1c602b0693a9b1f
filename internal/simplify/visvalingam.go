package simplify

import (
	"math"

	"github.com/cadtrace/cadvec/internal/raster"
)

// triangleArea is the effective area of the triangle formed by a point and
// its two wing neighbors, the score Visvalingam-Whyatt ranks points by.
func triangleArea(a, b, c raster.Point) float64 {
	area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if area < 0 {
		area = -area
	}
	return area / 2
}

// VisvalingamWhyatt repeatedly removes the interior point with the smallest
// triangle area (computed against its current neighbors), re-scoring the
// surviving neighbors each time, until only targetCount points remain.
func VisvalingamWhyatt(points []raster.Point, targetCount int) []raster.Point {
	n := len(points)
	if n <= targetCount || n < 3 {
		return points
	}

	type node struct {
		p          raster.Point
		prev, next int
		area       float64
		alive      bool
	}

	nodes := make([]node, n)
	for i, p := range points {
		nodes[i] = node{p: p, prev: i - 1, next: i + 1, alive: true}
	}
	nodes[0].prev = -1
	nodes[n-1].next = -1

	score := func(i int) float64 {
		if nodes[i].prev == -1 || nodes[i].next == -1 {
			return math.MaxFloat64
		}
		return triangleArea(nodes[nodes[i].prev].p, nodes[i].p, nodes[nodes[i].next].p)
	}
	for i := range nodes {
		nodes[i].area = score(i)
	}

	alive := n
	for alive > targetCount {
		minIdx := -1
		minArea := math.MaxFloat64
		for i := range nodes {
			if nodes[i].alive && nodes[i].prev != -1 && nodes[i].next != -1 && nodes[i].area < minArea {
				minArea = nodes[i].area
				minIdx = i
			}
		}
		if minIdx == -1 {
			break
		}
		p, nx := nodes[minIdx].prev, nodes[minIdx].next
		nodes[minIdx].alive = false
		nodes[p].next = nx
		nodes[nx].prev = p
		nodes[p].area = score(p)
		nodes[nx].area = score(nx)
		alive--
	}

	out := make([]raster.Point, 0, alive)
	for i := range nodes {
		if nodes[i].alive {
			out = append(out, nodes[i].p)
		}
	}
	return out
}
