package contour

import (
	"fmt"

	"github.com/cadtrace/cadvec/internal/raster"
)

// edge identifies one of the four sides of a marching-squares cell.
type edge int

const (
	edgeTop edge = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// caseEdges maps a 4-bit corner index (TL=1, TR=2, BR=4, BL=8) to the pairs
// of edges its crossing segments connect. The two ambiguous saddle cases (5
// and 10) are resolved by connecting both diagonals, matching opposite
// corners rather than picking one diagonal arbitrarily.
var caseEdges = map[int][][2]edge{
	0:  nil,
	1:  {{edgeLeft, edgeTop}},
	2:  {{edgeTop, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeRight, edgeBottom}},
	5:  {{edgeLeft, edgeTop}, {edgeRight, edgeBottom}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeLeft, edgeBottom}},
	8:  {{edgeBottom, edgeLeft}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeTop, edgeRight}, {edgeBottom, edgeLeft}},
	11: {{edgeRight, edgeBottom}},
	12: {{edgeRight, edgeLeft}},
	13: {{edgeRight, edgeTop}},
	14: {{edgeTop, edgeLeft}},
	15: nil,
}

type segPoint struct {
	X, Y float64
}

type segKey struct {
	cellX, cellY int
	minEdge, maxEdge edge
}

func newSegKey(cx, cy int, a, b edge) segKey {
	if a > b {
		a, b = b, a
	}
	return segKey{cellX: cx, cellY: cy, minEdge: a, maxEdge: b}
}

// lerp linearly interpolates the crossing point of a grid edge against the
// threshold, given the two corner luminance values.
func lerp(v0, v1, threshold float64) float64 {
	if v1 == v0 {
		return 0.5
	}
	t := (threshold - v0) / (v1 - v0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}

// TraceMarchingSquares extracts closed sub-pixel polylines from a grayscale
// buffer by classifying each 2x2 cell against threshold, looking up its
// crossing segments in the 16-case table, and chaining same-edge segments
// together across the grid.
func TraceMarchingSquares(g *raster.GrayBuffer, threshold float64) []Contour {
	w, h := g.Width, g.Height
	if w < 2 || h < 2 {
		return nil
	}

	type segment struct {
		a, b segPoint
	}
	segByKey := make(map[segKey]segment)
	var order []segKey

	val := func(x, y int) float64 { return float64(g.At(x, y)) }

	for cy := 0; cy < h-1; cy++ {
		for cx := 0; cx < w-1; cx++ {
			tl := val(cx, cy)
			tr := val(cx+1, cy)
			br := val(cx+1, cy+1)
			bl := val(cx, cy+1)

			idx := 0
			if tl >= threshold {
				idx |= 1
			}
			if tr >= threshold {
				idx |= 2
			}
			if br >= threshold {
				idx |= 4
			}
			if bl >= threshold {
				idx |= 8
			}

			pairs := caseEdges[idx]
			for _, pr := range pairs {
				a := edgePoint(pr[0], cx, cy, tl, tr, br, bl, threshold)
				b := edgePoint(pr[1], cx, cy, tl, tr, br, bl, threshold)
				key := newSegKey(cx, cy, pr[0], pr[1])
				if _, exists := segByKey[key]; !exists {
					segByKey[key] = segment{a: a, b: b}
					order = append(order, key)
				}
			}
		}
	}

	// Chain segments into polylines by matching shared endpoints.
	type endpoint struct {
		p    segPoint
		key  segKey
		slot int // 0 = a, 1 = b
	}
	used := make(map[segKey]bool)

	near := func(p, q segPoint) bool {
		const eps = 1e-6
		dx, dy := p.X-q.X, p.Y-q.Y
		return dx*dx+dy*dy < eps
	}

	var contours []Contour
	for _, startKey := range order {
		if used[startKey] {
			continue
		}
		seg := segByKey[startKey]
		used[startKey] = true
		chain := []segPoint{seg.a, seg.b}

		extended := true
		for extended {
			extended = false
			tail := chain[len(chain)-1]
			for _, k := range order {
				if used[k] {
					continue
				}
				s := segByKey[k]
				switch {
				case near(s.a, tail):
					chain = append(chain, s.b)
					used[k] = true
					extended = true
				case near(s.b, tail):
					chain = append(chain, s.a)
					used[k] = true
					extended = true
				}
				if extended {
					break
				}
			}
		}

		pts := make([]raster.Point, len(chain))
		for i, p := range chain {
			pts[i] = raster.Point{X: p.X, Y: p.Y}
		}
		closed := len(pts) >= 3 && near(chain[0], chain[len(chain)-1])
		if len(pts) >= 3 {
			contours = append(contours, NewContour(pts, closed, false))
		}
	}

	return contours
}

func edgePoint(e edge, cx, cy int, tl, tr, br, bl, threshold float64) segPoint {
	switch e {
	case edgeTop:
		return segPoint{X: float64(cx) + lerp(tl, tr, threshold), Y: float64(cy)}
	case edgeRight:
		return segPoint{X: float64(cx + 1), Y: float64(cy) + lerp(tr, br, threshold)}
	case edgeBottom:
		return segPoint{X: float64(cx) + lerp(bl, br, threshold), Y: float64(cy + 1)}
	case edgeLeft:
		return segPoint{X: float64(cx), Y: float64(cy) + lerp(tl, bl, threshold)}
	default:
		panic(fmt.Sprintf("contour: unknown edge %d", e))
	}
}
