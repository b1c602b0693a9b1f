package contour

import "github.com/cadtrace/cadvec/internal/raster"

// directionOrder is the fixed neighbor search order edge-chain walking uses
// when choosing the next unvisited foreground pixel: N, NE, E, SE, S, SW, W, NW.
var directionOrder = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// TraceEdgeChain walks a thinned (skeletonized) BinaryMask into open
// polylines. Endpoints (foreground pixels with exactly one foreground
// 8-neighbor) seed pass 1; any pixels left over (closed loops with no
// endpoint) seed pass 2.
func TraceEdgeChain(mask *raster.BinaryMask) []Contour {
	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.Pix[y*w+x] > 0
	}
	idx := func(x, y int) int { return y*w + x }

	neighborCount := func(x, y int) int {
		n := 0
		for _, d := range directionOrder {
			if fg(x+d[0], y+d[1]) {
				n++
			}
		}
		return n
	}

	walk := func(startX, startY int) []raster.Point {
		cap := w * h
		points := []raster.Point{{X: float64(startX), Y: float64(startY)}}
		visited[idx(startX, startY)] = true
		x, y := startX, startY
		for step := 0; step < cap; step++ {
			found := false
			for _, d := range directionOrder {
				nx, ny := x+d[0], y+d[1]
				if fg(nx, ny) && !visited[idx(nx, ny)] {
					visited[idx(nx, ny)] = true
					points = append(points, raster.Point{X: float64(nx), Y: float64(ny)})
					x, y = nx, ny
					found = true
					break
				}
			}
			if !found {
				break
			}
		}
		return points
	}

	var contours []Contour

	// Pass 1: endpoints.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg(x, y) || visited[idx(x, y)] {
				continue
			}
			if neighborCount(x, y) != 1 {
				continue
			}
			chain := walk(x, y)
			if len(chain) >= 3 {
				contours = append(contours, NewContour(chain, false, false))
			}
		}
	}

	// Pass 2: remaining pixels (closed loops, no endpoints).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg(x, y) || visited[idx(x, y)] {
				continue
			}
			chain := walk(x, y)
			if len(chain) >= 3 {
				contours = append(contours, NewContour(chain, false, false))
			}
		}
	}

	return contours
}
