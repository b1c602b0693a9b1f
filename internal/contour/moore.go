package contour

import "github.com/cadtrace/cadvec/internal/raster"

// mooreOffsets is the clockwise 8-neighborhood used by Moore boundary
// tracing, indexed the same way as the backtrack-direction math below.
var mooreOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// TraceMoore raster-scans for the leftmost foreground pixel of each
// unvisited blob and traces its 8-connected boundary with Moore-neighbor
// tracing, restarting each per-step clockwise search one step past the
// backtrack direction, which is the last move direction offset by 5 (mod 8).
func TraceMoore(mask *raster.BinaryMask) []Contour {
	w, h := mask.Width, mask.Height
	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.Pix[y*w+x] > 0
	}
	visited := make([]bool, w*h)

	var contours []Contour

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if !fg(sx, sy) || visited[sy*w+sx] {
				continue
			}
			boundary := traceBlobBoundary(sx, sy, fg)
			for _, p := range boundary {
				visited[int(p.Y)*w+int(p.X)] = true
			}
			if len(boundary) >= 3 {
				contours = append(contours, NewContour(boundary, true, false))
			} else {
				// Isolated pixel or degenerate blob: still mark visited so
				// the outer scan doesn't loop forever re-examining it.
				visited[sy*w+sx] = true
			}
		}
	}

	return contours
}

// traceBlobBoundary performs the Moore-neighbor trace for a single blob
// starting at (startX,startY), the leftmost pixel found by the raster scan.
// backDir is the direction (index into mooreOffsets) pointing from the
// current pixel back to where we came from; the next clockwise search starts
// at (backDir+1)%8 so it never immediately steps back.
func traceBlobBoundary(startX, startY int, fg func(x, y int) bool) []raster.Point {
	points := []raster.Point{{X: float64(startX), Y: float64(startY)}}
	x, y := startX, startY
	// Entered from the left (background), so the initial backtrack
	// direction is west (index 6).
	backDir := 6

	cap := 1 << 20
	for step := 0; step < cap; step++ {
		found := false
		var nx, ny, nDir int
		for k := 0; k < 8; k++ {
			dir := (backDir + 1 + k) % 8
			off := mooreOffsets[dir]
			tx, ty := x+off[0], y+off[1]
			if fg(tx, ty) {
				nx, ny, nDir = tx, ty, dir
				found = true
				break
			}
		}
		if !found {
			break
		}
		x, y = nx, ny
		backDir = (nDir + 4) % 8
		if x == startX && y == startY && len(points) >= 3 {
			break
		}
		points = append(points, raster.Point{X: float64(x), Y: float64(y)})
	}

	return points
}
