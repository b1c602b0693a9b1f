package contour

import "github.com/cadtrace/cadvec/internal/raster"

// SuzukiContour is a traced contour plus the hierarchy bookkeeping the
// Suzuki-Abe algorithm produces: its own label and its parent's label (0 for
// a top-level outer contour with no parent).
type SuzukiContour struct {
	Contour
	Label       int
	ParentLabel int
}

// TraceSuzuki labels regions and traces both outer and hole (inner)
// boundaries, recording a child->parent mapping by label as it goes.
//
// An outer-contour start is a foreground pixel whose left neighbor is
// background. An inner-contour (hole) start is a foreground pixel whose
// below neighbor is background while the pixel itself already carries an
// outer label. Outer traces seed their initial backtrack direction "from the
// right" (east); inner traces seed it "from the left" (west).
func TraceSuzuki(mask *raster.BinaryMask) []SuzukiContour {
	w, h := mask.Width, mask.Height
	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.Pix[y*w+x] > 0
	}

	labels := make([]int, w*h)
	nextLabel := 1
	var results []SuzukiContour
	// lastLabelAt returns the label already assigned at (x,y), or 0 when
	// (x,y) is out of range or unlabeled; a hole start takes the label at its
	// own pixel as its parent.
	lastLabelAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return labels[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg(x, y) {
				continue
			}

			isOuterStart := !fg(x-1, y) && labels[y*w+x] == 0
			isHoleStart := !fg(x, y+1) && labels[y*w+x] != 0

			if isOuterStart {
				label := nextLabel
				nextLabel++
				boundary, visited := traceBlobBoundaryLabeled(x, y, fg, 2) // seed "from the right" (east=2)
				for _, p := range visited {
					px, py := int(p.X), int(p.Y)
					if labels[py*w+px] == 0 {
						labels[py*w+px] = label
					}
				}
				if len(boundary) >= 3 {
					results = append(results, SuzukiContour{
						Contour:     NewContour(boundary, true, false),
						Label:       label,
						ParentLabel: 0,
					})
				}
			} else if isHoleStart {
				parent := lastLabelAt(x, y)
				label := nextLabel
				nextLabel++
				boundary, visited := traceBlobBoundaryLabeled(x, y, fg, 6) // seed "from the left" (west=6)
				for _, p := range visited {
					px, py := int(p.X), int(p.Y)
					if labels[py*w+px] == 0 {
						labels[py*w+px] = label
					}
				}
				if len(boundary) >= 3 {
					results = append(results, SuzukiContour{
						Contour:     NewContour(boundary, true, true),
						Label:       label,
						ParentLabel: parent,
					})
				}
			}
		}
	}

	return results
}

// traceBlobBoundaryLabeled is Moore-neighbor tracing seeded with an explicit
// initial "came from" direction (an index into mooreOffsets) instead of the
// fixed west assumption TraceMoore uses, as Suzuki-Abe seeds outer and inner
// contours from opposite sides. It returns both the polyline and every
// pixel visited along the way (for labeling).
func traceBlobBoundaryLabeled(startX, startY int, fg func(x, y int) bool, seedBackDir int) ([]raster.Point, []raster.Point) {
	points := []raster.Point{{X: float64(startX), Y: float64(startY)}}
	visited := []raster.Point{{X: float64(startX), Y: float64(startY)}}
	x, y := startX, startY
	backDir := seedBackDir

	cap := 1 << 20
	for step := 0; step < cap; step++ {
		found := false
		var nx, ny, nDir int
		for k := 0; k < 8; k++ {
			dir := (backDir + 5 + k) % 8
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
		visited = append(visited, raster.Point{X: float64(x), Y: float64(y)})
		if x == startX && y == startY && len(points) >= 3 {
			break
		}
		points = append(points, raster.Point{X: float64(x), Y: float64(y)})
	}

	return points, visited
}
