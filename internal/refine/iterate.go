package refine

import (
	"github.com/cadtrace/cadvec/internal/contour"
	"github.com/cadtrace/cadvec/internal/raster"
	"github.com/cadtrace/cadvec/internal/simplify"
	"github.com/cadtrace/cadvec/internal/vectorpath"
)

// Options configures the refinement iteration loop. Zero values are not
// valid defaults; use Defaults().
type Options struct {
	Tau               float64
	TargetF1          float64
	MaxIterations     int
	SnapRadius        int
	GapFillMinCluster int
	SpuriousThreshold float64
}

// Defaults returns the spec's documented refinement defaults.
func Defaults() Options {
	return Options{
		Tau:               2,
		TargetF1:          0.85,
		MaxIterations:     3,
		SnapRadius:        3,
		GapFillMinCluster: 20,
		SpuriousThreshold: 0.7,
	}
}

// Report records the outcome of a refinement run.
type Report struct {
	BeforeScore    Score
	AfterScore     Score
	IterationsUsed int
	Regressed      bool
}

// Refine runs the fixed-order iteration loop (remove-spurious, snap,
// adaptive-resimplify, gap-fill) against reference mask r until the target
// F1 is met or MaxIterations elapses, returning the refined paths and a
// Report.
func Refine(paths []vectorpath.Path, r *raster.BinaryMask, opts Options) ([]vectorpath.Path, Report) {
	width, height := r.Width, r.Height

	s := Rasterize(paths, width, height)
	before := Accuracy(r, s, opts.Tau)
	report := Report{BeforeScore: before, AfterScore: before}

	if before.F1 >= opts.TargetF1 {
		return paths, report
	}

	current := paths
	iterations := 0

	for iterations < opts.MaxIterations {
		s = Rasterize(current, width, height)
		score := Accuracy(r, s, opts.Tau)
		if score.F1 >= opts.TargetF1 {
			report.AfterScore = score
			report.IterationsUsed = iterations
			return current, report
		}

		distR := ChamferDistance(r)

		if score.Precision < opts.TargetF1 {
			current = removeSpurious(current, distR, opts.SpuriousThreshold)
		}

		current = snapToEdges(current, r, opts.SnapRadius)

		current = adaptiveResimplify(current, distR, opts.Tau)

		sAfterSnap := Rasterize(current, width, height)
		scoreAfterSnap := Accuracy(r, sAfterSnap, opts.Tau)
		if scoreAfterSnap.Recall < opts.TargetF1 {
			current = fillGaps(current, r, sAfterSnap, opts)
		}

		iterations++
	}

	final := Rasterize(current, width, height)
	finalScore := Accuracy(r, final, opts.Tau)
	report.IterationsUsed = iterations

	if finalScore.F1 < before.F1 {
		report.Regressed = true
		report.AfterScore = before
		return paths, report
	}

	report.AfterScore = finalScore
	return current, report
}

// removeSpurious drops any path with fewer than 3 points, or whose fraction
// of points lying farther than radius 2 from a reference pixel exceeds
// threshold.
func removeSpurious(paths []vectorpath.Path, distR *raster.DistanceField, threshold float64) []vectorpath.Path {
	const radius = 2
	out := make([]vectorpath.Path, 0, len(paths))
	for _, p := range paths {
		if len(p.Points) < 3 {
			continue
		}
		unmatched := 0
		for _, pt := range p.Points {
			if distR.At(int(pt.X), int(pt.Y)) > radius {
				unmatched++
			}
		}
		if float64(unmatched)/float64(len(p.Points)) > threshold {
			continue
		}
		out = append(out, p)
	}
	return out
}

// snapToEdges replaces each point not already on a reference pixel with the
// nearest reference pixel within a square of the given radius, breaking
// ties by smaller squared distance then scan order.
func snapToEdges(paths []vectorpath.Path, r *raster.BinaryMask, radius int) []vectorpath.Path {
	out := make([]vectorpath.Path, len(paths))
	for i, p := range paths {
		newPoints := make([]raster.Point, len(p.Points))
		for j, pt := range p.Points {
			x, y := int(pt.X), int(pt.Y)
			if r.At(x, y) > 0 {
				newPoints[j] = raster.Point{X: float64(x), Y: float64(y)}
				continue
			}
			bestX, bestY := x, y
			bestDist := -1
			found := false
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if r.At(nx, ny) == 0 {
						continue
					}
					d := dx*dx + dy*dy
					if !found || d < bestDist {
						found = true
						bestDist = d
						bestX, bestY = nx, ny
					}
				}
			}
			if found {
				newPoints[j] = raster.Point{X: float64(bestX), Y: float64(bestY)}
			} else {
				newPoints[j] = pt
			}
		}
		out[i] = p
		out[i].Points = newPoints
	}
	return out
}

// adaptiveResimplify re-runs Douglas-Peucker at half the default tolerance
// on any path whose mean reference distance exceeds tau.
func adaptiveResimplify(paths []vectorpath.Path, distR *raster.DistanceField, tau float64) []vectorpath.Path {
	out := make([]vectorpath.Path, len(paths))
	for i, p := range paths {
		if len(p.Points) == 0 {
			out[i] = p
			continue
		}
		sum := 0.0
		for _, pt := range p.Points {
			sum += distR.At(int(pt.X), int(pt.Y))
		}
		mean := sum / float64(len(p.Points))
		out[i] = p
		if mean > tau {
			out[i].Points = simplify.DouglasPeucker(p.Points, 0.5)
		}
	}
	return out
}

// fillGaps finds 8-connected components of the unmatched-reference mask
// (reference pixels farther than tau from the freshly rasterized path set),
// Moore-traces every component of size >= gapFillMinCluster, and appends
// the recovered contours as new black paths.
func fillGaps(paths []vectorpath.Path, r *raster.BinaryMask, sAfterSnap *raster.BinaryMask, opts Options) []vectorpath.Path {
	distS := ChamferDistance(sAfterSnap)
	w, h := r.Width, r.Height

	unmatched := raster.NewBinaryMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.At(x, y) > 0 && distS.At(x, y) > opts.Tau {
				unmatched.Set(x, y, true)
			}
		}
	}

	components := connectedComponents(unmatched)

	result := append([]vectorpath.Path(nil), paths...)
	for _, comp := range components {
		if len(comp) < opts.GapFillMinCluster {
			continue
		}
		compMask := raster.NewBinaryMask(w, h)
		for _, p := range comp {
			compMask.Set(p.x, p.y, true)
		}

		func() {
			defer func() { recover() }() // a pathological component trace should not abort the whole refinement run
			traced := contour.TraceMoore(compMask)
			traced = contour.FilterByArea(traced, 5, 0)
			for _, c := range traced {
				simplified := simplify.DouglasPeucker(c.Points, 1.0)
				result = append(result, vectorpath.Path{
					Points:      simplified,
					Closed:      c.Closed,
					Color:       raster.Color{A: 255},
					StrokeWidth: vectorpath.DefaultStrokeWidth,
				})
			}
		}()
	}

	return result
}

type pixelCoord struct{ x, y int }

func connectedComponents(mask *raster.BinaryMask) [][]pixelCoord {
	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	var components [][]pixelCoord

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if mask.At(sx, sy) == 0 || visited[sy*w+sx] {
				continue
			}
			var comp []pixelCoord
			stack := []pixelCoord{{sx, sy}}
			visited[sy*w+sx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp = append(comp, p)
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.x+dx, p.y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if visited[ny*w+nx] || mask.At(nx, ny) == 0 {
							continue
						}
						visited[ny*w+nx] = true
						stack = append(stack, pixelCoord{nx, ny})
					}
				}
			}
			components = append(components, comp)
		}
	}

	return components
}
