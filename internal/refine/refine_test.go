package refine

import (
	"math"
	"testing"

	"github.com/cadtrace/cadvec/internal/raster"
	"github.com/cadtrace/cadvec/internal/vectorpath"
)

func horizontalLinePath(y float64, x0, x1 int) vectorpath.Path {
	pts := []raster.Point{}
	for x := x0; x <= x1; x++ {
		pts = append(pts, raster.Point{X: float64(x), Y: y})
	}
	return vectorpath.Path{Points: pts, Color: raster.Color{A: 255}, StrokeWidth: 1}
}

func TestRasterize_DrawsStraightLine(t *testing.T) {
	path := horizontalLinePath(5, 0, 9)
	mask := Rasterize([]vectorpath.Path{path}, 10, 10)
	for x := 0; x < 10; x++ {
		if mask.At(x, 5) == 0 {
			t.Errorf("expected pixel (%d,5) to be set", x)
		}
	}
}

func TestRasterize_ClosesLoop(t *testing.T) {
	square := vectorpath.Path{
		Points: []raster.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}},
		Closed: true,
	}
	mask := Rasterize([]vectorpath.Path{square}, 10, 10)
	if mask.At(2, 5) == 0 {
		t.Error("expected the closing edge between last and first point to be rasterized")
	}
}

func TestChamferDistance_ZeroAtSource(t *testing.T) {
	mask := raster.NewBinaryMask(10, 10)
	mask.Set(5, 5, true)
	field := ChamferDistance(mask)
	if field.At(5, 5) != 0 {
		t.Errorf("expected distance 0 at source pixel, got %v", field.At(5, 5))
	}
	if field.At(6, 5) <= 0 || field.At(6, 5) > 1.5 {
		t.Errorf("expected a small positive distance at an adjacent pixel, got %v", field.At(6, 5))
	}
}

func TestChamferDistance_ApproximatesEuclidean(t *testing.T) {
	mask := raster.NewBinaryMask(30, 30)
	mask.Set(15, 15, true)
	field := ChamferDistance(mask)

	for _, p := range []struct{ x, y int }{{20, 15}, {15, 22}, {20, 20}} {
		want := math.Hypot(float64(p.x-15), float64(p.y-15))
		got := field.At(p.x, p.y)
		if got > want*1.1 {
			t.Errorf("chamfer distance at (%d,%d) = %v overshoots Euclidean %v by more than 10%%", p.x, p.y, got, want)
		}
	}
}

func TestAccuracy_PerfectMatchIsF1One(t *testing.T) {
	mask := raster.NewBinaryMask(10, 10)
	mask.Set(3, 3, true)
	mask.Set(4, 4, true)
	score := Accuracy(mask, mask, 0)
	if score.F1 != 1 {
		t.Errorf("expected F1=1 for identical masks, got %v", score.F1)
	}
}

func TestAccuracy_EmptyRenderedYieldsZero(t *testing.T) {
	r := raster.NewBinaryMask(10, 10)
	r.Set(5, 5, true)
	s := raster.NewBinaryMask(10, 10)
	score := Accuracy(r, s, 2)
	if score.Precision != 0 || score.F1 != 0 {
		t.Errorf("expected zero precision/F1 for an empty rendered mask, got %+v", score)
	}
}

func TestAccuracy_BoundsInZeroOne(t *testing.T) {
	r := raster.NewBinaryMask(10, 10)
	r.Set(2, 2, true)
	r.Set(8, 8, true)
	s := raster.NewBinaryMask(10, 10)
	s.Set(2, 2, true)
	s.Set(3, 3, true)
	score := Accuracy(r, s, 2)
	for _, v := range []float64{score.Precision, score.Recall, score.F1} {
		if v < 0 || v > 1 {
			t.Errorf("expected accuracy metrics in [0,1], got %v", v)
		}
	}
}

func TestRefine_StopsEarlyWhenTargetAlreadyMet(t *testing.T) {
	r := raster.NewBinaryMask(10, 10)
	for x := 0; x < 10; x++ {
		r.Set(x, 5, true)
	}
	path := horizontalLinePath(5, 0, 9)

	opts := Defaults()
	_, report := Refine([]vectorpath.Path{path}, r, opts)
	if report.IterationsUsed != 0 {
		t.Errorf("expected 0 iterations when the initial score already meets target, got %d", report.IterationsUsed)
	}
	if report.BeforeScore.F1 < opts.TargetF1 {
		t.Errorf("expected before-score to already meet target, got %v", report.BeforeScore.F1)
	}
}

func TestRefine_NeverRegressesBelowBeforeScoreByMuch(t *testing.T) {
	r := raster.NewBinaryMask(30, 30)
	for x := 2; x < 28; x++ {
		r.Set(x, 15, true)
	}
	// A noisy, partially-off path.
	path := vectorpath.Path{
		Points: []raster.Point{{X: 2, Y: 16}, {X: 10, Y: 14}, {X: 20, Y: 16}, {X: 27, Y: 15}},
		Color:  raster.Color{A: 255},
	}

	opts := Defaults()
	_, report := Refine([]vectorpath.Path{path}, r, opts)
	if report.AfterScore.F1 < report.BeforeScore.F1 {
		t.Errorf("refinement must never return a lower F1 than before-score: before=%v after=%v", report.BeforeScore.F1, report.AfterScore.F1)
	}
}

func TestRefine_RegressionFallsBackToOriginalPaths(t *testing.T) {
	r := raster.NewBinaryMask(20, 20)
	for x := 2; x < 18; x++ {
		r.Set(x, 10, true)
	}
	// A single short, noisy path nowhere near the target accuracy; with very
	// aggressive removal it is plausible for iteration to strip it to
	// nothing, which must not make the reported after-score worse than
	// never having refined at all.
	path := vectorpath.Path{
		Points: []raster.Point{{X: 2, Y: 0}, {X: 5, Y: 19}, {X: 8, Y: 0}},
		Color:  raster.Color{A: 255},
	}

	opts := Defaults()
	opts.SpuriousThreshold = 0
	opts.MaxIterations = 1
	refined, report := Refine([]vectorpath.Path{path}, r, opts)

	if report.AfterScore.F1 < report.BeforeScore.F1 {
		t.Errorf("after-score regressed without being reported: before=%v after=%v regressed=%v",
			report.BeforeScore.F1, report.AfterScore.F1, report.Regressed)
	}
	if report.Regressed && len(refined) != 1 {
		t.Errorf("expected a regression to fall back to the original single path, got %d paths", len(refined))
	}
}
