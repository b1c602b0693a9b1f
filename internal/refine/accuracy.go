package refine

import "github.com/cadtrace/cadvec/internal/raster"

// Score is a point-in-time accuracy snapshot comparing a rendered mask S
// against a reference mask R.
type Score struct {
	Precision         float64
	Recall            float64
	F1                float64
	MeanDistanceError float64
	SVGMatched        int
	RefMatched        int
	TotalSVGPixels    int
	TotalRefPixels    int
}

// Accuracy scores rendered mask s against reference mask r at tolerance tau.
// Both distance fields are computed internally: distTransform(R) for
// precision/meanDistanceError, distTransform(S) for recall.
func Accuracy(r, s *raster.BinaryMask, tau float64) Score {
	distR := ChamferDistance(r)
	distS := ChamferDistance(s)

	var svgMatched, totalS int
	var sumDist float64
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if s.At(x, y) == 0 {
				continue
			}
			totalS++
			d := distR.At(x, y)
			sumDist += d
			if d <= tau {
				svgMatched++
			}
		}
	}

	var refMatched, totalR int
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.At(x, y) == 0 {
				continue
			}
			totalR++
			if distS.At(x, y) <= tau {
				refMatched++
			}
		}
	}

	score := Score{SVGMatched: svgMatched, RefMatched: refMatched, TotalSVGPixels: totalS, TotalRefPixels: totalR}
	if totalS > 0 {
		score.Precision = float64(svgMatched) / float64(totalS)
		score.MeanDistanceError = sumDist / float64(totalS)
	}
	if totalR > 0 {
		score.Recall = float64(refMatched) / float64(totalR)
	}
	if score.Precision+score.Recall > 0 {
		score.F1 = 2 * score.Precision * score.Recall / (score.Precision + score.Recall)
	}
	return score
}
