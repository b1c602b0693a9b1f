package palette

import (
	"github.com/cadtrace/cadvec/internal/raster"
)

// SampleColor samples pixel colors at up to 10 evenly spaced indices along
// the polyline, averages them, and snaps to the nearest palette entry by
// Euclidean RGB distance.
func SampleColor(img *raster.Image, points []raster.Point, candidates []raster.Color) raster.Color {
	if len(points) == 0 || len(candidates) == 0 {
		return raster.Color{A: 255}
	}

	n := len(points)
	samples := 10
	if samples > n {
		samples = n
	}

	var sr, sg, sb, sa int64
	for i := 0; i < samples; i++ {
		idx := i * (n - 1) / maxInt(samples-1, 1)
		p := points[idx]
		c := img.At(int(p.X), int(p.Y))
		sr += int64(c.R)
		sg += int64(c.G)
		sb += int64(c.B)
		sa += int64(c.A)
	}
	mean := raster.Color{
		R: uint8(sr / int64(samples)),
		G: uint8(sg / int64(samples)),
		B: uint8(sb / int64(samples)),
		A: uint8(sa / int64(samples)),
	}

	return SnapToPalette(mean, candidates)
}

// SnapToPalette returns the palette entry nearest c by Euclidean RGB
// distance.
func SnapToPalette(c raster.Color, candidates []raster.Color) raster.Color {
	best := candidates[0]
	bestDist := DistanceRGB(c, best)
	for _, cand := range candidates[1:] {
		if d := DistanceRGB(c, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
