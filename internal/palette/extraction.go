package palette

import "github.com/cadtrace/cadvec/internal/raster"

func quantizeChannel8(v uint8) int { return int(v) / 32 } // 256/8 = 32 per bin

func isNearWhite(c raster.Color) bool {
	return c.R > 240 && c.G > 240 && c.B > 240
}

// ExtractPalette scans all opaque pixels sufficiently far from the
// background color, bins them by 8-per-channel quantization, keeps bins
// occupying more than 0.1% of all sampled pixels, sorts by count
// descending, and returns up to the top 10 candidate line colors. Falls
// back to pure black if nothing qualifies. When perceptual is true, the
// background-distance check uses Lab distance instead of RGB distance.
func ExtractPalette(img *raster.Image, background raster.Color, perceptual bool) []raster.Color {
	distance := DistanceRGB
	backgroundThreshold := 30.0
	if perceptual {
		distance = DistanceLab
		backgroundThreshold = 10.0 // Lab distance has a much smaller natural scale than 0-255 RGB distance
	}
	type binKey struct{ r, g, b int }
	type binAgg struct {
		sumR, sumG, sumB int64
		count            int
	}
	bins := make(map[binKey]*binAgg)
	var order []binKey
	backgroundIsLight := background.R > 200 && background.G > 200 && background.B > 200

	total := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			if c.A < 128 {
				continue
			}
			if distance(c, background) <= backgroundThreshold {
				continue
			}
			if backgroundIsLight && isNearWhite(c) {
				continue
			}
			total++
			k := binKey{quantizeChannel8(c.R), quantizeChannel8(c.G), quantizeChannel8(c.B)}
			agg, ok := bins[k]
			if !ok {
				agg = &binAgg{}
				bins[k] = agg
				order = append(order, k)
			}
			agg.sumR += int64(c.R)
			agg.sumG += int64(c.G)
			agg.sumB += int64(c.B)
			agg.count++
		}
	}

	if total == 0 {
		return []raster.Color{{A: 255}}
	}

	type candidate struct {
		color raster.Color
		count int
	}
	var candidates []candidate
	for _, k := range order {
		agg := bins[k]
		if float64(agg.count)/float64(total) <= 0.001 {
			continue
		}
		candidates = append(candidates, candidate{
			color: raster.Color{
				R: uint8(agg.sumR / int64(agg.count)),
				G: uint8(agg.sumG / int64(agg.count)),
				B: uint8(agg.sumB / int64(agg.count)),
				A: 255,
			},
			count: agg.count,
		})
	}

	if len(candidates) == 0 {
		return []raster.Color{{A: 255}}
	}

	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].count > candidates[j-1].count; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	if len(candidates) > 10 {
		candidates = candidates[:10]
	}
	out := make([]raster.Color, len(candidates))
	for i, c := range candidates {
		out[i] = c.color
	}
	return out
}
