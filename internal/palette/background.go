package palette

import "github.com/cadtrace/cadvec/internal/raster"

// quantizeChannel16 bins a channel value into one of 16 bins by integer
// division.
func quantizeChannel16(v uint8) int { return int(v) / 16 }

// DetectBackground collects the colors of all border pixels (top/bottom
// rows, left/right columns), quantizes each RGB channel into 16 bins,
// histograms the (r,g,b) bin tuples, and returns the center-of-bin
// representative color of the most common bin whose alpha >= 128.
func DetectBackground(img *raster.Image) raster.Color {
	type binKey struct{ r, g, b int }
	counts := make(map[binKey]int)
	var order []binKey

	visit := func(x, y int) {
		c := img.At(x, y)
		if c.A < 128 {
			return
		}
		k := binKey{quantizeChannel16(c.R), quantizeChannel16(c.G), quantizeChannel16(c.B)}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	for x := 0; x < img.Width; x++ {
		visit(x, 0)
		visit(x, img.Height-1)
	}
	for y := 0; y < img.Height; y++ {
		visit(0, y)
		visit(img.Width-1, y)
	}

	if len(order) == 0 {
		return raster.Color{R: 255, G: 255, B: 255, A: 255}
	}

	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}

	center := func(bin int) uint8 {
		v := bin*16 + 8
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return raster.Color{R: center(best.r), G: center(best.g), B: center(best.b), A: 255}
}
