package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/cadtrace/cadvec/internal/raster"
)

func toColorful(c raster.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// DistanceRGB is the Euclidean RGB distance between two colors, scaled back
// into the 0-255 channel space the spec's literal thresholds (30, 0.1%,
// etc.) are written against.
func DistanceRGB(a, b raster.Color) float64 {
	return toColorful(a).DistanceRgb(toColorful(b)) * 255
}

// DistanceLab is the perceptual Lab distance between two colors, used for
// the optional "perceptual" quantize mode. go-colorful's Lab components are
// scaled down by 100, so the result is multiplied back onto the usual
// 0-100 L* scale the perceptual thresholds are written against.
func DistanceLab(a, b raster.Color) float64 {
	return toColorful(a).DistanceLab(toColorful(b)) * 100
}
