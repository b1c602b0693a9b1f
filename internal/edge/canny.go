package edge

import (
	"math"

	"github.com/cadtrace/cadvec/internal/preprocess"
	"github.com/cadtrace/cadvec/internal/raster"
)

// CannyOptions configures the Canny edge detector.
type CannyOptions struct {
	// Sigma is the Gaussian blur standard deviation applied before Sobel.
	Sigma float64
	// Low and High are the dual hysteresis thresholds in [0,255].
	Low, High float64
}

var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// sobel computes gradient magnitude/direction over a grayscale buffer.
func sobel(g *raster.GrayBuffer) *raster.Gradient {
	out := raster.NewGradient(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := float64(g.At(clampCoord(x+kx, g.Width), clampCoord(y+ky, g.Height)))
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			i := y*g.Width + x
			out.Magnitude[i] = math.Sqrt(gx*gx + gy*gy)
			out.Direction[i] = math.Atan2(gy, gx)
		}
	}
	return out
}

func clampCoord(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// nonMaxSuppress keeps a gradient magnitude only if it is the local maximum
// along one of the four quantized gradient-direction sectors.
func nonMaxSuppress(grad *raster.Gradient) []float64 {
	w, h := grad.Width, grad.Height
	out := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			angle := grad.DirAt(x, y)
			mag := grad.MagAt(x, y)

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = grad.MagAt(x-1, y), grad.MagAt(x+1, y)
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = grad.MagAt(x+1, y-1), grad.MagAt(x-1, y+1)
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = grad.MagAt(x, y-1), grad.MagAt(x, y+1)
			default:
				n1, n2 = grad.MagAt(x-1, y-1), grad.MagAt(x+1, y+1)
			}

			if mag >= n1 && mag >= n2 {
				out[y*w+x] = mag
			}
		}
	}
	return out
}

const (
	weak   = 50
	strong = 255
)

// doubleThreshold maps suppressed magnitudes to {0, weak, strong}.
func doubleThreshold(suppressed []float64, w, h int, low, high float64) []uint8 {
	out := make([]uint8, w*h)
	for i, v := range suppressed {
		switch {
		case v >= high:
			out[i] = strong
		case v >= low:
			out[i] = weak
		default:
			out[i] = 0
		}
	}
	return out
}

// hysteresis promotes weak pixels 8-adjacent to a strong pixel, iterating
// until stable, then demotes any remaining weak pixels to 0.
func hysteresis(labels []uint8, w, h int) *raster.BinaryMask {
	at := func(x, y int) uint8 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return labels[y*w+x]
	}

	for {
		changed := false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if at(x, y) != weak {
					continue
				}
				promote := false
				for ky := -1; ky <= 1 && !promote; ky++ {
					for kx := -1; kx <= 1 && !promote; kx++ {
						if kx == 0 && ky == 0 {
							continue
						}
						if at(x+kx, y+ky) == strong {
							promote = true
						}
					}
				}
				if promote {
					labels[y*w+x] = strong
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	out := raster.NewBinaryMask(w, h)
	for i, v := range labels {
		out.Pix[i] = 0
		if v == strong {
			out.Pix[i] = 255
		}
	}
	return out
}

// Canny runs the full Gaussian -> Sobel -> non-max-suppression -> hysteresis
// pipeline over a grayscale buffer.
func Canny(g *raster.GrayBuffer, opts CannyOptions) *raster.BinaryMask {
	blurred := preprocess.GaussianBlur(g, opts.Sigma)
	grad := sobel(blurred)
	suppressed := nonMaxSuppress(grad)
	labels := doubleThreshold(suppressed, g.Width, g.Height, opts.Low, opts.High)
	return hysteresis(labels, g.Width, g.Height)
}
