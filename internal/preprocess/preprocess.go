package preprocess

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/cadtrace/cadvec/internal/raster"
)

// Invert flips every color channel (x -> 255-x); alpha is preserved.
func Invert(img *raster.Image) *raster.Image {
	out := raster.NewImage(img.Width, img.Height)
	parallel.Line(img.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < img.Width; x++ {
				c := img.At(x, y)
				out.Set(x, y, raster.Color{
					R: 255 - c.R,
					G: 255 - c.G,
					B: 255 - c.B,
					A: c.A,
				})
			}
		}
	})
	return out
}

// Grayscale reduces an Image to luminance using the ITU-R BT.601 weights
// 0.299*R + 0.587*G + 0.114*B, rounded to the nearest integer.
func Grayscale(img *raster.Image) *raster.GrayBuffer {
	out := raster.NewGrayBuffer(img.Width, img.Height)
	parallel.Line(img.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < img.Width; x++ {
				c := img.At(x, y)
				lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
				out.Set(x, y, uint8(math.Round(lum)))
			}
		}
	})
	return out
}

// clampCoord clamps a convolution index into [0, n-1].
func clampCoord(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// gaussianKernel1D returns a normalized 1-D Gaussian kernel with half-width
// ceil(3*sigma). sigma <= 0 returns the identity kernel [1].
func gaussianKernel1D(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur applies a separable Gaussian blur to a grayscale buffer: a
// horizontal pass through a Float32 scratch buffer followed by a vertical
// pass. Boundary handling is clamped (edge pixels repeat).
func GaussianBlur(g *raster.GrayBuffer, sigma float64) *raster.GrayBuffer {
	kernel := gaussianKernel1D(sigma)
	radius := len(kernel) / 2
	width, height := g.Width, g.Height

	scratch := make([]float32, width*height)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				var sum float64
				for k := -radius; k <= radius; k++ {
					px := clampCoord(x+k, width)
					sum += float64(g.At(px, y)) * kernel[k+radius]
				}
				scratch[y*width+x] = float32(sum)
			}
		}
	})

	out := raster.NewGrayBuffer(width, height)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				var sum float64
				for k := -radius; k <= radius; k++ {
					py := clampCoord(y+k, height)
					sum += float64(scratch[py*width+x]) * kernel[k+radius]
				}
				v := math.Round(sum)
				if v < 0 {
					v = 0
				}
				if v > 255 {
					v = 255
				}
				out.Set(x, y, uint8(v))
			}
		}
	})
	return out
}

// GaussianBlurRGBA applies the same separable blur independently to each of
// an Image's R, G and B channels (alpha is passed through unchanged), for
// use ahead of skeletonization/Canny on a color source image.
func GaussianBlurRGBA(img *raster.Image, sigma float64) *raster.Image {
	r := raster.NewGrayBuffer(img.Width, img.Height)
	gC := raster.NewGrayBuffer(img.Width, img.Height)
	b := raster.NewGrayBuffer(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			r.Set(x, y, c.R)
			gC.Set(x, y, c.G)
			b.Set(x, y, c.B)
		}
	}
	rb := GaussianBlur(r, sigma)
	gb := GaussianBlur(gC, sigma)
	bb := GaussianBlur(b, sigma)

	out := raster.NewImage(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.Set(x, y, raster.Color{R: rb.At(x, y), G: gb.At(x, y), B: bb.At(x, y), A: img.At(x, y).A})
		}
	}
	return out
}

// MedianFilter applies a 3x3 median filter per channel (R, G, B; alpha is
// passed through), using the sorted middle of the 9-sample window with
// clamped boundary handling.
func MedianFilter(img *raster.Image) *raster.Image {
	out := raster.NewImage(img.Width, img.Height)
	parallel.Line(img.Height, func(start, end int) {
		var rs, gs, bs [9]uint8
		for y := start; y < end; y++ {
			for x := 0; x < img.Width; x++ {
				n := 0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						c := img.At(clampCoord(x+kx, img.Width), clampCoord(y+ky, img.Height))
						rs[n], gs[n], bs[n] = c.R, c.G, c.B
						n++
					}
				}
				sortBytes9(&rs)
				sortBytes9(&gs)
				sortBytes9(&bs)
				out.Set(x, y, raster.Color{R: rs[4], G: gs[4], B: bs[4], A: img.At(x, y).A})
			}
		}
	})
	return out
}

// sortBytes9 sorts a fixed 9-element window in place (insertion sort; the
// window is small enough that this beats the overhead of sort.Slice).
func sortBytes9(a *[9]uint8) {
	for i := 1; i < 9; i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
