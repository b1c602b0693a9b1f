package preprocess

import (
	"math"
	"testing"

	"github.com/cadtrace/cadvec/internal/raster"
)

func solidImage(w, h int, c raster.Color) *raster.Image {
	img := raster.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestInvert(t *testing.T) {
	img := solidImage(4, 4, raster.Color{R: 10, G: 20, B: 30, A: 255})
	out := Invert(img)
	got := out.At(0, 0)
	if got.R != 245 || got.G != 235 || got.B != 225 || got.A != 255 {
		t.Errorf("Invert = %+v, want (245,235,225,255)", got)
	}
}

func TestGrayscale_PureGrayRoundTrip(t *testing.T) {
	// For r=g=b=v, luminance(p) must equal v.
	for _, v := range []uint8{0, 1, 50, 128, 200, 255} {
		img := solidImage(3, 3, raster.Color{R: v, G: v, B: v, A: 255})
		gray := Grayscale(img)
		if got := gray.At(1, 1); got != v {
			t.Errorf("luminance(%d,%d,%d) = %d, want %d", v, v, v, got, v)
		}
	}
}

func TestGrayscale_KnownWeights(t *testing.T) {
	img := solidImage(1, 1, raster.Color{R: 255, G: 0, B: 0, A: 255})
	gray := Grayscale(img)
	want := uint8(math.Round(0.299 * 255))
	if got := gray.At(0, 0); got != want {
		t.Errorf("red luminance = %d, want %d", got, want)
	}
}

func TestGaussianBlur_MassPreserving(t *testing.T) {
	width, height := 32, 32
	gray := raster.NewGrayBuffer(width, height)
	sum := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x*7 + y*13) % 256)
			gray.Set(x, y, v)
			sum += int(v)
		}
	}

	blurred := GaussianBlur(gray, 1.5)
	blurredSum := 0
	for _, v := range blurred.Pix {
		blurredSum += int(v)
	}

	tolerance := 0.5 * float64(width*height)
	if math.Abs(float64(sum-blurredSum)) > tolerance {
		t.Errorf("mass not preserved: input sum %d, blurred sum %d (tolerance %v)", sum, blurredSum, tolerance)
	}
}

func TestGaussianBlur_UniformStaysUniform(t *testing.T) {
	gray := raster.NewGrayBuffer(20, 20)
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}
	blurred := GaussianBlur(gray, 2.0)
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			if blurred.At(x, y) != 128 {
				t.Errorf("blurred(%d,%d) = %d, want 128 for uniform input", x, y, blurred.At(x, y))
			}
		}
	}
}

func TestGaussianBlur_ZeroSigmaIsIdentity(t *testing.T) {
	gray := raster.NewGrayBuffer(5, 5)
	gray.Set(2, 2, 200)
	blurred := GaussianBlur(gray, 0)
	for i := range gray.Pix {
		if blurred.Pix[i] != gray.Pix[i] {
			t.Fatalf("sigma=0 should be identity; differs at index %d", i)
		}
	}
}

func TestMedianFilter_RemovesSaltPepper(t *testing.T) {
	img := solidImage(5, 5, raster.Color{R: 100, G: 100, B: 100, A: 255})
	img.Set(2, 2, raster.Color{R: 255, G: 255, B: 255, A: 255}) // single outlier pixel

	out := MedianFilter(img)
	got := out.At(2, 2)
	if got.R != 100 {
		t.Errorf("median filter should suppress a single outlier, got R=%d", got.R)
	}
}

func TestMedianFilter_PreservesUniform(t *testing.T) {
	img := solidImage(6, 6, raster.Color{R: 50, G: 60, B: 70, A: 255})
	out := MedianFilter(img)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if out.At(x, y) != (raster.Color{R: 50, G: 60, B: 70, A: 255}) {
				t.Fatalf("median of uniform image should be unchanged at (%d,%d)", x, y)
			}
		}
	}
}

func TestClampCoord(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{-1, 10, 0},
		{5, 10, 5},
		{10, 10, 9},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := clampCoord(tt.v, tt.n); got != tt.want {
			t.Errorf("clampCoord(%d,%d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}
