package preprocess

import (
	stdimage "image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/cadtrace/cadvec/internal/raster"
)

// BlurViaImaging is an alternate RGBA blur path built on
// github.com/disintegration/imaging's Gaussian blur, for callers who want a
// library-backed blur over full-color input rather than the literal
// separable-kernel implementation GaussianBlurRGBA provides. The two are
// not guaranteed to agree bit-for-bit; use GaussianBlurRGBA when the output
// must match the separable kernel exactly.
func BlurViaImaging(img *raster.Image, sigma float64) *raster.Image {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			src.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}

	blurred := imaging.Blur(src, sigma)

	out := raster.NewImage(img.Width, img.Height)
	bounds := blurred.Bounds()
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, a := blurred.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, raster.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
	return out
}
