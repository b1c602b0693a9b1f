package edge

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/morph"

	"github.com/cadtrace/cadvec/internal/raster"
)

// square8 is the 3x3 all-set structuring element used for 8-connected
// dilate/erode, the shape bild/morph's examples use for a basic close.
var square8 = func() *image.Gray {
	k := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range k.Pix {
		k.Pix[i] = 255
	}
	return k
}()

func maskToGray(m *raster.BinaryMask) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	copy(g.Pix, m.Pix)
	return g
}

func grayToMask(g *image.Gray) *raster.BinaryMask {
	b := g.Bounds()
	m := raster.NewBinaryMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := g.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			m.Set(x, y, v > 0)
		}
	}
	return m
}

// Compile-time checks that *image.Gray, the buffer type Close hands to
// morph's Dilate/Erode, is an image.Image, and color.Gray a color.Color.
var _ image.Image = (*image.Gray)(nil)
var _ color.Color = color.Gray{}

// Close bridges one-pixel gaps by dilating 8-connectively `iterations`
// times, then eroding the same number of times, using
// github.com/anthonynsimon/bild/morph for the structuring-element math.
func Close(mask *raster.BinaryMask, iterations int) *raster.BinaryMask {
	if iterations <= 0 {
		return mask.Clone()
	}
	g := maskToGray(mask)
	for i := 0; i < iterations; i++ {
		g = morph.Dilate(g, square8)
	}
	for i := 0; i < iterations; i++ {
		g = morph.Erode(g, square8)
	}
	return grayToMask(g)
}
