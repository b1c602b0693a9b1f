package edge

import (
	"testing"

	"github.com/cadtrace/cadvec/internal/raster"
)

func grayWithHorizontalLine(w, h, row int) *raster.GrayBuffer {
	g := raster.NewGrayBuffer(w, h)
	for i := range g.Pix {
		g.Pix[i] = 255 // white background
	}
	for x := 0; x < w; x++ {
		g.Set(x, row, 0) // black line
	}
	return g
}

func TestThreshold(t *testing.T) {
	g := grayWithHorizontalLine(10, 10, 5)
	mask := Threshold(g)
	if mask.At(3, 5) != 255 {
		t.Error("dark line pixel should threshold to foreground")
	}
	if mask.At(3, 0) != 0 {
		t.Error("light background pixel should threshold to background")
	}
}

func TestSkeletonize_ThinLineUnchanged(t *testing.T) {
	g := grayWithHorizontalLine(20, 20, 10)
	mask := Threshold(g)
	skeleton := Skeletonize(mask)

	// A line already one pixel wide should survive thinning untouched.
	for x := 1; x < 19; x++ {
		if skeleton.At(x, 10) != 255 {
			t.Errorf("skeleton should keep thin line pixel at x=%d", x)
		}
	}
}

func TestSkeletonize_Idempotent(t *testing.T) {
	g := grayWithHorizontalLine(30, 30, 15)
	mask := Threshold(g)
	once := Skeletonize(mask)
	twice := Skeletonize(once)

	for i := range once.Pix {
		if once.Pix[i] != twice.Pix[i] {
			t.Fatalf("skeletonizing an already-thinned mask changed pixel %d", i)
		}
	}
}

func TestSkeletonize_ThinsThickBlob(t *testing.T) {
	g := raster.NewGrayBuffer(20, 20)
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	for y := 8; y <= 12; y++ {
		for x := 2; x < 18; x++ {
			g.Set(x, y, 0)
		}
	}
	mask := Threshold(g)
	before := countSet(mask)
	skeleton := Skeletonize(mask)
	after := countSet(skeleton)

	if after >= before {
		t.Errorf("thinning a 5px-thick bar should reduce pixel count: before=%d after=%d", before, after)
	}
	if after == 0 {
		t.Error("thinning should not erase the shape entirely")
	}
}

func countSet(m *raster.BinaryMask) int {
	n := 0
	for _, v := range m.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}

func TestCanny_DetectsStrongVerticalEdge(t *testing.T) {
	g := raster.NewGrayBuffer(60, 60)
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if x < 30 {
				g.Set(x, y, 0)
			} else {
				g.Set(x, y, 255)
			}
		}
	}

	mask := Canny(g, CannyOptions{Sigma: 1.0, Low: 50, High: 150})

	found := false
	for x := 27; x <= 32; x++ {
		if mask.At(x, 30) > 0 {
			found = true
		}
	}
	if !found {
		t.Error("Canny should detect the strong vertical edge around x=30")
	}
}

func TestCanny_UniformImageHasNoEdges(t *testing.T) {
	g := raster.NewGrayBuffer(40, 40)
	for i := range g.Pix {
		g.Pix[i] = 128
	}
	mask := Canny(g, CannyOptions{Sigma: 1.0, Low: 50, High: 150})
	for _, v := range mask.Pix {
		if v != 0 {
			t.Fatal("uniform image should produce an all-zero edge mask")
		}
	}
}

func TestClose_BridgesOnePixelGap(t *testing.T) {
	mask := raster.NewBinaryMask(10, 10)
	for x := 0; x < 4; x++ {
		mask.Set(x, 5, true)
	}
	for x := 5; x < 10; x++ {
		mask.Set(x, 5, true)
	}
	// x=4 is a one-pixel gap

	closed := Close(mask, 1)
	if closed.At(4, 5) == 0 {
		t.Error("Close should bridge a one-pixel gap")
	}
}

func TestClose_ZeroIterationsIsNoOp(t *testing.T) {
	mask := raster.NewBinaryMask(5, 5)
	mask.Set(2, 2, true)
	closed := Close(mask, 0)
	if closed.At(2, 2) != 255 || countSet(closed) != 1 {
		t.Error("Close with 0 iterations should return an equivalent mask")
	}
}
