package palette

import (
	"math/rand"
	"testing"

	"github.com/cadtrace/cadvec/internal/raster"
)

func whiteImageWithBlackLine(w, h, row int) *raster.Image {
	img := raster.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, raster.Color{R: 255, G: 255, B: 255, A: 255})
		}
	}
	for x := 0; x < w; x++ {
		img.Set(x, row, raster.Color{A: 255})
	}
	return img
}

func TestDetectBackground_WhiteCanvas(t *testing.T) {
	img := whiteImageWithBlackLine(20, 20, 10)
	bg := DetectBackground(img)
	if DistanceRGB(bg, raster.Color{R: 255, G: 255, B: 255, A: 255}) > 20 {
		t.Errorf("expected background near white, got %+v", bg)
	}
}

func TestExtractPalette_FindsBlackLine(t *testing.T) {
	img := whiteImageWithBlackLine(20, 20, 10)
	bg := DetectBackground(img)
	candidates := ExtractPalette(img, bg, false)
	found := false
	for _, c := range candidates {
		if DistanceRGB(c, raster.Color{A: 255}) < 20 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected black to be a palette candidate, got %+v", candidates)
	}
}

func TestExtractPalette_FallsBackToBlack(t *testing.T) {
	img := raster.NewImage(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, raster.Color{R: 255, G: 255, B: 255, A: 255})
		}
	}
	candidates := ExtractPalette(img, raster.Color{R: 255, G: 255, B: 255, A: 255}, false)
	if len(candidates) != 1 || DistanceRGB(candidates[0], raster.Color{A: 255}) > 1 {
		t.Errorf("expected fallback to pure black, got %+v", candidates)
	}
}

func TestKMeans_SeparatesTwoClusters(t *testing.T) {
	samples := []raster.Color{}
	for i := 0; i < 20; i++ {
		samples = append(samples, raster.Color{R: 10, G: 10, B: 10, A: 255})
	}
	for i := 0; i < 20; i++ {
		samples = append(samples, raster.Color{R: 250, G: 250, B: 250, A: 255})
	}
	rng := rand.New(rand.NewSource(1))
	centroids := KMeans(samples, 2, rng)
	if len(centroids) != 2 {
		t.Fatalf("expected 2 centroids, got %d", len(centroids))
	}
	if DistanceRGB(centroids[0], centroids[1]) < 100 {
		t.Error("expected the two centroids to separate the dark/light clusters")
	}
}

func TestMedianCut_ReturnsRequestedCount(t *testing.T) {
	samples := []raster.Color{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 128, G: 0, B: 0, A: 255},
		{R: 0, G: 128, B: 0, A: 255},
	}
	out := MedianCut(samples, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(out))
	}
}

func TestSampleColor_SnapsToPaletteEntry(t *testing.T) {
	img := whiteImageWithBlackLine(20, 20, 5)
	points := []raster.Point{}
	for x := 0; x < 20; x++ {
		points = append(points, raster.Point{X: float64(x), Y: 5})
	}
	candidates := []raster.Color{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	result := SampleColor(img, points, candidates)
	if DistanceRGB(result, raster.Color{A: 255}) > 1 {
		t.Errorf("expected the sampled color to snap to black, got %+v", result)
	}
}

func TestGroupLayers_BucketsByDistance(t *testing.T) {
	colors := []raster.Color{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 5, G: 5, B: 5, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
	}
	buckets := GroupLayers(colors, 30, false)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if len(buckets[0].Indices) != 2 {
		t.Errorf("expected the two near-black colors to share a bucket, got %v", buckets[0].Indices)
	}
}

func TestGroupLayers_PerceptualModeUsesLabDistance(t *testing.T) {
	colors := []raster.Color{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 5, G: 5, B: 5, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
	}
	buckets := GroupLayers(colors, 5, true)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets under Lab distance, got %d", len(buckets))
	}
}

func TestExtractPalette_PerceptualModeUsesLabDistanceForBackground(t *testing.T) {
	img := whiteImageWithBlackLine(20, 20, 10)
	bg := DetectBackground(img)
	candidates := ExtractPalette(img, bg, true)
	found := false
	for _, c := range candidates {
		if DistanceRGB(c, raster.Color{A: 255}) < 20 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected black to still be found as a palette candidate in perceptual mode, got %+v", candidates)
	}
}
