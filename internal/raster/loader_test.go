package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func encodePNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := encodePNG(t, 20, 10, color.RGBA{10, 20, 30, 255})

	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %s, want png", format)
	}
	if img.Width != 20 || img.Height != 10 {
		t.Errorf("dimensions = %dx%d, want 20x10", img.Width, img.Height)
	}
	if got := img.At(5, 5); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("At(5,5) = %+v, want (10,20,30,_)", got)
	}
}

func TestDecode_InvalidBytes(t *testing.T) {
	_, _, err := Decode([]byte("not an image"))
	if err == nil {
		t.Error("Decode should fail on non-image bytes")
	}
}

func TestCache_LoadCachesByPath(t *testing.T) {
	data := encodePNG(t, 8, 8, color.RGBA{1, 2, 3, 255})
	f, err := os.CreateTemp("", "cadvec-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	f.Close()

	cache := NewCache()
	img1, err := cache.Load(f.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	img2, err := cache.Load(f.Name())
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load should return the cached pointer")
	}

	cache.Evict(f.Name())
	img3, err := cache.Load(f.Name())
	if err != nil {
		t.Fatalf("Load after evict failed: %v", err)
	}
	if img3 == img1 {
		t.Error("Load after Evict should decode fresh")
	}

	cache.Clear()
}

func TestCache_LoadNonExistent(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load("/nonexistent/path/image.png"); err == nil {
		t.Error("Load should fail for a nonexistent file")
	}
}
