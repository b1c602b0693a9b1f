package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
)

// FromImage converts a standard library image.Image into an Image buffer.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			out.Set(x, y, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
	return out
}

// Decode decodes raw encoded image bytes (PNG/JPEG/GIF) into an Image.
//
// This is the one place the pipeline touches a file format; everything past
// this point operates on the plain Image buffer. Per spec §7, a decode
// failure is an UnsupportedFormat condition, not a panic.
func Decode(data []byte) (*Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), format, nil
}

// Cache provides thread-safe memoization of decoded images keyed by file
// path. The synchronous core pipeline never touches it, and cmd/cadvec,
// which converts a single file, does not use it either.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{images: make(map[string]*Image)}
}

// Load decodes the file at path, using the cache if already decoded.
func (c *Cache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict removes a single entry.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}
