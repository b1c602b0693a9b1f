package raster

import "testing"

func TestImageAtOutOfRange(t *testing.T) {
	img := NewImage(4, 4)
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x too large", 4, 0},
		{"y too large", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := img.At(tt.x, tt.y)
			if c != (Color{}) {
				t.Errorf("At(%d,%d) = %+v, want zero value", tt.x, tt.y, c)
			}
		})
	}
}

func TestImageSetGetRoundTrip(t *testing.T) {
	img := NewImage(10, 10)
	want := Color{R: 10, G: 20, B: 30, A: 255}
	img.Set(5, 5, want)
	if got := img.At(5, 5); got != want {
		t.Errorf("At(5,5) = %+v, want %+v", got, want)
	}
	// out-of-range Set must not panic and must not touch the buffer
	img.Set(-1, -1, want)
	img.Set(100, 100, want)
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{R: 255, G: 0, B: 0, A: 255}, "#FF0000"},
		{Color{R: 0, G: 255, B: 0, A: 255}, "#00FF00"},
		{Color{R: 0, G: 0, B: 0, A: 0}, "#000000"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex() = %s, want %s", got, tt.want)
		}
	}
}

func TestBinaryMaskSetIsExactly0Or255(t *testing.T) {
	m := NewBinaryMask(3, 3)
	m.Set(1, 1, true)
	if got := m.At(1, 1); got != 255 {
		t.Errorf("At(1,1) = %d, want 255", got)
	}
	m.Set(1, 1, false)
	if got := m.At(1, 1); got != 0 {
		t.Errorf("At(1,1) = %d, want 0", got)
	}
}

func TestBinaryMaskOutOfRangeReadsZero(t *testing.T) {
	m := NewBinaryMask(2, 2)
	if got := m.At(-5, 0); got != 0 {
		t.Errorf("out-of-range At = %d, want 0", got)
	}
}

func TestBinaryMaskClone(t *testing.T) {
	m := NewBinaryMask(3, 3)
	m.Set(0, 0, true)
	clone := m.Clone()
	clone.Set(1, 1, true)

	if m.At(1, 1) != 0 {
		t.Error("mutating clone should not affect original")
	}
	if clone.At(0, 0) != 255 {
		t.Error("clone should carry over original contents")
	}
}

func TestDistanceFieldDefaultsToInf(t *testing.T) {
	d := NewDistanceField(2, 2)
	if d.At(0, 0) < 1e17 {
		t.Errorf("fresh DistanceField At(0,0) = %v, want +Inf-ish", d.At(0, 0))
	}
	// out of range also returns a large sentinel, never a negative distance
	if d.At(-1, -1) < 0 {
		t.Error("out-of-range distance must not be negative")
	}
}

func TestDistanceFieldSet(t *testing.T) {
	d := NewDistanceField(3, 3)
	d.Set(1, 1, 0)
	if d.At(1, 1) != 0 {
		t.Errorf("At(1,1) = %v, want 0", d.At(1, 1))
	}
}

func TestGradientOutOfRange(t *testing.T) {
	g := NewGradient(5, 5)
	if g.MagAt(-1, 0) != 0 || g.DirAt(10, 10) != 0 {
		t.Error("out-of-range gradient reads must be zero")
	}
}
