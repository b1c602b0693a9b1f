package edge

import "github.com/cadtrace/cadvec/internal/raster"

// Threshold reduces a grayscale buffer to a foreground/background mask:
// luminance < 128 is "foreground" (line material, 255), else background (0).
func Threshold(g *raster.GrayBuffer) *raster.BinaryMask {
	out := raster.NewBinaryMask(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out.Set(x, y, g.At(x, y) < 128)
		}
	}
	return out
}

// neighborOffsets lists the 8-neighbors of P1 in clockwise order starting
// from north: P2..P9.
var neighborOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Skeletonize reduces a thresholded foreground to its one-pixel medial axis
// using Zhang-Suen thinning: two alternating sub-iterations, repeated until
// a full pass changes no pixel.
func Skeletonize(mask *raster.BinaryMask) *raster.BinaryMask {
	w, h := mask.Width, mask.Height
	// Work on a plain 0/1 grid; easier to reason about than 0/255 here.
	grid := make([]uint8, w*h)
	for i, v := range mask.Pix {
		if v > 0 {
			grid[i] = 1
		}
	}
	at := func(x, y int) uint8 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return grid[y*w+x]
	}

	for {
		changed1 := thinPass(grid, w, h, at, 1)
		changed2 := thinPass(grid, w, h, at, 2)
		if !changed1 && !changed2 {
			break
		}
	}

	out := raster.NewBinaryMask(w, h)
	for i, v := range grid {
		out.Pix[i] = v * 255
	}
	return out
}

// thinPass runs one Zhang-Suen sub-iteration over grid in place, returning
// whether anything changed.
func thinPass(grid []uint8, w, h int, at func(x, y int) uint8, sub int) bool {
	type mark struct{ x, y int }
	var toClear []mark

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if at(x, y) == 0 {
				continue
			}
			var p [8]uint8
			for i, off := range neighborOffsets {
				p[i] = at(x+off[0], y+off[1])
			}
			b := 0
			for _, v := range p {
				b += int(v)
			}
			a := 0
			for i := 0; i < 8; i++ {
				if p[i] == 0 && p[(i+1)%8] == 1 {
					a++
				}
			}
			if a != 1 || b < 2 || b > 6 {
				continue
			}
			// p[0]=P2 (N), p[2]=P4 (E), p[4]=P6 (S), p[6]=P8 (W)
			p2, p4, p6, p8 := p[0], p[2], p[4], p[6]
			var cond bool
			if sub == 1 {
				cond = p2*p4*p6 == 0 && p4*p6*p8 == 0
			} else {
				cond = p2*p4*p8 == 0 && p2*p6*p8 == 0
			}
			if cond {
				toClear = append(toClear, mark{x, y})
			}
		}
	}

	for _, m := range toClear {
		grid[m.y*w+m.x] = 0
	}
	return len(toClear) > 0
}
