package palette

import (
	"sort"

	"github.com/cadtrace/cadvec/internal/raster"
)

type colorBox struct {
	colors []raster.Color
}

func (b colorBox) channelRange(channel int) uint8 {
	if len(b.colors) == 0 {
		return 0
	}
	lo, hi := channelValue(b.colors[0], channel), channelValue(b.colors[0], channel)
	for _, c := range b.colors[1:] {
		v := channelValue(c, channel)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

func channelValue(c raster.Color, channel int) uint8 {
	switch channel {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

func (b colorBox) widestChannel() int {
	widest, best := -1, -1
	for ch := 0; ch < 3; ch++ {
		r := int(b.channelRange(ch))
		if r > widest {
			widest, best = r, ch
		}
	}
	return best
}

func (b colorBox) average() raster.Color {
	var sr, sg, sb int64
	for _, c := range b.colors {
		sr += int64(c.R)
		sg += int64(c.G)
		sb += int64(c.B)
	}
	n := int64(len(b.colors))
	if n == 0 {
		return raster.Color{A: 255}
	}
	return raster.Color{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 255}
}

// MedianCut quantizes samples to at most count representative colors:
// starting from one box covering every sample, repeatedly split the box
// with the largest channel range by sorting along that channel and cutting
// at the median, until count boxes exist or no box can be split further.
func MedianCut(samples []raster.Color, count int) []raster.Color {
	if len(samples) == 0 || count <= 0 {
		return nil
	}
	boxes := []colorBox{{colors: append([]raster.Color(nil), samples...)}}

	for len(boxes) < count {
		splitIdx := -1
		widestRange := -1
		for i, b := range boxes {
			if len(b.colors) < 2 {
				continue
			}
			ch := b.widestChannel()
			r := int(b.channelRange(ch))
			if r > widestRange {
				widestRange, splitIdx = r, i
			}
		}
		if splitIdx == -1 {
			break
		}

		box := boxes[splitIdx]
		ch := box.widestChannel()
		sorted := append([]raster.Color(nil), box.colors...)
		sort.Slice(sorted, func(i, j int) bool {
			return channelValue(sorted[i], ch) < channelValue(sorted[j], ch)
		})
		mid := len(sorted) / 2

		boxes[splitIdx] = colorBox{colors: sorted[:mid]}
		boxes = append(boxes, colorBox{colors: sorted[mid:]})
	}

	out := make([]raster.Color, 0, len(boxes))
	for _, b := range boxes {
		if len(b.colors) == 0 {
			continue
		}
		out = append(out, b.average())
	}
	return out
}
