package palette

import "github.com/cadtrace/cadvec/internal/raster"

// LayerBucket groups items (identified by opaque index) under a shared
// representative color, preserving insertion order.
type LayerBucket struct {
	Color   raster.Color
	Indices []int
}

// GroupLayers buckets colors by greedy nearest-color-within-distance: each
// color joins the first existing bucket within maxDistance, or starts a new
// bucket at the end of the list otherwise. Bucket order is the order in
// which buckets were first created. When perceptual is true, bucketing uses
// Lab distance instead of RGB distance, for "perceptual" quantize mode.
func GroupLayers(colors []raster.Color, maxDistance float64, perceptual bool) []LayerBucket {
	distance := DistanceRGB
	if perceptual {
		distance = DistanceLab
	}
	var buckets []LayerBucket
	for i, c := range colors {
		placed := false
		for b := range buckets {
			if distance(c, buckets[b].Color) <= maxDistance {
				buckets[b].Indices = append(buckets[b].Indices, i)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, LayerBucket{Color: c, Indices: []int{i}})
		}
	}
	return buckets
}
