// Package palette analyzes an Image's colors: background detection,
// candidate line-color palette extraction, k-means++ dominant colors,
// median-cut quantization, per-path color snapping and layer grouping.
//
// The RGB and Lab color distances (DistanceRGB, DistanceLab) used by palette
// extraction, snapping and layer grouping are computed with
// github.com/lucasb-eyer/go-colorful; k-means works on squared RGB distance
// computed directly.
package palette
