package vectorpath

import "github.com/cadtrace/cadvec/internal/raster"

// Path is a polyline carried through coloring and refinement.
type Path struct {
	Points      []raster.Point
	Closed      bool
	Color       raster.Color
	StrokeWidth float64
	Layer       string
	ID          string
}

// DefaultStrokeWidth is used when a Path carries no explicit stroke width.
const DefaultStrokeWidth = 1.0

// Layer is a named, colored group of paths, created by bucketing paths
// whose colors fall within a configured distance of each other.
type Layer struct {
	ID      string
	Name    string
	Color   raster.Color
	Visible bool
	Locked  bool
	Paths   []Path
}
