// Package vectorpath holds the Path and Layer types shared by the color
// analyzer, refiner, emitter and pipeline orchestrator: a polyline carrying
// a color/stroke width through simplification, coloring and refinement, and
// the named, colored groups of paths the emitter renders as groups.
package vectorpath
