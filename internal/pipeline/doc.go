// Package pipeline orchestrates the full raster-to-vector conversion:
// preprocess, binary/edge extraction, contour tracing, simplification,
// color analysis, optional refinement, and vector emission, in that fixed
// order.
package pipeline
