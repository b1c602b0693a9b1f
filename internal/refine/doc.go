// Package refine closes the gap between a reconstructed path set and a
// reference BinaryMask used as ground truth: Bresenham rasterization, a
// two-pass chamfer distance transform, a precision/recall/F1 accuracy
// metric, and a fixed-order iteration loop (remove-spurious, snap,
// adaptive-resimplify, gap-fill) that runs until the target score is met or
// a maximum iteration count elapses.
package refine
