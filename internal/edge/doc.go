// Package edge turns a preprocessed grayscale buffer into a BinaryMask of
// line pixels, by one of two selectable strategies:
//
//   - Skeletonize: threshold to a foreground/background mask, then thin it
//     to a one-pixel-wide centerline with Zhang-Suen iterative thinning.
//   - Canny: Sobel gradient, non-maximum suppression, dual-threshold
//     hysteresis.
//
// Either mode's output may optionally pass through a morphological close to
// bridge one-pixel gaps before the contour tracer sees it.
package edge
