// Package preprocess implements the first pipeline stage: optional channel
// inversion, BT.601 grayscale reduction, a separable Gaussian blur, and a
// 3x3 median filter.
//
// The Gaussian blur is required to be separable (horizontal pass then
// vertical pass through a scratch buffer) rather than a single 2-D kernel,
// because the Canny edge detector runs on its output and so depends on its
// numerics; a full 2-D convolution is only
// acceptable if it matches this implementation within one grayscale level
// after rounding.
package preprocess
