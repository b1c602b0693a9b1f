// Package contour turns a BinaryMask into a set of Contours, by one of four
// selectable tracing strategies (edge-chain, Moore, Suzuki-Abe, marching
// squares), followed by common post-processing: an area filter and an
// optional simplify pass.
package contour
