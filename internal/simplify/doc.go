// Package simplify reduces and smooths Point polylines: Douglas-Peucker,
// Visvalingam-Whyatt and Reumann-Witkam simplification; Chaikin, moving
// average and Gaussian smoothing; and cubic Bezier curve fitting by
// Schneider's method.
package simplify
