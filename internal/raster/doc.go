// Package raster holds the plain data buffers that flow between pipeline
// stages: the decoded RGBA image, derived grayscale and binary masks,
// gradient and distance fields, and the small geometric value types (Point,
// Color) shared by every later stage.
//
// # Coordinate System
//
// All buffers are row-major and index as y*width+x. Coordinates are 0-based
// with (0,0) at the top-left corner; X increases rightward, Y increases
// downward. Out-of-range reads return the zero value rather than panicking,
// except for DistanceField, whose out-of-range reads return a large sentinel
// distance.
//
// # Ownership
//
// Every type in this package is produced once and treated as immutable by
// downstream stages. Stages that need a modified version build a new buffer
// rather than mutating the one they were given.
package raster
