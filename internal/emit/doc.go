// Package emit serializes Paths and Layers into a minimal XML vector
// document: one group per Layer, one polyline per Path, configurable
// numeric precision, and an optional metadata block.
package emit
