// Package geom provides the 2D polygon value types exchanged through slice
// files: points, closed contours with derived winding classification,
// Z-height slices, and Z-ordered slice stacks with aggregate bounds.
//
// All types are plain values built once and then treated as read-only by
// the codec and by downstream consumers.
package geom
