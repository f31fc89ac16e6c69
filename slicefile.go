package slicefile

import "github.com/leap71/slicefile/geom"

// SliceSource is the geometry contract between an external geometry kernel
// and the CLI encoder. *geom.SliceStack satisfies it; kernels that hold
// their own layer representation can implement it directly and skip the
// intermediate copy.
//
// Slices must be ordered by non-decreasing Z. The encoder relies on that
// ordering and does not re-sort.
type SliceSource interface {
	SliceCount() int
	SliceAt(i int) *geom.Slice
	BoundingBox() geom.BBox
}
