package geom

import "math"

// BBox is an axis-aligned bounding box over contour vertices (X, Y) and
// slice heights (Z). A freshly constructed box is empty; growing it with
// at least one point makes it non-empty.
type BBox struct {
	XMin, YMin, ZMin float64
	XMax, YMax, ZMax float64
}

// NewBBox returns an empty bounding box.
func NewBBox() BBox {
	return BBox{
		XMin: math.Inf(1), YMin: math.Inf(1), ZMin: math.Inf(1),
		XMax: math.Inf(-1), YMax: math.Inf(-1), ZMax: math.Inf(-1),
	}
}

// Grow extends the X/Y extents to include p.
func (b *BBox) Grow(p Point) {
	b.XMin = math.Min(b.XMin, p.X)
	b.YMin = math.Min(b.YMin, p.Y)
	b.XMax = math.Max(b.XMax, p.X)
	b.YMax = math.Max(b.YMax, p.Y)
}

// GrowZ extends the Z extent to include z.
func (b *BBox) GrowZ(z float64) {
	b.ZMin = math.Min(b.ZMin, z)
	b.ZMax = math.Max(b.ZMax, z)
}

// IsEmpty reports whether the box was never grown.
func (b BBox) IsEmpty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax
}

// IsDegenerate reports whether the box is empty or has a zero-area X/Y
// footprint. A flat Z extent (single-layer part) is not degenerate.
func (b BBox) IsDegenerate() bool {
	return b.IsEmpty() || b.XMax-b.XMin <= 0 || b.YMax-b.YMin <= 0
}

// SizeX returns the X extent, 0 for an empty box.
func (b BBox) SizeX() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.XMax - b.XMin
}

// SizeY returns the Y extent, 0 for an empty box.
func (b BBox) SizeY() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.YMax - b.YMin
}

// SizeZ returns the Z extent, 0 for an empty box.
func (b BBox) SizeZ() float64 {
	if b.IsEmpty() || b.ZMin > b.ZMax {
		return 0
	}
	return b.ZMax - b.ZMin
}
