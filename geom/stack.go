package geom

// SliceStack is an ordered collection of slices. Z is expected to be
// non-decreasing across consecutive entries; that invariant is a documented
// precondition on AddSlices, guaranteed by the caller and not re-checked
// here.
type SliceStack struct {
	slices    []*Slice
	bbox      BBox
	bboxValid bool
}

// NewSliceStack returns an empty stack.
func NewSliceStack() *SliceStack {
	return &SliceStack{}
}

// AddSlices bulk-appends slices in the caller-supplied order.
//
// Precondition: across the whole stack, slice Z values are non-decreasing.
func (st *SliceStack) AddSlices(slices ...*Slice) {
	st.slices = append(st.slices, slices...)
	st.bboxValid = false
}

// SliceCount returns the number of slices.
func (st *SliceStack) SliceCount() int {
	return len(st.slices)
}

// SliceAt returns the slice at index i.
func (st *SliceStack) SliceAt(i int) *Slice {
	return st.slices[i]
}

// BoundingBox returns the union of all contour vertex extents (X, Y) and
// the Z range of non-empty slices. The result is computed lazily and
// cached until the next AddSlices. A stack with no geometry returns an
// empty box.
func (st *SliceStack) BoundingBox() BBox {
	if st.bboxValid {
		return st.bbox
	}
	b := NewBBox()
	for _, s := range st.slices {
		if s.IsEmpty() {
			continue
		}
		b.GrowZ(s.Z())
		for _, c := range s.contours {
			for _, p := range c.pts {
				b.Grow(p)
			}
		}
	}
	st.bbox = b
	st.bboxValid = true
	return b
}

// ZRange returns the height range over non-empty slices. ok is false when
// the stack carries no geometry.
func (st *SliceStack) ZRange() (zMin, zMax float64, ok bool) {
	b := st.BoundingBox()
	if b.IsEmpty() {
		return 0, 0, false
	}
	return b.ZMin, b.ZMax, true
}
