package geom

// Slice is one Z-height cross-section: a height plus an ordered sequence
// of contours. The contour order is preserved for diagnostics but carries
// no semantic meaning. A slice may be empty.
type Slice struct {
	z        float64
	contours []*Contour
}

// NewSlice creates an empty slice at height z. Z is in the same physical
// unit as the contour geometry.
func NewSlice(z float64) *Slice {
	return &Slice{z: z}
}

// Z returns the slice height.
func (s *Slice) Z() float64 {
	return s.z
}

// AddContour appends a contour, preserving order.
func (s *Slice) AddContour(c *Contour) {
	s.contours = append(s.contours, c)
}

// IsEmpty reports whether the slice holds no contours.
func (s *Slice) IsEmpty() bool {
	return len(s.contours) == 0
}

// ContourCount returns the number of contours.
func (s *Slice) ContourCount() int {
	return len(s.contours)
}

// ContourAt returns the contour at index i.
func (s *Slice) ContourAt(i int) *Contour {
	return s.contours[i]
}
