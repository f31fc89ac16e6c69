package geom

import "math"

// Winding classifies the rotational orientation of a closed contour's
// vertex sequence. Counter-clockwise contours are solid outer boundaries,
// clockwise contours are holes.
type Winding int

const (
	Clockwise Winding = iota
	CounterClockwise
	Unknown
)

func (w Winding) String() string {
	switch w {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

// DefaultAreaEpsilon is the default threshold below which a contour's
// absolute signed area classifies as degenerate (winding Unknown).
// Units: squared working units, after any file-unit scaling.
const DefaultAreaEpsilon = 1e-9

// Contour is a closed 2D polygon. The vertex sequence is implicitly closed:
// the last vertex connects back to the first. Winding is derived purely
// from vertex order; reordering vertices is the only thing that changes it.
type Contour struct {
	pts []Point
}

// NewContour creates a contour from an ordered vertex sequence. The slice
// is stored as-is, without copying or validation.
func NewContour(pts []Point) *Contour {
	return &Contour{pts: pts}
}

// VertexCount returns the number of vertices.
func (c *Contour) VertexCount() int {
	return len(c.pts)
}

// VertexAt returns the vertex at index i.
func (c *Contour) VertexAt(i int) Point {
	return c.pts[i]
}

// Vertices returns the underlying vertex slice. Callers must not modify it.
func (c *Contour) Vertices() []Point {
	return c.pts
}

// SignedArea returns the shoelace sum over the implicitly closed polygon.
// Positive area means counter-clockwise vertex order.
func (c *Contour) SignedArea() float64 {
	if len(c.pts) < 3 {
		return 0
	}
	var sum float64
	for i, p := range c.pts {
		q := c.pts[(i+1)%len(c.pts)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// Winding classifies the contour by the sign of its area. Contours with
// fewer than 3 vertices, or with |area| <= epsilon, are Unknown.
func (c *Contour) Winding(epsilon float64) Winding {
	if len(c.pts) < 3 {
		return Unknown
	}
	area := c.SignedArea()
	if math.Abs(area) <= epsilon {
		return Unknown
	}
	if area > 0 {
		return CounterClockwise
	}
	return Clockwise
}

// WindingDefault classifies the contour using DefaultAreaEpsilon.
func (c *Contour) WindingDefault() Winding {
	return c.Winding(DefaultAreaEpsilon)
}

// Reversed returns a new contour with the vertex order reversed, which
// flips a non-degenerate winding.
func (c *Contour) Reversed() *Contour {
	pts := make([]Point, len(c.pts))
	for i, p := range c.pts {
		pts[len(c.pts)-1-i] = p
	}
	return &Contour{pts: pts}
}

// BBox returns the 2D extent of the contour's vertices. ok is false for a
// contour with no vertices.
func (c *Contour) BBox() (min, max Point, ok bool) {
	if len(c.pts) == 0 {
		return Point{}, Point{}, false
	}
	min, max = c.pts[0], c.pts[0]
	for _, p := range c.pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, true
}
