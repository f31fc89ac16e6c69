package main

import (
	"math"

	"github.com/leap71/slicefile/geom"
)

// canvas is a braille dot buffer. Each terminal cell holds a 2x4 dot
// matrix, addressed in micro coordinates.
type canvas struct {
	cells [][]uint8
	w, h  int
}

func newCanvas(w, h int) *canvas {
	cells := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]uint8, w)
	}
	return &canvas{cells: cells, w: w, h: h}
}

// setDot sets a dot at micro coordinates (2x4 per cell).
func (c *canvas) setDot(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cx >= c.w || cy >= c.h {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.cells[cy][cx] |= bit
}

// line draws a segment on the micro grid using Bresenham.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setDot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) render() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			mask := c.cells[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// drawSlice projects the slice's contours into the canvas, fitting the
// stack bounding box with uniform scale and centering. Y grows upward in
// geometry, downward on screen.
func drawSlice(c *canvas, s *geom.Slice, b geom.BBox) {
	if s == nil || s.IsEmpty() || b.IsDegenerate() {
		return
	}
	mw, mh := c.w*2, c.h*4
	scale := math.Min(
		float64(mw-1)/(b.XMax-b.XMin),
		float64(mh-1)/(b.YMax-b.YMin),
	)
	ox := (float64(mw-1) - (b.XMax-b.XMin)*scale) / 2
	oy := (float64(mh-1) - (b.YMax-b.YMin)*scale) / 2

	project := func(p geom.Point) (int, int) {
		x := (p.X-b.XMin)*scale + ox
		y := (p.Y-b.YMin)*scale + oy
		return int(math.Round(x)), mh - 1 - int(math.Round(y))
	}

	for i := 0; i < s.ContourCount(); i++ {
		ct := s.ContourAt(i)
		n := ct.VertexCount()
		for j := 0; j < n; j++ {
			x0, y0 := project(ct.VertexAt(j))
			x1, y1 := project(ct.VertexAt((j + 1) % n))
			c.line(x0, y0, x1, y1)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
