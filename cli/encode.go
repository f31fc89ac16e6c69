package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/leap71/slicefile"
	"github.com/leap71/slicefile/errors"
	"github.com/leap71/slicefile/geom"
)

// LayoutMode selects how the geometry block starts.
type LayoutMode int

const (
	// EmptyFirstLayer emits a synthetic zero-height layer with no
	// contours before the first real layer, for machines that expect an
	// explicit base.
	EmptyFirstLayer LayoutMode = iota

	// FirstLayerHasContent omits the synthetic base layer.
	FirstLayerHasContent
)

// Encoder writes slice stacks as CLI files. All validation happens before
// any output I/O. An Encoder holds no per-call state and may be reused.
type Encoder struct {
	date    string
	mode    LayoutMode
	scale   float64
	epsilon float64
}

// EncodeOption configures an Encoder.
type EncodeOption func(*Encoder)

// WithDate overrides the header date. The value should be ISO yyyy-MM-dd;
// the default is the current date.
func WithDate(date string) EncodeOption {
	return func(e *Encoder) { e.date = date }
}

// WithUnitScale sets the working-units per file-unit factor written to
// $$UNITS. Every emitted coordinate and layer height is divided by it, so
// it must be a finite value > 0; encoding rejects anything else before
// any I/O. Default 1.0.
func WithUnitScale(unitsPerFileUnit float64) EncodeOption {
	return func(e *Encoder) { e.scale = unitsPerFileUnit }
}

// WithEncodeAreaEpsilon sets the |signed area| threshold used to classify
// contour windings for the output partition. Units: squared working units.
// Default geom.DefaultAreaEpsilon.
func WithEncodeAreaEpsilon(eps float64) EncodeOption {
	return func(e *Encoder) { e.epsilon = eps }
}

// NewEncoder creates an Encoder with the given layout mode.
func NewEncoder(mode LayoutMode, opts ...EncodeOption) *Encoder {
	e := &Encoder{
		mode:    mode,
		scale:   1.0,
		epsilon: geom.DefaultAreaEpsilon,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes src to w as CLI text.
func (e *Encoder) Encode(w io.Writer, src slicefile.SliceSource) error {
	bbox, err := e.validate(src)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	e.write(bw, src, bbox)
	if err := bw.Flush(); err != nil {
		return errors.IO(errors.PhaseEncode, err, "write output")
	}
	return nil
}

// EncodeFile creates or overwrites the file at path and writes src to it.
// On a mid-write failure the partially written file is left in place;
// cleanup is the caller's responsibility.
func (e *Encoder) EncodeFile(path string, src slicefile.SliceSource) error {
	bbox, err := e.validate(src)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.IO(errors.PhaseEncode, err, "create "+path)
	}

	bw := bufio.NewWriter(f)
	e.write(bw, src, bbox)
	werr := bw.Flush()
	if werr != nil {
		werr = errors.IO(errors.PhaseEncode, werr, "write "+path)
	}
	if cerr := f.Close(); cerr != nil && werr == nil {
		werr = errors.IO(errors.PhaseEncode, cerr, "close "+path)
	}
	if werr == nil {
		Logger().Debug("encode complete",
			zap.String("path", path),
			zap.Int("slices", src.SliceCount()))
	}
	return werr
}

// validate performs the pre-I/O checks: a usable unit scale, at least one
// slice and a non-degenerate bounding box.
func (e *Encoder) validate(src slicefile.SliceSource) (geom.BBox, error) {
	if e.scale <= 0 || math.IsNaN(e.scale) || math.IsInf(e.scale, 1) {
		return geom.BBox{}, errors.New(errors.PhaseEncode, errors.KindInvalidUnits).
			Detail("unit scale %g must be a finite float > 0", e.scale).
			Build()
	}
	if src == nil || src.SliceCount() < 1 {
		return geom.BBox{}, errors.EmptyGeometry("stack has no slices")
	}
	bbox := src.BoundingBox()
	if bbox.IsDegenerate() {
		return geom.BBox{}, errors.EmptyGeometry("degenerate bounding box")
	}
	return bbox, nil
}

// write emits the full file. Write failures stick to the bufio.Writer and
// surface on the caller's Flush.
func (e *Encoder) write(bw *bufio.Writer, src slicefile.SliceSource, bbox geom.BBox) {
	date := e.date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	layerCount := src.SliceCount()
	if e.mode == EmptyFirstLayer {
		layerCount++
	}

	fmt.Fprintf(bw, "$$%s\n$$%s\n", dirHeaderStart, dirASCII)
	fmt.Fprintf(bw, "$$%s/%015.6f\n", dirUnits, e.scale)
	fmt.Fprintf(bw, "$$%s/%d\n", dirVersion, FormatVersion)
	fmt.Fprintf(bw, "$$%s/%d,%s\n", dirLabel, DefaultObjectID, DefaultObjectName)
	fmt.Fprintf(bw, "$$%s/%s\n", dirDate, date)
	fmt.Fprintf(bw, "$$%s/%.5f,%.5f,%.5f,%.5f,%.5f,%.5f\n", dirDimension,
		bbox.XMin/e.scale, bbox.YMin/e.scale, bbox.ZMin/e.scale,
		bbox.XMax/e.scale, bbox.YMax/e.scale, bbox.ZMax/e.scale)
	fmt.Fprintf(bw, "$$%s/%06d\n", dirLayers, layerCount)
	fmt.Fprintf(bw, "$$%s\n$$%s\n", dirHeaderEnd, dirGeometryStart)

	if e.mode == EmptyFirstLayer {
		fmt.Fprintf(bw, "$$%s/%.5f\n", dirLayer, 0.0)
	}
	for i := 0; i < src.SliceCount(); i++ {
		e.writeSlice(bw, src.SliceAt(i))
	}
	fmt.Fprintf(bw, "$$%s\n", dirGeometryEnd)
}

// writeSlice emits one layer directive and its contours in the three
// stable partitions: counter-clockwise first, then clockwise, then
// unknown. Relative order within each partition is preserved; contours
// are never reordered by any other key.
func (e *Encoder) writeSlice(bw *bufio.Writer, s *geom.Slice) {
	fmt.Fprintf(bw, "$$%s/%.5f\n", dirLayer, s.Z()/e.scale)

	var ccw, cw, other []*geom.Contour
	for i := 0; i < s.ContourCount(); i++ {
		c := s.ContourAt(i)
		switch c.Winding(e.epsilon) {
		case geom.CounterClockwise:
			ccw = append(ccw, c)
		case geom.Clockwise:
			cw = append(cw, c)
		default:
			other = append(other, c)
		}
	}
	for _, c := range ccw {
		e.writeContour(bw, c, geom.CounterClockwise)
	}
	for _, c := range cw {
		e.writeContour(bw, c, geom.Clockwise)
	}
	for _, c := range other {
		e.writeContour(bw, c, geom.Unknown)
	}
}

func (e *Encoder) writeContour(bw *bufio.Writer, c *geom.Contour, w geom.Winding) {
	fmt.Fprintf(bw, "$$%s/%d,%d,%d", dirPolyline, DefaultObjectID, windingToCode(w), c.VertexCount())
	for _, pt := range c.Vertices() {
		fmt.Fprintf(bw, ",%.5f,%.5f", pt.X/e.scale, pt.Y/e.scale)
	}
	bw.WriteByte('\n')
}
