package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leap71/slicefile/cli/internal/scan"
	"github.com/leap71/slicefile/errors"
	"github.com/leap71/slicefile/geom"
)

// DefaultProgressInterval is the default throttle for progress callbacks.
const DefaultProgressInterval = 100 * time.Millisecond

// progressVertexChunk is the vertex-count decrement between progress
// updates inside long coordinate lists.
const progressVertexChunk = 64

// Decoder reads CLI files into slice stacks. A Decoder is stateless
// between calls; one instance may decode any number of files, and
// concurrent calls against independent inputs are safe.
type Decoder struct {
	progress ProgressFunc
	epsilon  float64
	interval time.Duration
}

// DecodeOption configures a Decoder.
type DecodeOption func(*Decoder)

// WithAreaEpsilon sets the |signed area| threshold below which a decoded
// contour classifies as degenerate and is dropped. Units: squared working
// units, after file-unit scaling. Default geom.DefaultAreaEpsilon.
func WithAreaEpsilon(eps float64) DecodeOption {
	return func(d *Decoder) { d.epsilon = eps }
}

// WithProgress installs a completion callback, invoked with a 0..1 bytes
// consumed estimate and throttled to at most one call per interval. An
// interval <= 0 falls back to DefaultProgressInterval.
func WithProgress(fn ProgressFunc, interval time.Duration) DecodeOption {
	return func(d *Decoder) {
		d.progress = fn
		if interval > 0 {
			d.interval = interval
		}
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecodeOption) *Decoder {
	d := &Decoder{
		epsilon:  geom.DefaultAreaEpsilon,
		interval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeFile decodes the CLI file at path.
func (d *Decoder) DecodeFile(path string) (*DecodeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseDecode, err, "open "+path)
	}
	defer f.Close()

	var size int64
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}
	return d.Decode(f, size)
}

// Decode decodes CLI text from r. size is the total input size in bytes
// for progress estimation; pass 0 when unknown.
func (d *Decoder) Decode(r io.Reader, size int64) (*DecodeResult, error) {
	return d.DecodeContext(context.Background(), r, size)
}

// DecodeContext decodes CLI text from r, checking ctx for cooperative
// cancellation at each line-read boundary.
func (d *Decoder) DecodeContext(ctx context.Context, r io.Reader, size int64) (*DecodeResult, error) {
	p := &parser{
		sc:      scan.NewScanner(r),
		prog:    newProgress(d.progress, d.interval, size),
		epsilon: d.epsilon,
		meta:    Metadata{Units: 1},
	}
	p.sc.OnLine(p.prog.update)
	return p.run(ctx)
}

// parseState tracks the decoder through the file's fixed section order.
type parseState int

const (
	stateSeekHeaderStart parseState = iota
	stateInHeader
	stateHeaderEnded
	stateSeekGeometryStart
	stateInGeometry
	stateGeometryEnded
)

// parser holds all mutable state of a single decode call.
type parser struct {
	sc        *scan.Scanner
	prog      *progress
	cur       *geom.Slice // nil while on the implicit base layer
	slices    []*geom.Slice
	warnings  []Warning
	meta      Metadata
	epsilon   float64
	lastZ     float64
	state     parseState
	labelSeen bool
	objectSet bool
	haveLayer bool
}

func (p *parser) run(ctx context.Context) (*DecodeResult, error) {
	for p.state != stateGeometryEnded {
		if err := ctx.Err(); err != nil {
			return nil, errors.IO(errors.PhaseDecode, err, "decode canceled")
		}
		dir, err := p.sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.IO(errors.PhaseDecode, err, "read input")
		}
		if err := p.handle(dir); err != nil {
			return nil, err
		}
	}

	if p.state != stateGeometryEnded {
		switch p.state {
		case stateSeekHeaderStart, stateInHeader:
			return nil, errors.UnterminatedHeader(p.sc.Line())
		default:
			return nil, errors.UnterminatedFile(p.sc.Line())
		}
	}

	stack := geom.NewSliceStack()
	stack.AddSlices(p.slices...)

	Logger().Debug("decode complete",
		zap.Int("slices", len(p.slices)),
		zap.Int("warnings", len(p.warnings)),
		zap.Float64("units", p.meta.Units))

	return &DecodeResult{Stack: stack, Meta: p.meta, Warnings: p.warnings}, nil
}

func (p *parser) handle(dir scan.Directive) error {
	switch p.state {
	case stateSeekHeaderStart:
		// Directives before the header-start marker are ignored.
		if dir.Name == dirHeaderStart {
			p.state = stateInHeader
		}
	case stateInHeader:
		return p.header(dir)
	case stateSeekGeometryStart:
		if dir.Name == dirGeometryStart {
			p.state = stateInGeometry
		}
	case stateInGeometry:
		return p.geometry(dir)
	}
	return nil
}

func (p *parser) header(dir scan.Directive) error {
	switch dir.Name {
	case dirASCII:
		p.meta.Binary = false

	case dirBinary:
		p.meta.Binary = true

	case dirAlign:
		p.meta.Aligned = true

	case dirUnits:
		if len(dir.Params) < 1 {
			return errors.InvalidUnits(dir.Line, "")
		}
		v, err := strconv.ParseFloat(dir.Params[0], 64)
		if err != nil || v <= 0 {
			return errors.InvalidUnits(dir.Line, dir.Params[0])
		}
		p.meta.Units = v

	case dirVersion:
		if len(dir.Params) < 1 {
			return errors.InvalidDirective(dir.Line, dirVersion, "missing version number")
		}
		v, err := strconv.Atoi(dir.Params[0])
		if err != nil {
			return errors.InvalidDirective(dir.Line, dirVersion,
				fmt.Sprintf("version %q is not an integer", dir.Params[0]))
		}
		// Not validated against a supported-version list.
		p.meta.Version = v

	case dirLabel:
		if p.labelSeen {
			return errors.MultipleObjects(dir.Line)
		}
		if len(dir.Params) < 1 {
			return errors.InvalidDirective(dir.Line, dirLabel, "missing object id")
		}
		id, err := strconv.Atoi(dir.Params[0])
		if err != nil {
			return errors.InvalidDirective(dir.Line, dirLabel,
				fmt.Sprintf("object id %q is not an integer", dir.Params[0]))
		}
		p.labelSeen = true
		p.objectSet = true
		p.meta.ObjectID = id
		p.meta.ObjectName = labelName(dir)

	case dirDate:
		p.meta.Date = freeText(dir)

	case dirDimension:
		if len(dir.Params) != 6 {
			return errors.InvalidDirective(dir.Line, dirDimension,
				fmt.Sprintf("expected 6 floats, got %d", len(dir.Params)))
		}
		var v [6]float64
		for i, s := range dir.Params {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return errors.InvalidDirective(dir.Line, dirDimension,
					fmt.Sprintf("dimension %q is not a float", s))
			}
			v[i] = f
		}
		p.meta.DeclaredBBox = geom.BBox{
			XMin: v[0], YMin: v[1], ZMin: v[2],
			XMax: v[3], YMax: v[4], ZMax: v[5],
		}

	case dirLayers:
		if len(dir.Params) < 1 {
			return errors.InvalidDirective(dir.Line, dirLayers, "missing layer count")
		}
		n, err := strconv.Atoi(dir.Params[0])
		if err != nil {
			return errors.InvalidDirective(dir.Line, dirLayers,
				fmt.Sprintf("layer count %q is not an integer", dir.Params[0]))
		}
		// Informational only; never checked against parsed layers.
		p.meta.DeclaredLayers = n

	case dirHeaderEnd:
		p.state = stateHeaderEnded
		if p.meta.Binary {
			return errors.BinaryUnsupported(dir.Line)
		}
		p.state = stateSeekGeometryStart

	default:
		p.warn(WarnUnknownDirective, dir.Line, "unrecognized directive $$"+dir.Name)
	}
	return nil
}

func (p *parser) geometry(dir scan.Directive) error {
	switch dir.Name {
	case dirLayer:
		if len(dir.Params) < 1 {
			return errors.InvalidDirective(dir.Line, dirLayer, "missing layer height")
		}
		raw, err := strconv.ParseFloat(dir.Params[0], 64)
		if err != nil {
			return errors.InvalidDirective(dir.Line, dirLayer,
				fmt.Sprintf("layer height %q is not a float", dir.Params[0]))
		}
		z := raw * p.meta.Units
		if p.haveLayer && z < p.lastZ {
			return errors.NonMonotonicLayer(dir.Line, z, p.lastZ)
		}
		p.haveLayer = true
		p.lastZ = z
		if z == 0 {
			// Implicit base layer: not an addressable slice.
			p.cur = nil
			return nil
		}
		p.cur = geom.NewSlice(z)
		p.slices = append(p.slices, p.cur)

	case dirPolyline:
		return p.polyline(dir)

	case dirGeometryEnd:
		p.state = stateGeometryEnded

	case dirLabel:
		// LABEL belongs to the header, but the single-object rule holds
		// for the whole file.
		if p.labelSeen {
			return errors.MultipleObjects(dir.Line)
		}
		p.warn(WarnUnknownDirective, dir.Line, "misplaced directive $$"+dir.Name)

	default:
		p.warn(WarnUnknownDirective, dir.Line, "unrecognized directive $$"+dir.Name)
	}
	return nil
}

func (p *parser) polyline(dir scan.Directive) error {
	if p.cur == nil {
		return errors.ContourBeforeLayer(dir.Line)
	}
	if len(dir.Params) < 3 {
		return errors.InvalidDirective(dir.Line, dirPolyline,
			"expected object id, direction and vertex count")
	}

	id, err := strconv.Atoi(dir.Params[0])
	if err != nil {
		return errors.InvalidDirective(dir.Line, dirPolyline,
			fmt.Sprintf("object id %q is not an integer", dir.Params[0]))
	}
	if p.objectSet {
		if id != p.meta.ObjectID {
			return errors.ObjectIDMismatch(dir.Line, id, p.meta.ObjectID)
		}
	} else {
		// No $$LABEL in the file: the first polyline establishes the id.
		p.objectSet = true
		p.meta.ObjectID = id
	}

	code, err := strconv.Atoi(dir.Params[1])
	if err != nil {
		return errors.InvalidWindingCode(dir.Line, dir.Params[1])
	}
	declared, ok := codeToWinding(code)
	if !ok {
		return errors.InvalidWindingCode(dir.Line, dir.Params[1])
	}

	n, err := strconv.Atoi(dir.Params[2])
	if err != nil || n < 0 {
		return errors.InvalidDirective(dir.Line, dirPolyline,
			fmt.Sprintf("vertex count %q is not a non-negative integer", dir.Params[2]))
	}

	coords := dir.Params[3:]
	if len(coords) != 2*n {
		return errors.InvalidDirective(dir.Line, dirPolyline,
			fmt.Sprintf("expected %d coordinates, got %d", 2*n, len(coords)))
	}

	pts := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		x, err := strconv.ParseFloat(coords[2*i], 64)
		if err != nil {
			return errors.InvalidDirective(dir.Line, dirPolyline,
				fmt.Sprintf("coordinate %q is not a float", coords[2*i]))
		}
		y, err := strconv.ParseFloat(coords[2*i+1], 64)
		if err != nil {
			return errors.InvalidDirective(dir.Line, dirPolyline,
				fmt.Sprintf("coordinate %q is not a float", coords[2*i+1]))
		}
		pts[i] = geom.Pt(x*p.meta.Units, y*p.meta.Units)
		if (i+1)%progressVertexChunk == 0 {
			p.prog.update(p.sc.BytesRead())
		}
	}

	c := geom.NewContour(pts)
	if n < 3 {
		p.warn(WarnDroppedContour, dir.Line,
			fmt.Sprintf("contour with %d vertices dropped", n))
		return nil
	}
	computed := c.Winding(p.epsilon)
	if computed == geom.Unknown {
		p.warn(WarnDroppedContour, dir.Line, "near-zero area contour dropped")
		return nil
	}
	if computed != declared {
		// The declared code is advisory; the computed winding wins.
		p.warn(WarnWindingMismatch, dir.Line,
			fmt.Sprintf("declared winding %s, computed %s", declared, computed))
	}
	p.cur.AddContour(c)
	return nil
}

// freeText returns a directive's payload verbatim, without the leading
// separator. Free-text directives keep their internal '/' and ',' intact.
func freeText(dir scan.Directive) string {
	raw := dir.Raw
	if len(raw) > 0 && (raw[0] == '/' || raw[0] == ',') {
		raw = raw[1:]
	}
	return strings.TrimSpace(raw)
}

// labelName returns the free-text object name following the label id.
func labelName(dir scan.Directive) string {
	rest := freeText(dir)
	if i := strings.Index(rest, ","); i >= 0 {
		return strings.TrimSpace(rest[i+1:])
	}
	return ""
}

func (p *parser) warn(kind WarningKind, line int, text string) {
	p.warnings = append(p.warnings, Warning{Kind: kind, Line: line, Text: text})
	Logger().Debug("decode warning",
		zap.String("kind", string(kind)),
		zap.Int("line", line),
		zap.String("text", text))
}

// progress throttles completion callbacks.
type progress struct {
	fn       ProgressFunc
	last     time.Time
	interval time.Duration
	size     int64
}

func newProgress(fn ProgressFunc, interval time.Duration, size int64) *progress {
	return &progress{fn: fn, interval: interval, size: size}
}

func (p *progress) update(bytes int64) {
	if p.fn == nil || p.size <= 0 {
		return
	}
	now := time.Now()
	if now.Sub(p.last) < p.interval {
		return
	}
	p.last = now
	f := float64(bytes) / float64(p.size)
	if f > 1 {
		f = 1
	}
	p.fn(f)
}
