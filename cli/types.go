package cli

import (
	"github.com/leap71/slicefile/geom"
)

// Metadata holds what a CLI file declares about itself. Declared values
// are stored as read; none of them override what the geometry block
// actually contains.
type Metadata struct {
	// Units is the file-units to working-units scale factor from $$UNITS.
	// 1.0 when the file never declares units.
	Units float64

	// Version is the $$VERSION tag. Parsed but not validated against a
	// supported-version list.
	Version int

	// ObjectID and ObjectName identify the file's single object.
	ObjectID   int
	ObjectName string

	// Date is the $$DATE text, stored verbatim.
	Date string

	// DeclaredBBox is the $$DIMENSION bounding box as stored in the file,
	// independent of any box recomputed from parsed geometry.
	DeclaredBBox geom.BBox

	// DeclaredLayers is the $$LAYERS count. Informational only; never
	// cross-validated against the number of parsed layers.
	DeclaredLayers int

	// Aligned records a $$ALIGN directive. It has no further effect.
	Aligned bool

	// Binary records a $$BINARY directive.
	Binary bool
}

// WarningKind categorizes a recoverable decode condition.
type WarningKind string

const (
	// WarnDroppedContour marks a degenerate contour (fewer than 3
	// vertices, or near-zero area) that was dropped from the result.
	WarnDroppedContour WarningKind = "dropped_contour"

	// WarnWindingMismatch marks a contour whose computed winding disagrees
	// with the declared winding code. The contour is kept; the computed
	// winding wins, the declared code is advisory only.
	WarnWindingMismatch WarningKind = "winding_mismatch"

	// WarnUnknownDirective marks an unrecognized $$ directive.
	WarnUnknownDirective WarningKind = "unknown_directive"
)

// Warning is a recoverable condition accumulated during decoding. Callers
// are expected to surface warnings but may safely ignore them.
type Warning struct {
	Kind WarningKind
	Text string
	Line int
}

// DecodeResult is the complete output of a successful decode.
type DecodeResult struct {
	Stack    *geom.SliceStack
	Meta     Metadata
	Warnings []Warning
}

// ProgressFunc receives a 0..1 completion estimate (bytes consumed over
// file size). Purely a UX affordance; it has no effect on parsing.
type ProgressFunc func(fraction float64)
