package cli

import "github.com/leap71/slicefile/geom"

// Directive names, without the $$ prefix.
const (
	dirHeaderStart   = "HEADERSTART"
	dirHeaderEnd     = "HEADEREND"
	dirGeometryStart = "GEOMETRYSTART"
	dirGeometryEnd   = "GEOMETRYEND"
	dirASCII         = "ASCII"
	dirBinary        = "BINARY"
	dirAlign         = "ALIGN"
	dirUnits         = "UNITS"
	dirVersion       = "VERSION"
	dirLabel         = "LABEL"
	dirDate          = "DATE"
	dirDimension     = "DIMENSION"
	dirLayers        = "LAYERS"
	dirLayer         = "LAYER"
	dirPolyline      = "POLYLINE"
)

// Winding codes carried on $$POLYLINE directives.
const (
	windingCodeClockwise        = 0 // internal boundary (hole)
	windingCodeCounterClockwise = 1 // external boundary (solid)
	windingCodeOpen             = 2 // open, unknown or degenerate
)

// FormatVersion is the constant version tag written to every file.
const FormatVersion = 200

// The single object every file carries.
const (
	DefaultObjectID   = 1
	DefaultObjectName = "default"
)

func windingToCode(w geom.Winding) int {
	switch w {
	case geom.Clockwise:
		return windingCodeClockwise
	case geom.CounterClockwise:
		return windingCodeCounterClockwise
	}
	return windingCodeOpen
}

func codeToWinding(code int) (geom.Winding, bool) {
	switch code {
	case windingCodeClockwise:
		return geom.Clockwise, true
	case windingCodeCounterClockwise:
		return geom.CounterClockwise, true
	case windingCodeOpen:
		return geom.Unknown, true
	}
	return geom.Unknown, false
}
