package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which codec direction the error occurred in
type Phase string

const (
	PhaseDecode Phase = "decode" // file to slice stack
	PhaseEncode Phase = "encode" // slice stack to file
)

// Kind categorizes the error
type Kind string

const (
	KindUnterminatedHeader Kind = "unterminated_header"  // EOF before $$HEADEREND
	KindUnterminatedFile   Kind = "unterminated_file"    // EOF before $$GEOMETRYEND
	KindBinaryUnsupported  Kind = "binary_unsupported"   // $$BINARY payload declared
	KindInvalidUnits       Kind = "invalid_units"        // $$UNITS unparsable or <= 0
	KindMultipleObjects    Kind = "multiple_objects"     // second $$LABEL directive
	KindObjectIDMismatch   Kind = "object_id_mismatch"   // polyline id differs from label id
	KindInvalidWindingCode Kind = "invalid_winding_code" // polyline direction outside 0..2
	KindNonMonotonicLayer  Kind = "non_monotonic_layer"  // layer Z below its predecessor
	KindContourBeforeLayer Kind = "contour_before_layer" // polyline before the first real layer
	KindInvalidDirective   Kind = "invalid_directive"    // malformed or missing parameter
	KindEmptyGeometry      Kind = "empty_geometry"       // nothing writable on encode
	KindIO                 Kind = "io"                   // underlying read/write failure
)

// Error is the structured error type returned by the codec. Line is the
// 1-based physical line the error was detected on, 0 when the error is not
// tied to a location in the input.
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Directive string
	Detail    string
	Line      int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Directive != "" {
		b.WriteString(" in $$")
		b.WriteString(e.Directive)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Line sets the 1-based physical input line
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// Directive sets the directive name (without the $$ prefix)
func (b *Builder) Directive(name string) *Builder {
	b.err.Directive = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnterminatedHeader reports end-of-input before the header was closed.
func UnterminatedHeader(line int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnterminatedHeader,
		Line:   line,
		Detail: "end of input before $$HEADEREND",
	}
}

// UnterminatedFile reports end-of-input before the geometry was closed.
func UnterminatedFile(line int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnterminatedFile,
		Line:   line,
		Detail: "end of input before $$GEOMETRYEND",
	}
}

// BinaryUnsupported reports a declared binary payload, which the codec
// intentionally rejects.
func BinaryUnsupported(line int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBinaryUnsupported,
		Line:   line,
		Detail: "binary payloads are not supported",
	}
}

// InvalidUnits reports an unparsable or non-positive units factor.
func InvalidUnits(line int, value string) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindInvalidUnits,
		Line:      line,
		Directive: "UNITS",
		Detail:    fmt.Sprintf("units factor %q must be a float > 0", value),
	}
}

// MultipleObjects reports a second $$LABEL directive.
func MultipleObjects(line int) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindMultipleObjects,
		Line:      line,
		Directive: "LABEL",
		Detail:    "only a single object per file is supported",
	}
}

// ObjectIDMismatch reports a polyline whose object id differs from the
// declared label id.
func ObjectIDMismatch(line, got, want int) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindObjectIDMismatch,
		Line:      line,
		Directive: "POLYLINE",
		Detail:    fmt.Sprintf("object id %d does not match declared id %d", got, want),
	}
}

// InvalidWindingCode reports a polyline direction code outside 0..2.
func InvalidWindingCode(line int, code string) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindInvalidWindingCode,
		Line:      line,
		Directive: "POLYLINE",
		Detail:    fmt.Sprintf("winding code %q is not 0, 1 or 2", code),
	}
}

// NonMonotonicLayer reports a layer whose Z is below its predecessor's.
func NonMonotonicLayer(line int, z, prev float64) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindNonMonotonicLayer,
		Line:      line,
		Directive: "LAYER",
		Detail:    fmt.Sprintf("layer z %g below previous layer z %g", z, prev),
	}
}

// ContourBeforeLayer reports a polyline before the first real layer.
func ContourBeforeLayer(line int) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindContourBeforeLayer,
		Line:      line,
		Directive: "POLYLINE",
		Detail:    "contour before the first layer with height > 0",
	}
}

// InvalidDirective reports a malformed or missing directive parameter.
func InvalidDirective(line int, directive, detail string) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindInvalidDirective,
		Line:      line,
		Directive: directive,
		Detail:    detail,
	}
}

// EmptyGeometry reports a stack with nothing writable, detected before any
// output I/O happens.
func EmptyGeometry(detail string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEmptyGeometry,
		Detail: detail,
	}
}

// IO wraps an underlying read or write failure.
func IO(phase Phase, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}
