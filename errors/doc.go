// Package errors provides structured error types for the slicefile library.
//
// Errors are categorized by Phase (decode or encode) and Kind (the fatal
// error taxonomy of the CLI codec). The Error type includes the offending
// input line, the directive involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidDirective).
//		Line(42).
//		Directive("DIMENSION").
//		Detail("expected 6 floats, got %d", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NonMonotonicLayer(42, 3.0, 5.0)
//	err := errors.MultipleObjects(17)
//
// All errors implement the standard error interface and support
// errors.Is/As; Is matches on Phase and Kind, so callers can pattern-match
// against a prototype:
//
//	if errors.Is(err, &sferrors.Error{Phase: sferrors.PhaseDecode,
//		Kind: sferrors.KindNonMonotonicLayer}) { ... }
//
// Recoverable conditions are not errors: the decoder accumulates them as
// cli.Warning values and still returns a complete result.
package errors
