// Package cli implements the ASCII "Common Layer Interface" slice-exchange
// format used by additive-manufacturing equipment.
//
// # Format
//
// A CLI file is a header followed by a geometry block. Directives are
// "$$NAME" tokens, optionally followed by '/'-introduced, ','-separated
// parameters:
//
//	$$HEADERSTART
//	$$ASCII
//	$$UNITS/00000001.000000
//	$$VERSION/200
//	$$LABEL/1,default
//	$$DATE/2026-08-25
//	$$DIMENSION/0.00000,0.00000,5.00000,10.00000,10.00000,5.00000
//	$$LAYERS/000001
//	$$HEADEREND
//	$$GEOMETRYSTART
//	$$LAYER/5.00000
//	$$POLYLINE/1,1,4,0.00000,0.00000,10.00000,0.00000,...
//	$$GEOMETRYEND
//
// The binary variant of the format is intentionally unsupported; a
// $$BINARY declaration fails decoding.
//
// # Decoding
//
//	res, err := cli.NewDecoder().DecodeFile("part.cli")
//
// Decoding either returns a complete result (slice stack, file metadata,
// accumulated warnings) or a single fatal *errors.Error naming the
// offending line; it never returns a partially valid stack. Recoverable
// conditions (degenerate contours, winding mismatches, unknown
// directives) become Warning values.
//
// # Encoding
//
//	enc := cli.NewEncoder(cli.EmptyFirstLayer, cli.WithDate("2026-08-25"))
//	err := enc.EncodeFile("part.cli", stack)
//
// All validation happens before the output file is opened. On a mid-write
// failure the partially written file is left in place; cleanup is the
// caller's responsibility.
package cli
