// Package slicefile provides layer-by-layer slice geometry exchange for
// additive manufacturing machines.
//
// The library reads and writes the legacy ASCII "Common Layer Interface"
// (CLI) format: an under-specified, line-oriented text grammar that carries
// closed 2D polygon contours grouped into Z-ordered layers. Slice geometry
// is produced by an external geometry kernel (voxel engines, contour
// extractors) and handed to this library for serialization; decoded files
// flow the other way, toward visualization or re-export.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	slicefile/        Root package with the SliceSource collaborator interface
//	├── geom/         2D polygon value types: Point, Contour, Slice,
//	│                 SliceStack, BBox, winding classification
//	├── cli/          CLI format codec: Decoder, Encoder, warnings, metadata
//	├── errors/       Structured error types distinguishing the fatal
//	│                 taxonomy from accumulated warnings
//	└── cmd/slicetool/ Command-line inspector, converter and interactive
//	                  layer browser
//
// # Quick Start
//
// Decode a slice file:
//
//	res, err := cli.NewDecoder().DecodeFile("part.cli")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range res.Warnings {
//	    log.Printf("line %d: %s", w.Line, w.Text)
//	}
//
// Encode a stack built by a geometry kernel:
//
//	enc := cli.NewEncoder(cli.FirstLayerHasContent)
//	err := enc.EncodeFile("part.cli", stack)
//
// # Error Model
//
// Decoding either succeeds completely, returning the full stack plus a list
// of recoverable warnings, or fails with a single fatal *errors.Error that
// names the offending line. A fatal error never yields a partial stack.
//
// # Thread Safety
//
// Encoders and Decoders hold only per-call state during Encode/Decode.
// Concurrent calls against independent files need no synchronization.
package slicefile
