// Package errors provides structured error types for the xmlbin module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the offending value and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidData).
//		Path("Header", "Count").
//		Detail("cannot parse %q as uint32", text).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OddHexDigits(path, "abc")
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 36, 12)
//
// All errors implement the standard error interface and support errors.Is/As.
// IsKind matches a kind regardless of phase.
package errors
