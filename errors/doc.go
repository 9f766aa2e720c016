// Package errors provides structured error types for plainwire.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the Go and wire type names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTruncated).
//		Path("swap", "qty_3").
//		WireType("s32").
//		Detail("need 4 bytes at offset 22, have 2").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u32")
//	err := errors.Truncated(errors.PhaseDecode, path, 22, 4, 2)
//
// Every error matches the sentinel of its category through errors.Is:
//
//	ErrSchema           unsupported field type while planning a layout
//	ErrEncodingOverflow string longer than the u32 length prefix allows
//	ErrTruncated        fewer bytes than a field needs
//	ErrInvalidUTF8      string payload is not valid UTF-8
package errors
