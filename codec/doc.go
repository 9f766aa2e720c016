// Package codec encodes and decodes plain records.
//
// # Wire Format
//
// Fields appear in schema order, back to back, with no separators or padding:
//
//	Kind            Bytes on the wire
//	──────────────────────────────────────────────
//	u8/s8           1, little-endian
//	u16/s16         2, little-endian
//	u32/s32         4, little-endian
//	u64/s64         8, little-endian
//	string          u32 length N, then N UTF-8 bytes
//
// Signed integers are two's complement. There is no type tag, version or
// checksum; producer and consumer must share the schema.
//
// # Layout Plans
//
// PlanLayout marks each field Static or Dynamic. Fields before the first
// string sit at offsets known from the schema alone and are read straight
// from their slice. From the first string onwards every field is located by a
// cursor, because its position depends on the length of earlier strings.
// Encoder, Decoder and Codec all consult the same plan.
//
// # Key Types
//
//	LayoutPlan    - Static/Dynamic placement of every field
//	Encoder       - Record (map by field name) to bytes
//	Decoder       - bytes to Record
//	Compiler      - binds a plan to a Go struct type, cached
//	Codec[T]      - struct to bytes and back through a compiled binding
//
// # Encoding Flow
//
//  1. PlanLayout(schema) → LayoutPlan
//  2. NewEncoder(plan).Encode(record)
//     or NewCodec[T](plan).Marshal(&v)
//
// # Decoding Flow
//
//  1. PlanLayout(schema) → LayoutPlan
//  2. NewDecoder(plan).Decode(data)
//     or NewCodec[T](plan).Unmarshal(data, &v)
//
// # Errors
//
// Encode fails with errors.ErrEncodingOverflow if a string is longer than a
// u32 can describe. Decode fails with errors.ErrTruncated when a field needs
// more bytes than remain, and errors.ErrInvalidUTF8 when string bytes are not
// UTF-8. Decoding is all-or-nothing: no partial record is ever returned.
// Bytes after the last field are not an error; DecodePrefix and
// UnmarshalPrefix report how many bytes the record used.
//
// # Linear Memory
//
// EncodeToMemory, EncodeAlloc and DecodeFromMemory move records in and out of
// a Memory such as a WebAssembly guest's linear memory (see package engine).
package codec
