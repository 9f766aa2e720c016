// Package layout plans where each field of a plain record lives on the wire.
//
// Fields are laid out back to back in schema order with no padding. Every
// field before the first string has a Static offset: the sum of the widths of
// the fields before it. A string's length is only known at runtime, so the
// first string and every field after it, fixed-width or not, is Dynamic and
// must be located with a cursor.
//
//	u64 qty_1   Static(0)
//	string qty_2 Dynamic
//	s32 qty_3   Dynamic
//
// A Plan is computed once per schema and shared by the encoder and decoder,
// so both sides agree on where the static prefix ends.
//
// This package is internal to plainwire.
package layout
