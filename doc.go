// Package plainwire encodes fixed-schema plain records into a compact
// positional little-endian byte format, and decodes them back.
//
// A plain record is an ordered list of named fields, each a fixed-width
// integer (u8/s8 through u64/s64) or a UTF-8 string. There are no tags,
// version bytes, padding or checksums on the wire: both sides know the schema.
//
//	u64    qty_1 = 1             01 00 00 00 00 00 00 00
//	string qty_2 = "Hello dsfg"  0a 00 00 00 48 65 6c 6c 6f 20 64 73 66 67
//	s32    qty_3 = 1000          e8 03 00 00
//
// # Architecture Overview
//
//	plainwire/           Root package with Memory and Allocator interfaces
//	├── schema/          Field kinds, Schema, derivation from WIT and Go structs
//	├── codec/           Layout planning, Encoder/Decoder, typed Codec[T]
//	├── engine/          wazero guest memory, allocator and runtime setup
//	├── errors/          Structured error types
//	└── internal/        Layout planner and low-level helpers
//
// # Quick Start
//
//	type Swap struct {
//	    Qty1 uint64 `wire:"qty_1"`
//	    Qty2 string `wire:"qty_2"`
//	    Qty3 int32  `wire:"qty_3"`
//	}
//
//	c, err := codec.DeriveCodec[Swap]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b, err := c.Marshal(&Swap{Qty1: 1, Qty2: "Hello dsfg", Qty3: 1000})
//	// len(b) == 26
//
//	var out Swap
//	err = c.Unmarshal(b, &out)
//
// # Thread Safety
//
// Schemas, layout plans, encoders, decoders and codecs are immutable after
// construction and safe for concurrent use.
package plainwire
