// Package schema describes the shape of a plain record: an ordered, immutable
// list of named fields, each with a primitive Kind.
//
// A Schema only describes. Whether every Kind in it can be laid out is decided
// by the layout planner, which rejects anything outside the fixed-width
// integers and string.
//
// Schemas can be declared directly:
//
//	s, err := schema.New("swap",
//		schema.Field{Name: "qty_1", Kind: schema.KindU64},
//		schema.Field{Name: "qty_2", Kind: schema.KindString},
//		schema.Field{Name: "qty_3", Kind: schema.KindS32},
//	)
//
// or derived from a WIT record definition (FromWIT) or a Go struct type
// (FromStruct).
package schema
