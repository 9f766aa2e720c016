package codec

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/schema"
)

// swapSchema is the three-field record used across the package tests.
func swapSchema() *schema.Schema {
	return schema.MustNew("swap",
		schema.Field{Name: "qty_1", Kind: schema.KindU64},
		schema.Field{Name: "qty_2", Kind: schema.KindString},
		schema.Field{Name: "qty_3", Kind: schema.KindS32},
	)
}

func swapRecord() Record {
	return Record{
		"qty_1": uint64(1),
		"qty_2": "Hello dsfg",
		"qty_3": int32(1000),
	}
}

// swapBytes is the encoding of swapRecord.
var swapBytes = []byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // qty_1
	0x0a, 0x00, 0x00, 0x00, // len(qty_2)
	'H', 'e', 'l', 'l', 'o', ' ', 'd', 's', 'f', 'g',
	0xe8, 0x03, 0x00, 0x00, // qty_3
}

// allKindsSchema has one field of every supported kind, with fixed fields on
// both sides of the first string.
func allKindsSchema() *schema.Schema {
	return schema.MustNew("all",
		schema.Field{Name: "a_u8", Kind: schema.KindU8},
		schema.Field{Name: "a_s8", Kind: schema.KindS8},
		schema.Field{Name: "a_u16", Kind: schema.KindU16},
		schema.Field{Name: "a_s16", Kind: schema.KindS16},
		schema.Field{Name: "name", Kind: schema.KindString},
		schema.Field{Name: "b_u32", Kind: schema.KindU32},
		schema.Field{Name: "b_s32", Kind: schema.KindS32},
		schema.Field{Name: "note", Kind: schema.KindString},
		schema.Field{Name: "b_u64", Kind: schema.KindU64},
		schema.Field{Name: "b_s64", Kind: schema.KindS64},
	)
}

func allKindsRecord() Record {
	return Record{
		"a_u8":  uint8(0xff),
		"a_s8":  int8(-128),
		"a_u16": uint16(0xbeef),
		"a_s16": int16(-2),
		"name":  "héllo wörld",
		"b_u32": uint32(0xdeadbeef),
		"b_s32": int32(-1000),
		"note":  "",
		"b_u64": uint64(1 << 63),
		"b_s64": int64(-9223372036854775808),
	}
}

func mustPlan(t testing.TB, s *schema.Schema) *LayoutPlan {
	t.Helper()
	p, err := PlanLayout(s)
	if err != nil {
		t.Fatalf("PlanLayout(%s): %v", s, err)
	}
	return p
}

func asError(t *testing.T, err error) *errors.Error {
	t.Helper()
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	return e
}

func emptySchema() *schema.Schema {
	return schema.MustNew("empty")
}
