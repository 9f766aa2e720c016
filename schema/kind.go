package schema

import "reflect"

// Kind is the primitive type of a field.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindChar
	KindString
	KindRecord
	KindList
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindU8:     "u8",
	KindS8:     "s8",
	KindU16:    "u16",
	KindS16:    "s16",
	KindU32:    "u32",
	KindS32:    "s32",
	KindU64:    "u64",
	KindS64:    "s64",
	KindF32:    "f32",
	KindF64:    "f64",
	KindChar:   "char",
	KindString: "string",
	KindRecord: "record",
	KindList:   "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Width returns the encoded byte width of a fixed-width integer kind, or 0.
func (k Kind) Width() int {
	switch k {
	case KindU8, KindS8:
		return 1
	case KindU16, KindS16:
		return 2
	case KindU32, KindS32:
		return 4
	case KindU64, KindS64:
		return 8
	default:
		return 0
	}
}

// IsFixed reports whether k is a supported fixed-width integer kind.
func (k Kind) IsFixed() bool {
	return k.Width() != 0
}

// Supported reports whether k can appear in a plain record layout.
func (k Kind) Supported() bool {
	return k.IsFixed() || k == KindString
}

// IsSigned reports whether k is a two's-complement integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case KindS8, KindS16, KindS32, KindS64:
		return true
	default:
		return false
	}
}

// GoKind returns the reflect.Kind that holds values of k, or reflect.Invalid
// for kinds without a plain record representation.
func (k Kind) GoKind() reflect.Kind {
	switch k {
	case KindU8:
		return reflect.Uint8
	case KindS8:
		return reflect.Int8
	case KindU16:
		return reflect.Uint16
	case KindS16:
		return reflect.Int16
	case KindU32:
		return reflect.Uint32
	case KindS32:
		return reflect.Int32
	case KindU64:
		return reflect.Uint64
	case KindS64:
		return reflect.Int64
	case KindString:
		return reflect.String
	default:
		return reflect.Invalid
	}
}

// KindOf maps a Go reflect.Kind onto a Kind. Platform-width int and uint have
// no fixed encoding and are not mapped.
func KindOf(k reflect.Kind) (Kind, bool) {
	switch k {
	case reflect.Bool:
		return KindBool, true
	case reflect.Uint8:
		return KindU8, true
	case reflect.Int8:
		return KindS8, true
	case reflect.Uint16:
		return KindU16, true
	case reflect.Int16:
		return KindS16, true
	case reflect.Uint32:
		return KindU32, true
	case reflect.Int32:
		return KindS32, true
	case reflect.Uint64:
		return KindU64, true
	case reflect.Int64:
		return KindS64, true
	case reflect.Float32:
		return KindF32, true
	case reflect.Float64:
		return KindF64, true
	case reflect.String:
		return KindString, true
	case reflect.Struct:
		return KindRecord, true
	case reflect.Slice, reflect.Array:
		return KindList, true
	default:
		return 0, false
	}
}
