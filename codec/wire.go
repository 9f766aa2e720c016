package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/schema"
)

// MaxStringSize is the longest string, in UTF-8 bytes, the u32 length prefix
// can describe.
const MaxStringSize = math.MaxUint32

// value holds one field between the record representation and the wire.
// Integers travel as their little-endian bit pattern; two's complement makes
// signed and unsigned kinds identical at this level.
type value struct {
	str  string
	bits uint64
}

// recordSize returns the exact encoded length of vals under p.
func recordSize(p *LayoutPlan, vals []value) (int, error) {
	size := p.StaticSize()
	for i := p.FirstDynamic(); i < p.Len(); i++ {
		fl := p.Field(i)
		if fl.Width > 0 {
			size += fl.Width
			continue
		}
		n := len(vals[i].str)
		if err := checkStringLen(p.Path(i), n); err != nil {
			return 0, err
		}
		size += LengthPrefixSize + n
	}
	return size, nil
}

func checkStringLen(path []string, n int) error {
	if uint64(n) > MaxStringSize {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			WireType("string").
			Value(n).
			Detail("string of %d bytes exceeds the u32 length prefix", n).
			Build()
	}
	return nil
}

// writeRecord writes vals into buf, which must be exactly recordSize bytes.
// Static fields go to their planned offsets; the rest follow a cursor that
// starts where the static prefix ends.
func writeRecord(p *LayoutPlan, buf []byte, vals []value) {
	for i := 0; i < p.FirstDynamic(); i++ {
		fl := p.Field(i)
		pos, _ := fl.Offset.Pos()
		putFixed(buf[pos:], fl.Width, vals[i].bits)
	}

	cursor := p.StaticSize()
	for i := p.FirstDynamic(); i < p.Len(); i++ {
		fl := p.Field(i)
		if fl.Width > 0 {
			putFixed(buf[cursor:], fl.Width, vals[i].bits)
			cursor += fl.Width
			continue
		}
		s := vals[i].str
		binary.LittleEndian.PutUint32(buf[cursor:], uint32(len(s)))
		cursor += LengthPrefixSize
		cursor += copy(buf[cursor:], s)
	}
}

// readRecord decodes data into vals and returns the number of bytes consumed.
// Bytes after the last field are ignored. vals is only meaningful when err is
// nil.
func readRecord(p *LayoutPlan, data []byte, vals []value) (int, error) {
	if len(data) < p.StaticSize() {
		for i := 0; i < p.FirstDynamic(); i++ {
			fl := p.Field(i)
			pos, _ := fl.Offset.Pos()
			if pos+fl.Width > len(data) {
				return 0, errors.Truncated(errors.PhaseDecode, p.Path(i), pos, fl.Width, remaining(data, pos))
			}
		}
	}

	for i := 0; i < p.FirstDynamic(); i++ {
		fl := p.Field(i)
		pos, _ := fl.Offset.Pos()
		vals[i].bits = getFixed(data[pos:], fl.Width)
	}

	cursor := p.StaticSize()
	for i := p.FirstDynamic(); i < p.Len(); i++ {
		fl := p.Field(i)
		if fl.Width > 0 {
			if len(data)-cursor < fl.Width {
				return 0, errors.Truncated(errors.PhaseDecode, p.Path(i), cursor, fl.Width, len(data)-cursor)
			}
			vals[i].bits = getFixed(data[cursor:], fl.Width)
			cursor += fl.Width
			continue
		}

		if len(data)-cursor < LengthPrefixSize {
			return 0, errors.Truncated(errors.PhaseDecode, p.Path(i), cursor, LengthPrefixSize, len(data)-cursor)
		}
		n := binary.LittleEndian.Uint32(data[cursor:])
		cursor += LengthPrefixSize

		if uint64(n) > uint64(len(data)-cursor) {
			return 0, errors.New(errors.PhaseDecode, errors.KindTruncated).
				Path(p.Path(i)...).
				Value(cursor).
				Detail("string of %d bytes at offset %d, have %d", n, cursor, len(data)-cursor).
				Build()
		}
		payload := data[cursor : cursor+int(n)]
		if !utf8.Valid(payload) {
			return 0, errors.InvalidUTF8(errors.PhaseDecode, p.Path(i), payload)
		}
		vals[i].str = string(payload)
		cursor += int(n)
	}
	return cursor, nil
}

func remaining(data []byte, pos int) int {
	if pos >= len(data) {
		return 0
	}
	return len(data) - pos
}

func putFixed(dst []byte, width int, bits uint64) {
	switch width {
	case 1:
		dst[0] = byte(bits)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(bits))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(bits))
	case 8:
		binary.LittleEndian.PutUint64(dst, bits)
	}
}

func getFixed(src []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(src))
	case 4:
		return uint64(binary.LittleEndian.Uint32(src))
	case 8:
		return binary.LittleEndian.Uint64(src)
	default:
		return 0
	}
}

// fromAny converts a dynamic record value. ok is false if v does not have the
// exact Go type of k.
func fromAny(k schema.Kind, v any) (value, bool) {
	switch k {
	case schema.KindU8:
		x, ok := v.(uint8)
		return value{bits: uint64(x)}, ok
	case schema.KindS8:
		x, ok := v.(int8)
		return value{bits: uint64(uint8(x))}, ok
	case schema.KindU16:
		x, ok := v.(uint16)
		return value{bits: uint64(x)}, ok
	case schema.KindS16:
		x, ok := v.(int16)
		return value{bits: uint64(uint16(x))}, ok
	case schema.KindU32:
		x, ok := v.(uint32)
		return value{bits: uint64(x)}, ok
	case schema.KindS32:
		x, ok := v.(int32)
		return value{bits: uint64(uint32(x))}, ok
	case schema.KindU64:
		x, ok := v.(uint64)
		return value{bits: x}, ok
	case schema.KindS64:
		x, ok := v.(int64)
		return value{bits: uint64(x)}, ok
	case schema.KindString:
		x, ok := v.(string)
		return value{str: x}, ok
	default:
		return value{}, false
	}
}

// toAny is the inverse of fromAny.
func toAny(k schema.Kind, v value) any {
	switch k {
	case schema.KindU8:
		return uint8(v.bits)
	case schema.KindS8:
		return int8(uint8(v.bits))
	case schema.KindU16:
		return uint16(v.bits)
	case schema.KindS16:
		return int16(uint16(v.bits))
	case schema.KindU32:
		return uint32(v.bits)
	case schema.KindS32:
		return int32(uint32(v.bits))
	case schema.KindU64:
		return v.bits
	case schema.KindS64:
		return int64(v.bits)
	case schema.KindString:
		return v.str
	default:
		return nil
	}
}
