package codec

// Record is a record instance keyed by field name. Values must have the exact
// Go type of their field kind:
//
//	u8 uint8   s8 int8   u16 uint16   s16 int16
//	u32 uint32 s32 int32 u64 uint64   s64 int64   string string
type Record map[string]any
