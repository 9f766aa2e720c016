package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/plainwire/codec"
	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/schema"
)

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// bumpGuest exports one page of "memory" and alloc(size) -> ptr, a bump
// allocator starting at 1024.
var bumpGuest = concat(
	wasmHeader,
	[]byte{0x01, 0x06, 0x01, 0x60, 0x01, 0x7f, 0x01, 0x7f},       // type: (i32) -> i32
	[]byte{0x03, 0x02, 0x01, 0x00},                               // func 0: type 0
	[]byte{0x05, 0x03, 0x01, 0x00, 0x01},                         // memory: min 1 page
	[]byte{0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b}, // global: mut i32 = 1024
	[]byte{0x07, 0x12, 0x02, // exports
		0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
		0x05, 'a', 'l', 'l', 'o', 'c', 0x00, 0x00},
	[]byte{0x0a, 0x0d, 0x01, 0x0b, 0x00, // code
		0x23, 0x00, // global.get 0
		0x23, 0x00, // global.get 0
		0x20, 0x00, // local.get 0
		0x6a,       // i32.add
		0x24, 0x00, // global.set 0
		0x0b},
)

// memOnlyGuest exports one page of memory as "mem" and nothing else.
var memOnlyGuest = concat(
	wasmHeader,
	[]byte{0x05, 0x03, 0x01, 0x00, 0x01},
	[]byte{0x07, 0x07, 0x01, 0x03, 'm', 'e', 'm', 0x02, 0x00},
)

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func newGuest(t *testing.T, wasm []byte, cfg *Config) *Guest {
	t.Helper()
	ctx := context.Background()
	rt := NewRuntime(ctx, cfg)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	g, err := Instantiate(ctx, rt, wasm, cfg)
	require.NoError(t, err)
	return g
}

func TestWazeroMemory_ReadWrite(t *testing.T) {
	mem := newGuest(t, memOnlyGuest, nil).Memory()
	require.NotNil(t, mem)
	assert.Equal(t, uint32(65536), mem.Size())

	require.NoError(t, mem.WriteU8(0, 0xab))
	require.NoError(t, mem.WriteU16(2, 0xbeef))
	require.NoError(t, mem.WriteU32(4, 0xdeadbeef))
	require.NoError(t, mem.WriteU64(8, 0x0102030405060708))
	require.NoError(t, mem.Write(16, []byte("plain")))

	u8, err := mem.ReadU8(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xab), u8)

	u16, err := mem.ReadU16(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), u16)

	u32, err := mem.ReadU32(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	u64, err := mem.ReadU64(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	data, err := mem.Read(16, 5)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(data))

	// Little-endian layout is visible bytewise.
	raw, err := mem.Read(4, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, raw)
}

func TestWazeroMemory_OutOfBounds(t *testing.T) {
	mem := newGuest(t, memOnlyGuest, nil).Memory()
	end := mem.Size()

	checks := map[string]error{
		"Read":     func() error { _, err := mem.Read(end-2, 4); return err }(),
		"Write":    mem.Write(end-2, []byte{1, 2, 3, 4}),
		"ReadU8":   func() error { _, err := mem.ReadU8(end); return err }(),
		"ReadU16":  func() error { _, err := mem.ReadU16(end - 1); return err }(),
		"ReadU32":  func() error { _, err := mem.ReadU32(end - 3); return err }(),
		"ReadU64":  func() error { _, err := mem.ReadU64(end - 7); return err }(),
		"WriteU8":  mem.WriteU8(end, 1),
		"WriteU16": mem.WriteU16(end-1, 1),
		"WriteU32": mem.WriteU32(end-3, 1),
		"WriteU64": mem.WriteU64(end-7, 1),
	}
	for name, err := range checks {
		var e *errors.Error
		if assert.True(t, stderrors.As(err, &e), name) {
			assert.Equal(t, errors.PhaseMemory, e.Phase, name)
			assert.Equal(t, errors.KindOutOfBounds, e.Kind, name)
		}
	}
}

func TestWazeroMemory_Nil(t *testing.T) {
	mem := NewWazeroMemory(nil)
	assert.Equal(t, uint32(0), mem.Size())

	_, err := mem.Read(0, 1)
	assert.Error(t, err)
	assert.Error(t, mem.Write(0, []byte{1}))
	_, err = mem.ReadU32(0)
	assert.Error(t, err)
	assert.Error(t, mem.WriteU64(0, 1))
}

func TestWazeroAllocator(t *testing.T) {
	g := newGuest(t, bumpGuest, nil)
	alloc := g.Allocator()
	require.NotNil(t, alloc)
	assert.True(t, alloc.isSimpleAlloc)

	p1, err := alloc.Alloc(10, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), p1)

	p2, err := alloc.WithContext(context.Background()).Alloc(6, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1034), p2)

	// No free export: Free is a no-op.
	alloc.Free(p1, 10, 1)
}

func TestWazeroAllocator_Missing(t *testing.T) {
	g := newGuest(t, memOnlyGuest, nil)
	assert.Nil(t, g.Allocator())

	_, err := NewWazeroAllocator(g.Module())
	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, errors.KindAllocation, e.Kind)

	var nilAlloc *WazeroAllocator
	_, err = nilAlloc.Alloc(4, 1)
	assert.Error(t, err)
	nilAlloc.Free(8, 4, 1)
}

func TestNewGuest_MemoryLookup(t *testing.T) {
	t.Run("falls back to first memory", func(t *testing.T) {
		g := newGuest(t, memOnlyGuest, nil)
		assert.NotNil(t, g.Memory())
	})

	t.Run("explicit name", func(t *testing.T) {
		g := newGuest(t, memOnlyGuest, &Config{MemoryName: "mem"})
		assert.Equal(t, uint32(65536), g.Memory().Size())
	})

	t.Run("explicit name missing", func(t *testing.T) {
		ctx := context.Background()
		rt := NewRuntime(ctx, nil)
		defer rt.Close(ctx)

		_, err := Instantiate(ctx, rt, memOnlyGuest, &Config{MemoryName: "heap"})
		var e *errors.Error
		require.True(t, stderrors.As(err, &e))
		assert.Equal(t, errors.KindFieldMissing, e.Kind)
	})

	t.Run("no memory at all", func(t *testing.T) {
		ctx := context.Background()
		rt := NewRuntime(ctx, nil)
		defer rt.Close(ctx)

		_, err := Instantiate(ctx, rt, wasmHeader, nil)
		assert.Error(t, err)
	})

	t.Run("invalid binary", func(t *testing.T) {
		ctx := context.Background()
		rt := NewRuntime(ctx, nil)
		defer rt.Close(ctx)

		_, err := Instantiate(ctx, rt, []byte("not wasm"), nil)
		var e *errors.Error
		require.True(t, stderrors.As(err, &e))
		assert.NotNil(t, e.Cause)
	})
}

func TestNewRuntime_MemoryLimit(t *testing.T) {
	g := newGuest(t, bumpGuest, &Config{MemoryLimitPages: 1})
	assert.Equal(t, uint32(65536), g.Memory().Size())
}

func TestGuest_RecordRoundTrip(t *testing.T) {
	s := schema.MustNew("swap",
		schema.Field{Name: "qty_1", Kind: schema.KindU64},
		schema.Field{Name: "qty_2", Kind: schema.KindString},
		schema.Field{Name: "qty_3", Kind: schema.KindS32},
	)
	plan, err := codec.PlanLayout(s)
	require.NoError(t, err)

	g := newGuest(t, bumpGuest, nil)
	rec := codec.Record{"qty_1": uint64(1), "qty_2": "Hello dsfg", "qty_3": int32(1000)}

	ptr, size, err := codec.NewEncoder(plan).EncodeAlloc(rec, g.Memory(), g.Allocator())
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), ptr)
	assert.Equal(t, uint32(26), size)

	prefix, err := g.Memory().ReadU32(ptr + 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), prefix, "string length prefix")

	got, err := codec.NewDecoder(plan).DecodeFromMemory(ptr, size, g.Memory())
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = codec.NewDecoder(plan).DecodeFromMemory(ptr, 10, g.Memory())
	assert.True(t, stderrors.Is(err, errors.ErrTruncated))
}

func TestLogger_AllocatorDiscovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	newGuest(t, bumpGuest, nil)
	entries := logs.FilterMessage("guest allocator found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "alloc", entries[0].ContextMap()["export"])

	newGuest(t, memOnlyGuest, nil)
	assert.Equal(t, 1, logs.FilterMessage("guest has no usable allocator").Len())
}
