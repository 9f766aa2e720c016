package codec

import (
	plainwire "github.com/wippyai/plainwire"
	"github.com/wippyai/plainwire/errors"
	"github.com/wippyai/plainwire/internal/abi"
	"go.uber.org/zap"
)

type Memory = plainwire.Memory
type Allocator = plainwire.Allocator

// EncodeToMemory encodes rec and writes it to mem at addr. It returns the
// number of bytes written.
func (e *Encoder) EncodeToMemory(rec Record, addr uint32, mem Memory) (uint32, error) {
	buf, err := e.Encode(rec)
	if err != nil {
		return 0, err
	}
	size, err := memorySize(buf, addr)
	if err != nil {
		return 0, err
	}
	if err := mem.Write(addr, buf); err != nil {
		return 0, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Cause(err).
			Detail("write %d bytes at 0x%x", size, addr).
			Build()
	}
	return size, nil
}

// EncodeAlloc encodes rec into a fresh allocation from alloc. The caller owns
// the returned region. A record that encodes to zero bytes allocates nothing
// and returns ptr 0.
func (e *Encoder) EncodeAlloc(rec Record, mem Memory, alloc Allocator) (ptr, size uint32, err error) {
	buf, err := e.Encode(rec)
	if err != nil {
		return 0, 0, err
	}
	size, err = memorySize(buf, 0)
	if err != nil {
		return 0, 0, err
	}
	if size == 0 {
		return 0, 0, nil
	}

	ptr, err = alloc.Alloc(size, 1)
	if err != nil {
		ae := errors.AllocationFailed(errors.PhaseMemory, size, 1)
		ae.Cause = err
		return 0, 0, ae
	}
	if err := mem.Write(ptr, buf); err != nil {
		alloc.Free(ptr, size, 1)
		Logger().Warn("encoded record did not fit its allocation",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
		return 0, 0, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Cause(err).
			Detail("write %d bytes at 0x%x", size, ptr).
			Build()
	}
	return ptr, size, nil
}

// DecodeFromMemory reads length bytes at addr and decodes one record from
// them. As with Decode, bytes after the record are ignored.
func (d *Decoder) DecodeFromMemory(addr, length uint32, mem Memory) (Record, error) {
	if _, ok := abi.SafeAddU32(addr, length); !ok {
		return nil, regionOverflow(addr, length)
	}
	data, err := mem.Read(addr, length)
	if err != nil {
		return nil, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Cause(err).
			Detail("read %d bytes at 0x%x", length, addr).
			Build()
	}
	return d.Decode(data)
}

func memorySize(buf []byte, addr uint32) (uint32, error) {
	if uint64(len(buf)) > uint64(^uint32(0)) {
		return 0, errors.Overflow(errors.PhaseMemory, nil, len(buf), "u32 address space")
	}
	size := uint32(len(buf))
	if _, ok := abi.SafeAddU32(addr, size); !ok {
		return 0, regionOverflow(addr, size)
	}
	return size, nil
}

func regionOverflow(addr, size uint32) *errors.Error {
	return errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
		Value(addr).
		Detail("region 0x%x+%d exceeds the u32 address space", addr, size).
		Build()
}
