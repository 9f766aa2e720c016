package engine

import (
	"github.com/tetratelabs/wazero/api"

	plainwire "github.com/wippyai/plainwire"
	"github.com/wippyai/plainwire/errors"
)

// WazeroMemory wraps wazero memory to implement plainwire.Memory
type WazeroMemory struct {
	mem api.Memory
}

// NewWazeroMemory wraps mem. A nil mem yields a memory on which every access
// fails.
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

// Read returns a view of guest memory, not a copy. It is invalidated when the
// guest grows its memory.
func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if m.mem == nil {
		return nil, noMemory()
	}
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, m.outOfBounds("read", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if m.mem == nil {
		return noMemory()
	}
	if !m.mem.Write(offset, data) {
		return m.outOfBounds("write", offset, uint32(len(data)))
	}
	return nil
}

func (m *WazeroMemory) ReadU8(offset uint32) (uint8, error) {
	if m.mem == nil {
		return 0, noMemory()
	}
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, m.outOfBounds("read", offset, 1)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU16(offset uint32) (uint16, error) {
	if m.mem == nil {
		return 0, noMemory()
	}
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, m.outOfBounds("read", offset, 2)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU32(offset uint32) (uint32, error) {
	if m.mem == nil {
		return 0, noMemory()
	}
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, m.outOfBounds("read", offset, 4)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU64(offset uint32) (uint64, error) {
	if m.mem == nil {
		return 0, noMemory()
	}
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, m.outOfBounds("read", offset, 8)
	}
	return v, nil
}

func (m *WazeroMemory) WriteU8(offset uint32, value uint8) error {
	if m.mem == nil {
		return noMemory()
	}
	if !m.mem.WriteByte(offset, value) {
		return m.outOfBounds("write", offset, 1)
	}
	return nil
}

func (m *WazeroMemory) WriteU16(offset uint32, value uint16) error {
	if m.mem == nil {
		return noMemory()
	}
	if !m.mem.WriteUint16Le(offset, value) {
		return m.outOfBounds("write", offset, 2)
	}
	return nil
}

func (m *WazeroMemory) WriteU32(offset uint32, value uint32) error {
	if m.mem == nil {
		return noMemory()
	}
	if !m.mem.WriteUint32Le(offset, value) {
		return m.outOfBounds("write", offset, 4)
	}
	return nil
}

func (m *WazeroMemory) WriteU64(offset uint32, value uint64) error {
	if m.mem == nil {
		return noMemory()
	}
	if !m.mem.WriteUint64Le(offset, value) {
		return m.outOfBounds("write", offset, 8)
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

func (m *WazeroMemory) outOfBounds(op string, offset, length uint32) *errors.Error {
	return errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
		Value(offset).
		Detail("%s of %d bytes at 0x%x exceeds memory size %d", op, length, offset, m.mem.Size()).
		Build()
}

func noMemory() *errors.Error {
	return errors.New(errors.PhaseMemory, errors.KindNilPointer).
		Detail("guest exports no memory").
		Build()
}

// Compile-time check that WazeroMemory implements plainwire.Memory and MemorySizer
var _ plainwire.Memory = (*WazeroMemory)(nil)
var _ plainwire.MemorySizer = (*WazeroMemory)(nil)
