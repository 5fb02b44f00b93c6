package rawmem

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/hupe1980/rawmem/internal/byteswap"
)

// Direct typed loads and stores are only legal at the alignment Go
// guarantees for the value's type; anything looser goes through
// byte-wise assembly in native order. On 32-bit platforms the 64-bit
// mask is 0x3, on 64-bit platforms 0x7.
const (
	shortAlignMask = unsafe.Alignof(int16(0)) - 1
	intAlignMask   = unsafe.Alignof(int32(0)) - 1
	longAlignMask  = unsafe.Alignof(int64(0)) - 1
)

// PeekByte reads the byte at addr.
func (m *Memory) PeekByte(addr Address) byte {
	return *(*byte)(addr.pointer())
}

// PokeByte writes value to addr.
func (m *Memory) PokeByte(addr Address, value byte) {
	*(*byte)(addr.pointer()) = value
}

// PeekShort reads the 16-bit value at addr, reversing its bytes when
// swap is set.
func (m *Memory) PeekShort(addr Address, swap bool) int16 {
	var v uint16
	if uintptr(addr)&shortAlignMask == 0 {
		v = *(*uint16)(addr.pointer())
	} else {
		v = binary.NativeEndian.Uint16(addr.bytes(2))
	}
	if swap {
		v = byteswap.Uint16(v)
	}
	return int16(v)
}

// PokeShort writes the 16-bit value to addr, reversing its bytes when
// swap is set.
func (m *Memory) PokeShort(addr Address, value int16, swap bool) {
	v := uint16(value)
	if swap {
		v = byteswap.Uint16(v)
	}
	if uintptr(addr)&shortAlignMask == 0 {
		*(*uint16)(addr.pointer()) = v
	} else {
		binary.NativeEndian.PutUint16(addr.bytes(2), v)
	}
}

// PeekInt reads the 32-bit value at addr, reversing its bytes when swap
// is set.
func (m *Memory) PeekInt(addr Address, swap bool) int32 {
	var v uint32
	if uintptr(addr)&intAlignMask == 0 {
		v = *(*uint32)(addr.pointer())
	} else {
		v = binary.NativeEndian.Uint32(addr.bytes(4))
	}
	if swap {
		v = byteswap.Uint32(v)
	}
	return int32(v)
}

// PokeInt writes the 32-bit value to addr, reversing its bytes when swap
// is set.
func (m *Memory) PokeInt(addr Address, value int32, swap bool) {
	v := uint32(value)
	if swap {
		v = byteswap.Uint32(v)
	}
	if uintptr(addr)&intAlignMask == 0 {
		*(*uint32)(addr.pointer()) = v
	} else {
		binary.NativeEndian.PutUint32(addr.bytes(4), v)
	}
}

// PeekLong reads the 64-bit value at addr, reversing its bytes when swap
// is set.
func (m *Memory) PeekLong(addr Address, swap bool) int64 {
	var v uint64
	if uintptr(addr)&longAlignMask == 0 {
		v = *(*uint64)(addr.pointer())
	} else {
		v = binary.NativeEndian.Uint64(addr.bytes(8))
	}
	if swap {
		v = byteswap.Uint64(v)
	}
	return int64(v)
}

// PokeLong writes the 64-bit value to addr, reversing its bytes when
// swap is set.
func (m *Memory) PokeLong(addr Address, value int64, swap bool) {
	v := uint64(value)
	if swap {
		v = byteswap.Uint64(v)
	}
	if uintptr(addr)&longAlignMask == 0 {
		*(*uint64)(addr.pointer()) = v
	} else {
		binary.NativeEndian.PutUint64(addr.bytes(8), v)
	}
}

// PeekFloat reads the 32-bit value at addr as a float's bit pattern,
// reversing its bytes when swap is set. Going through the bit pattern
// keeps NaN payloads intact.
func (m *Memory) PeekFloat(addr Address, swap bool) float32 {
	return math.Float32frombits(uint32(m.PeekInt(addr, swap)))
}

// PokeFloat writes the float's bit pattern to addr, reversing its bytes
// when swap is set.
func (m *Memory) PokeFloat(addr Address, value float32, swap bool) {
	m.PokeInt(addr, int32(math.Float32bits(value)), swap)
}

// PeekDouble reads the 64-bit value at addr as a double's bit pattern,
// reversing its bytes when swap is set.
func (m *Memory) PeekDouble(addr Address, swap bool) float64 {
	return math.Float64frombits(uint64(m.PeekLong(addr, swap)))
}

// PokeDouble writes the double's bit pattern to addr, reversing its
// bytes when swap is set.
func (m *Memory) PokeDouble(addr Address, value float64, swap bool) {
	m.PokeLong(addr, int64(math.Float64bits(value)), swap)
}
