package rawmem

import (
	"unsafe"

	"github.com/hupe1980/rawmem/internal/byteswap"
	"github.com/hupe1980/rawmem/internal/pool"
)

// Element enumerates the multi-byte numeric types the bulk transfers
// operate on. Floating point elements are moved and swapped through
// their integer bit patterns, so NaN payloads survive the trip.
type Element interface {
	~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// elemBytes returns the backing storage of s as a byte slice.
func elemBytes[E Element](s []E) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(s[0])))
}

// swapElements reverses the byte order of every element of s in place,
// operating on the storage as unsigned integers of the element width.
func swapElements[E Element](s []E) {
	if len(s) == 0 {
		return
	}

	p := unsafe.Pointer(unsafe.SliceData(s))
	switch unsafe.Sizeof(s[0]) {
	case 2:
		u := unsafe.Slice((*uint16)(p), len(s))
		byteswap.Uint16s(u, u)
	case 4:
		u := unsafe.Slice((*uint32)(p), len(s))
		byteswap.Uint32s(u, u)
	case 8:
		u := unsafe.Slice((*uint64)(p), len(s))
		byteswap.Uint64s(u, u)
	}
}

// peekElements copies len(dst) elements from native memory at addr into
// dst, then swaps them in place when requested. Swapping happens on the
// Go-side copy, which is always correctly aligned.
func peekElements[E Element](addr Address, dst []E, swap bool) {
	if len(dst) == 0 {
		return
	}

	db := elemBytes(dst)
	copy(db, addr.bytes(len(db)))
	if swap {
		swapElements(dst)
	}
}

// pokeElements copies src into native memory at addr, swapping each
// element on the way out when requested. src is never modified; the
// swapped form goes through pooled scratch storage.
func pokeElements[E Element](addr Address, src []E, swap bool) {
	if len(src) == 0 {
		return
	}

	if swap {
		esize := int(unsafe.Sizeof(src[0]))
		wp := pool.Get((len(src)*esize + 7) / 8)
		defer pool.Put(wp)

		tmp := unsafe.Slice((*E)(unsafe.Pointer(unsafe.SliceData(*wp))), len(src))
		copy(tmp, src)
		swapElements(tmp)

		sb := elemBytes(tmp)
		copy(addr.bytes(len(sb)), sb)
		return
	}

	sb := elemBytes(src)
	copy(addr.bytes(len(sb)), sb)
}

// PeekByteArray copies len(dst) bytes from native memory at addr into dst.
func (m *Memory) PeekByteArray(addr Address, dst []byte) {
	if len(dst) == 0 {
		return
	}
	copy(dst, addr.bytes(len(dst)))
}

// PokeByteArray copies src into native memory at addr.
func (m *Memory) PokeByteArray(addr Address, src []byte) {
	if len(src) == 0 {
		return
	}
	copy(addr.bytes(len(src)), src)
}

// PeekShortArray copies len(dst) 16-bit values from native memory at
// addr into dst, reversing each element's bytes when swap is set.
func (m *Memory) PeekShortArray(addr Address, dst []int16, swap bool) {
	peekElements(addr, dst, swap)
}

// PokeShortArray copies src into native memory at addr, reversing each
// element's bytes when swap is set.
func (m *Memory) PokeShortArray(addr Address, src []int16, swap bool) {
	pokeElements(addr, src, swap)
}

// PeekCharArray copies len(dst) unsigned 16-bit values from native
// memory at addr into dst, reversing each element's bytes when swap is
// set.
func (m *Memory) PeekCharArray(addr Address, dst []uint16, swap bool) {
	peekElements(addr, dst, swap)
}

// PokeCharArray copies src into native memory at addr, reversing each
// element's bytes when swap is set.
func (m *Memory) PokeCharArray(addr Address, src []uint16, swap bool) {
	pokeElements(addr, src, swap)
}

// PeekIntArray copies len(dst) 32-bit values from native memory at addr
// into dst, reversing each element's bytes when swap is set.
func (m *Memory) PeekIntArray(addr Address, dst []int32, swap bool) {
	peekElements(addr, dst, swap)
}

// PokeIntArray copies src into native memory at addr, reversing each
// element's bytes when swap is set.
func (m *Memory) PokeIntArray(addr Address, src []int32, swap bool) {
	pokeElements(addr, src, swap)
}

// PeekLongArray copies len(dst) 64-bit values from native memory at addr
// into dst, reversing each element's bytes when swap is set.
func (m *Memory) PeekLongArray(addr Address, dst []int64, swap bool) {
	peekElements(addr, dst, swap)
}

// PokeLongArray copies src into native memory at addr, reversing each
// element's bytes when swap is set.
func (m *Memory) PokeLongArray(addr Address, src []int64, swap bool) {
	pokeElements(addr, src, swap)
}

// PeekFloatArray copies len(dst) 32-bit floats from native memory at
// addr into dst, reversing each element's bytes when swap is set.
func (m *Memory) PeekFloatArray(addr Address, dst []float32, swap bool) {
	peekElements(addr, dst, swap)
}

// PokeFloatArray copies src into native memory at addr, reversing each
// element's bytes when swap is set.
func (m *Memory) PokeFloatArray(addr Address, src []float32, swap bool) {
	pokeElements(addr, src, swap)
}

// PeekDoubleArray copies len(dst) 64-bit floats from native memory at
// addr into dst, reversing each element's bytes when swap is set.
func (m *Memory) PeekDoubleArray(addr Address, dst []float64, swap bool) {
	peekElements(addr, dst, swap)
}

// PokeDoubleArray copies src into native memory at addr, reversing each
// element's bytes when swap is set.
func (m *Memory) PokeDoubleArray(addr Address, src []float64, swap bool) {
	pokeElements(addr, src, swap)
}

// Memmove copies length bytes from src to dst. Overlapping ranges are
// handled correctly.
func (m *Memory) Memmove(dst, src Address, length int) {
	if length == 0 {
		return
	}
	copy(dst.bytes(length), src.bytes(length))
}

// Memset fills length bytes at addr with value.
func (m *Memory) Memset(addr Address, value byte, length int) {
	if length == 0 {
		return
	}
	b := addr.bytes(length)
	for i := range b {
		b[i] = value
	}
}

// ArrayCopy copies byteCount bytes from src into dst, reinterpreting
// groups of bytes as dst elements. When swap is set, each element's
// bytes are reversed and only whole elements transfer; a trailing
// partial element is dropped. byteCount is clamped to what both slices
// can supply. Returns the number of bytes copied.
func ArrayCopy[E Element](dst []E, src []byte, byteCount int, swap bool) int {
	var zero E
	esize := int(unsafe.Sizeof(zero))

	if byteCount > len(src) {
		byteCount = len(src)
	}
	db := elemBytes(dst)
	if byteCount > len(db) {
		byteCount = len(db)
	}
	if byteCount <= 0 {
		return 0
	}

	if swap {
		byteCount -= byteCount % esize
		n := copy(db[:byteCount], src)
		swapElements(dst[:n/esize])
		return n
	}
	return copy(db[:byteCount], src)
}
