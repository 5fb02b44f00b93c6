package byteswap

import "math/bits"

// Uint16 returns v with its two bytes exchanged.
func Uint16(v uint16) uint16 { return bits.ReverseBytes16(v) }

// Uint32 returns v with its four bytes reversed.
func Uint32(v uint32) uint32 { return bits.ReverseBytes32(v) }

// Uint64 returns v with its eight bytes reversed.
func Uint64(v uint64) uint64 { return bits.ReverseBytes64(v) }

// Uint16s writes the byte-swapped elements of src into dst.
//
// Adjacent pairs are combined into a single 32-bit unit: reversing the
// unit swaps the bytes of each half and exchanges the halves, and the
// rotate exchanges them back. An odd trailing element is swapped alone.
func Uint16s(dst, src []uint16) {
	n := min(len(dst), len(src))
	dst, src = dst[:n], src[:n]

	for len(src) >= 2 {
		v := uint32(src[0]) | uint32(src[1])<<16
		v = bits.RotateLeft32(bits.ReverseBytes32(v), 16)
		dst[0] = uint16(v)
		dst[1] = uint16(v >> 16)
		dst, src = dst[2:], src[2:]
	}

	if len(src) == 1 {
		dst[0] = bits.ReverseBytes16(src[0])
	}
}

// Uint32s writes the byte-swapped elements of src into dst.
func Uint32s(dst, src []uint32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = bits.ReverseBytes32(src[i])
	}
}

// Uint64s writes the byte-swapped elements of src into dst.
func Uint64s(dst, src []uint64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = bits.ReverseBytes64(src[i])
	}
}
