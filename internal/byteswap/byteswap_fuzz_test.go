package byteswap

import (
	"encoding/binary"
	"testing"
)

// FuzzSliceSwap tests the slice routines with arbitrary payloads. Each
// width must agree with its scalar swap element by element, and applying
// the swap twice must restore the original contents.
func FuzzSliceSwap(f *testing.F) {
	// Seed with empty, sub-element and odd-tail payloads
	f.Add([]byte{})
	f.Add([]byte{0x01})
	f.Add([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE})
	f.Add([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Skip extremely large inputs to avoid timeout
		if len(data) > 1<<16 {
			t.Skip()
		}

		u16 := make([]uint16, len(data)/2)
		for i := range u16 {
			u16[i] = binary.LittleEndian.Uint16(data[2*i:])
		}
		u32 := make([]uint32, len(data)/4)
		for i := range u32 {
			u32[i] = binary.LittleEndian.Uint32(data[4*i:])
		}
		u64 := make([]uint64, len(data)/8)
		for i := range u64 {
			u64[i] = binary.LittleEndian.Uint64(data[8*i:])
		}

		once16 := make([]uint16, len(u16))
		Uint16s(once16, u16)
		for i := range u16 {
			if once16[i] != Uint16(u16[i]) {
				t.Fatalf("Uint16s[%d] = %#x, scalar swap = %#x", i, once16[i], Uint16(u16[i]))
			}
		}
		Uint16s(once16, once16)
		for i := range u16 {
			if once16[i] != u16[i] {
				t.Fatalf("double swap changed element %d: %#x != %#x", i, once16[i], u16[i])
			}
		}

		once32 := make([]uint32, len(u32))
		Uint32s(once32, u32)
		for i := range u32 {
			if once32[i] != Uint32(u32[i]) {
				t.Fatalf("Uint32s[%d] = %#x, scalar swap = %#x", i, once32[i], Uint32(u32[i]))
			}
		}
		Uint32s(once32, once32)
		for i := range u32 {
			if once32[i] != u32[i] {
				t.Fatalf("double swap changed element %d: %#x != %#x", i, once32[i], u32[i])
			}
		}

		once64 := make([]uint64, len(u64))
		Uint64s(once64, u64)
		for i := range u64 {
			if once64[i] != Uint64(u64[i]) {
				t.Fatalf("Uint64s[%d] = %#x, scalar swap = %#x", i, once64[i], Uint64(u64[i]))
			}
		}
		Uint64s(once64, once64)
		for i := range u64 {
			if once64[i] != u64[i] {
				t.Fatalf("double swap changed element %d: %#x != %#x", i, once64[i], u64[i])
			}
		}
	})
}
