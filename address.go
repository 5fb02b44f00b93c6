package rawmem

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"
)

// Address is a location in the process's virtual address space.
//
// Addresses are full-width values obtained from Map, Malloc or foreign
// code handing out raw pointers. The zero Address is never a valid
// target; Free treats it as a no-op and every other operation on it is
// a caller bug.
type Address uintptr

// String formats the address as hexadecimal.
func (a Address) String() string {
	return fmt.Sprintf("%#x", uintptr(a))
}

// pointer reinterprets the address for dereferencing.
func (a Address) pointer() unsafe.Pointer {
	return unsafe.Pointer(a)
}

// bytes returns an n-byte view of the memory starting at a. The view
// aliases native memory and stays valid only while the underlying region
// remains mapped.
func (a Address) bytes(n int) []byte {
	return unsafe.Slice((*byte)(a.pointer()), n)
}

// NativeOrder returns the byte order of the host.
func NativeOrder() binary.ByteOrder {
	return binary.NativeEndian
}

// NeedsSwap reports whether values encoded in the given byte order must
// be byte-swapped to match the host. A nil order means native.
func NeedsSwap(order binary.ByteOrder) bool {
	if order == nil {
		return false
	}
	// ByteOrder values of different concrete types never compare equal,
	// and NativeEndian's name is not one of the fixed orders' names, so
	// the orders are compared by how they lay out an asymmetric probe.
	probe := []byte{1, 0}
	return order.Uint16(probe) != binary.NativeEndian.Uint16(probe)
}

// PageSize returns the size in bytes of a virtual memory page.
func PageSize() int {
	return os.Getpagesize()
}
