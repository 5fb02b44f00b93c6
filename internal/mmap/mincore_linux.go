package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mincore returns the kernel residency vector for the range. addr must
// be page aligned. One byte is reported per page; the low bit is set
// when the page is resident, the remaining bits are reserved.
//
// x/sys/unix carries no mincore wrapper on Linux, so the syscall is
// made directly.
func Mincore(addr, length uintptr) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}

	pageSize := uintptr(os.Getpagesize())
	vec := make([]byte, (length+pageSize-1)/pageSize)
	_, _, errno := unix.Syscall(unix.SYS_MINCORE, addr, length, uintptr(unsafe.Pointer(&vec[0])))
	if errno != 0 {
		return nil, errno
	}
	return vec, nil
}
