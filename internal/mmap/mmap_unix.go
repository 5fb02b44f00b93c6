//go:build linux || darwin || freebsd || netbsd || openbsd

package mmap

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Protection bits for Map.
const (
	ProtRead  = unix.PROT_READ
	ProtWrite = unix.PROT_WRITE
)

// Sharing flags for Map.
const (
	Shared  = unix.MAP_SHARED
	Private = unix.MAP_PRIVATE
)

// view reinterprets an address range as a byte slice for the slice-based
// syscall wrappers. The wrappers only pass the base pointer and length to
// the kernel; nothing retains the slice.
func view(addr, length uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}

// Map establishes a mapping of length bytes of fd starting at offset and
// returns its start address. The kernel chooses where to place it.
func Map(fd int, offset int64, length uintptr, prot, flags int) (uintptr, error) {
	p, err := unix.MmapPtr(fd, offset, nil, length, prot, flags)
	if err != nil {
		return 0, err
	}
	return uintptr(p), nil
}

// MapAnon establishes a zero-filled read-write private mapping of length
// bytes backed by no file.
func MapAnon(length uintptr) (uintptr, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	p, err := unix.MmapPtr(-1, 0, nil, length, prot, flags)
	if err != nil {
		return 0, err
	}
	return uintptr(p), nil
}

// Unmap releases a mapping. addr and length must describe a range
// obtained from Map or MapAnon.
func Unmap(addr, length uintptr) error {
	return unix.MunmapPtr(unsafe.Pointer(addr), length)
}

// Sync writes modified pages of the range back to the underlying file,
// blocking until the write-back completes.
func Sync(addr, length uintptr) error {
	if length == 0 {
		return nil
	}
	return unix.Msync(view(addr, length), unix.MS_SYNC)
}

// Lock wires the pages of the range into physical memory.
func Lock(addr, length uintptr) error {
	if length == 0 {
		return nil
	}
	return unix.Mlock(view(addr, length))
}

// Unlock releases the wiring established by Lock.
func Unlock(addr, length uintptr) error {
	if length == 0 {
		return nil
	}
	return unix.Munlock(view(addr, length))
}

// Advise provides hints to the kernel about how the range will be accessed.
func Advise(addr, length uintptr, pattern AccessPattern) error {
	if length == 0 {
		return nil
	}

	var advice int
	switch pattern {
	case AccessSequential:
		advice = unix.MADV_SEQUENTIAL
	case AccessRandom:
		advice = unix.MADV_RANDOM
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	case AccessDontNeed:
		advice = unix.MADV_DONTNEED
	default:
		advice = unix.MADV_NORMAL
	}

	// On Linux, madvise requires page-aligned addresses.
	// If the range isn't page-aligned, we silently succeed since
	// the hint is advisory and non-critical.
	err := unix.Madvise(view(addr, length), advice)
	if err == unix.EINVAL {
		return nil
	}
	return err
}
