// Package mmap provides address-based wrappers around the virtual
// memory syscalls.
//
// # Overview
//
// Unlike the slice-oriented helpers in golang.org/x/sys/unix, every
// operation here takes a raw start address and a byte length. Mappings
// are established through MmapPtr/MunmapPtr, so no internal registry
// pins them; the caller owns the returned address and must pair every
// Map and MapAnon with an Unmap of the same address and length.
//
// # Usage
//
//	addr, err := mmap.Map(fd, 0, length, mmap.ProtRead, mmap.Shared)
//	if err != nil { ... }
//	defer mmap.Unmap(addr, length)
//
//	// Flush dirty pages back to the file
//	_ = mmap.Sync(addr, length)
//
//	// Provide kernel hints for access patterns
//	_ = mmap.Advise(addr, length, mmap.AccessWillNeed)
//
// # Platform Support
//
// Linux, macOS and the BSDs. Residency queries (Mincore) are Linux-only
// and report ENOSYS elsewhere; callers are expected to degrade to "not
// resident" rather than fail.
//
// # Anonymous Mappings
//
// MapAnon() creates read-write anonymous mappings for off-heap memory
// allocation, outside the Go garbage collector's control.
//
// # Thread Safety
//
// The wrappers keep no state; concurrent calls are as safe as the
// underlying syscalls. Unmapping a range concurrently with any other
// access to it is a caller bug.
package mmap
