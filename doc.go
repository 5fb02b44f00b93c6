// Package rawmem provides direct access to native memory outside the Go heap.
//
// Rawmem is the low-level memory layer for code that works with raw
// addresses: scalar and bulk peek/poke with optional byte-order swapping,
// file-backed memory mapping, and a tracked allocator whose budget is
// enforced by an external accountant.
//
// # Quick Start
//
//	mem := rawmem.New()
//
//	addr, _ := mem.Malloc(4096)
//	defer mem.Free(addr)
//
//	mem.PokeInt(addr, 42, false)
//	v := mem.PeekInt(addr, false) // 42
//
// # Byte Order
//
// Every multi-byte operation takes a swap flag. Pass false for values in
// host order; pass true to reverse each value's bytes on the way in or
// out. NeedsSwap derives the flag from an encoding/binary byte order:
//
//	swap := rawmem.NeedsSwap(binary.BigEndian)
//	mem.PokeIntArray(addr, ints, swap)
//
// Floating point values are transferred through their integer bit
// patterns, so NaN payloads are preserved exactly.
//
// # Mapped Regions
//
//	f, _ := os.Open("data.bin")
//	addr, _ := mem.Map(int(f.Fd()), 0, size, rawmem.MapReadOnly)
//	defer mem.Unmap(addr, size)
//
//	mem.Load(addr, size)          // best-effort page-in
//	ok := mem.IsLoaded(addr, size)
//
// The buffer subpackage wraps mapped regions in a bounds-checked view
// with granularity-compensated file offsets.
//
// # Allocation Accounting
//
// Malloc asks the configured Accountant to admit each allocation and
// Free reports the recorded size back, so an external budget always sees
// matching admit/release pairs:
//
//	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	mem := rawmem.New(rawmem.WithAccountant(ctrl))
//
// # Safety Model
//
// Addresses are raw pointers without lifetimes. Reading or writing an
// address that is not backed by a live mapping or allocation faults the
// process, the same as it would in C. The package promises only that
// operations on valid, non-overlapping ranges are safe to use from
// multiple goroutines.
//
// # Platform Support
//
// Linux, macOS and the BSDs. Residency queries (IsLoaded, ResidentPages)
// need Linux; elsewhere they degrade to "not resident".
package rawmem
