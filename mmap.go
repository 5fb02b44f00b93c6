package rawmem

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/rawmem/internal/conv"
	"github.com/hupe1980/rawmem/internal/mmap"
)

// MapMode selects the protection and sharing of a mapped region.
type MapMode int

const (
	// MapPrivate maps the region read-write copy-on-write; stores are
	// visible only to this process and never reach the file.
	MapPrivate MapMode = iota
	// MapReadOnly maps the region shared and read-only.
	MapReadOnly
	// MapReadWrite maps the region shared and read-write; stores reach
	// the file.
	MapReadWrite
)

// String implements fmt.Stringer.
func (mm MapMode) String() string {
	switch mm {
	case MapPrivate:
		return "private"
	case MapReadOnly:
		return "read-only"
	case MapReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("mode(%d)", int(mm))
	}
}

// Advice hints the kernel about the expected access pattern of a region.
type Advice int

const (
	// AdviceNormal clears any previously applied hint.
	AdviceNormal Advice = iota
	// AdviceSequential expects the region to be read front to back.
	AdviceSequential
	// AdviceRandom expects scattered access.
	AdviceRandom
	// AdviceWillNeed expects access in the near future.
	AdviceWillNeed
	// AdviceDontNeed expects no access in the near future.
	AdviceDontNeed
)

// Map maps size bytes of fd starting at offset and returns the address
// of the new region. The kernel chooses where to place it.
func (m *Memory) Map(fd int, offset, size int64, mode MapMode) (Address, error) {
	var prot, flags int
	switch mode {
	case MapPrivate:
		prot = mmap.ProtRead | mmap.ProtWrite
		flags = mmap.Private
	case MapReadOnly:
		prot = mmap.ProtRead
		flags = mmap.Shared
	case MapReadWrite:
		prot = mmap.ProtRead | mmap.ProtWrite
		flags = mmap.Shared
	default:
		err := &ErrInvalidMapMode{Mode: mode}
		m.logger.Error("bad map mode", "mode", int(mode))
		m.metrics.RecordMap(size, 0, err)
		return 0, err
	}

	length, err := conv.Int64ToUintptr(size)
	if err != nil {
		return 0, &ErrInvalidSize{Size: size, cause: err}
	}

	start := time.Now()
	addr, err := mmap.Map(fd, offset, length, prot, flags)
	m.metrics.RecordMap(size, time.Since(start), err)
	m.logger.LogMap(Address(addr), size, mode, err)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMapFailed, err)
	}
	return Address(addr), nil
}

// Unmap releases the mapped region of size bytes at addr. addr and size
// must describe a range obtained from Map.
func (m *Memory) Unmap(addr Address, size int64) error {
	length, err := conv.Int64ToUintptr(size)
	if err != nil {
		return &ErrInvalidSize{Size: size, cause: err}
	}

	err = mmap.Unmap(uintptr(addr), length)
	m.metrics.RecordUnmap(size, err)
	m.logger.LogUnmap(addr, size, err)
	return err
}

// Sync writes modified pages of the region back to the underlying file,
// blocking until the write-back completes.
func (m *Memory) Sync(addr Address, size int64) error {
	length, err := conv.Int64ToUintptr(size)
	if err != nil {
		return &ErrInvalidSize{Size: size, cause: err}
	}

	start := time.Now()
	err = mmap.Sync(uintptr(addr), length)
	m.metrics.RecordSync(size, time.Since(start), err)
	m.logger.LogSync(addr, size, err)
	if err != nil {
		return fmt.Errorf("sync mapped region: %w", err)
	}
	return nil
}

// Load touches the region into physical memory as a best-effort hint.
// The pages are wired and immediately unwired again, so they end up
// resident without holding locked-memory budget. Failures are ignored.
func (m *Memory) Load(addr Address, size int64) {
	length, err := conv.Int64ToUintptr(size)
	if err != nil {
		return
	}

	start := time.Now()
	err = mmap.Lock(uintptr(addr), length)
	if err == nil {
		_ = mmap.Unlock(uintptr(addr), length)
	}
	m.metrics.RecordLoad(size, time.Since(start), err)
	m.logger.LogLoad(addr, size, err)
}

// IsLoaded reports whether every page of the region is resident in
// physical memory. A zero-size region is trivially resident; a failing
// residency query reports false.
func (m *Memory) IsLoaded(addr Address, size int64) bool {
	if size == 0 {
		return true
	}

	vec, err := residencyVector(addr, size)
	if err != nil {
		return false
	}
	for _, v := range vec {
		if v&1 == 0 {
			return false
		}
	}
	return true
}

// ResidentPages returns the set of resident page indexes of the region,
// counted from the page containing addr. A zero-size region yields an
// empty set.
func (m *Memory) ResidentPages(addr Address, size int64) (*roaring.Bitmap, error) {
	resident := roaring.New()
	if size == 0 {
		return resident, nil
	}

	vec, err := residencyVector(addr, size)
	if err != nil {
		return nil, fmt.Errorf("residency query: %w", err)
	}
	for i, v := range vec {
		if v&1 == 1 {
			resident.Add(uint32(i))
		}
	}
	return resident, nil
}

// residencyVector aligns the range down to a page boundary, extends the
// length to compensate, and queries the kernel's residency vector.
func residencyVector(addr Address, size int64) ([]byte, error) {
	length, err := conv.Int64ToUintptr(size)
	if err != nil {
		return nil, &ErrInvalidSize{Size: size, cause: err}
	}

	pageSize := uintptr(PageSize())
	alignOffset := uintptr(addr) % pageSize
	return mmap.Mincore(uintptr(addr)-alignOffset, length+alignOffset)
}

// Advise applies an access-pattern hint to the region.
func (m *Memory) Advise(addr Address, size int64, advice Advice) error {
	length, err := conv.Int64ToUintptr(size)
	if err != nil {
		return &ErrInvalidSize{Size: size, cause: err}
	}

	var pattern mmap.AccessPattern
	switch advice {
	case AdviceSequential:
		pattern = mmap.AccessSequential
	case AdviceRandom:
		pattern = mmap.AccessRandom
	case AdviceWillNeed:
		pattern = mmap.AccessWillNeed
	case AdviceDontNeed:
		pattern = mmap.AccessDontNeed
	default:
		pattern = mmap.AccessDefault
	}
	return mmap.Advise(uintptr(addr), length, pattern)
}
