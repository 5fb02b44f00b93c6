package rawmem

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/hupe1980/rawmem/internal/conv"
	"github.com/hupe1980/rawmem/internal/mmap"
)

// Accountant authorizes native allocations against an external budget.
// resource.Controller satisfies this interface.
type Accountant interface {
	// TryAcquireMemory attempts to reserve bytes without blocking,
	// reporting whether the reservation was granted.
	TryAcquireMemory(bytes int64) bool

	// ReleaseMemory returns bytes previously reserved.
	ReleaseMemory(bytes int64)
}

// allocHeaderSize is the bookkeeping prefix of every allocation. The
// admitted size lives there so Free can report it back to the
// accountant. Header bytes themselves are not accounted.
const allocHeaderSize = 8

// Malloc allocates size bytes of zero-filled native memory and returns
// its address. The accountant, when configured, must admit the
// allocation first; a rejection reports ErrOutOfMemory, as does an
// exhausted system. A failed system allocation returns its reservation
// to the accountant.
func (m *Memory) Malloc(size int64) (Address, error) {
	if size < 0 || size > math.MaxInt64-allocHeaderSize {
		return 0, &ErrInvalidSize{Size: size}
	}

	if m.accountant != nil && !m.accountant.TryAcquireMemory(size) {
		err := fmt.Errorf("%w: allocation of %d bytes rejected", ErrOutOfMemory, size)
		m.logger.Warn("allocation rejected", "size", size)
		m.metrics.RecordAlloc(size, err)
		return 0, err
	}

	length, err := conv.Int64ToUintptr(size + allocHeaderSize)
	if err != nil {
		if m.accountant != nil {
			m.accountant.ReleaseMemory(size)
		}
		return 0, &ErrInvalidSize{Size: size, cause: err}
	}

	base, err := mmap.MapAnon(length)
	if err != nil {
		if m.accountant != nil {
			m.accountant.ReleaseMemory(size)
		}
		werr := fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		m.metrics.RecordAlloc(size, werr)
		m.logger.LogAlloc(0, size, werr)
		return 0, werr
	}

	// The base of an anonymous mapping is page aligned, so the header
	// store is a legal direct write.
	*(*int64)(unsafe.Pointer(base)) = size

	addr := Address(base + allocHeaderSize)
	m.metrics.RecordAlloc(size, nil)
	m.logger.LogAlloc(addr, size, nil)
	return addr, nil
}

// Free releases an allocation obtained from Malloc and reports its
// recorded size back to the accountant. Freeing the zero Address is a
// no-op. Passing any address that did not come from Malloc corrupts the
// process, exactly as handing a foreign pointer to free would.
func (m *Memory) Free(addr Address) error {
	if addr == 0 {
		return nil
	}

	base := uintptr(addr) - allocHeaderSize
	size := *(*int64)(unsafe.Pointer(base))

	if m.accountant != nil {
		m.accountant.ReleaseMemory(size)
	}

	length, err := conv.Int64ToUintptr(size + allocHeaderSize)
	if err != nil {
		return &ErrInvalidSize{Size: size, cause: err}
	}

	err = mmap.Unmap(base, length)
	m.metrics.RecordFree(size)
	m.logger.LogFree(addr, size)
	return err
}
