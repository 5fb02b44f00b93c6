package rawmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrOutOfMemory is returned when an allocation is rejected by the
	// accountant or cannot be satisfied by the operating system.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrMapFailed is returned when the kernel refuses a mapping request.
	ErrMapFailed = errors.New("mapping failed")
)

// ErrInvalidMapMode indicates an unsupported mapping mode.
//
// errors.Is reports a match against unix.EINVAL, mirroring the errno an
// invalid mapping request produces.
type ErrInvalidMapMode struct {
	Mode MapMode
}

func (e *ErrInvalidMapMode) Error() string {
	return fmt.Sprintf("invalid map mode: %d", e.Mode)
}

func (e *ErrInvalidMapMode) Unwrap() error { return unix.EINVAL }

// ErrInvalidSize indicates a negative or overflowing size argument.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidSize struct {
	Size  int64
	cause error
}

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("invalid size: %d", e.Size)
}

func (e *ErrInvalidSize) Unwrap() error { return e.cause }
