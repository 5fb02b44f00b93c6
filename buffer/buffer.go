package buffer

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/rawmem"
)

var (
	// ErrClosed is returned when accessing a closed buffer.
	ErrClosed = errors.New("buffer: buffer is closed")
	// ErrOutOfBounds is returned when an access falls outside the window.
	ErrOutOfBounds = errors.New("buffer: out of bounds")
	// ErrInvalidOffset is returned when an offset is invalid (e.g. negative).
	ErrInvalidOffset = errors.New("buffer: invalid offset")
	// ErrInvalidSize is returned when the window size is invalid.
	ErrInvalidSize = errors.New("buffer: invalid size")
	// ErrReadOnly is returned when writing to a read-only buffer.
	ErrReadOnly = errors.New("buffer: buffer is read-only")
)

// Buffer is a bounds-checked window over native memory. It owns the
// underlying region and is responsible for releasing it.
type Buffer struct {
	mem    *rawmem.Memory
	base   rawmem.Address // start of the owned region
	addr   rawmem.Address // start of the visible window
	size   int64
	regLen int64 // length of the owned region
	mode   rawmem.MapMode
	swap   bool
	closed atomic.Bool
	// release is the operation that returns the region to the system.
	release func() error
}

// MapFile maps a size-byte window of f starting at position. The
// position does not have to be aligned; the mapping is extended
// backwards to the preceding allocation-granularity boundary and the
// slack stays hidden. A window reaching past the end of the file grows
// the file first.
func MapFile(m *rawmem.Memory, f *os.File, position, size int64, mode rawmem.MapMode, optFns ...Option) (*Buffer, error) {
	if position < 0 {
		return nil, ErrInvalidOffset
	}
	if size < 0 {
		return nil, ErrInvalidSize
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if position+size > fi.Size() {
		if err := f.Truncate(position + size); err != nil {
			return nil, err
		}
	}

	granularity := int64(rawmem.PageSize())
	alignment := position - position%granularity
	offset := position - alignment

	base, err := m.Map(int(f.Fd()), alignment, size+offset, mode)
	if err != nil {
		return nil, err
	}

	o := applyOptions(optFns)
	return &Buffer{
		mem:    m,
		base:   base,
		addr:   base + rawmem.Address(offset),
		size:   size,
		regLen: size + offset,
		mode:   mode,
		swap:   rawmem.NeedsSwap(o.order),
		release: func() error {
			return m.Unmap(base, size+offset)
		},
	}, nil
}

// Alloc returns a buffer over size bytes of fresh zero-filled native
// memory, subject to the Memory's allocation accounting.
func Alloc(m *rawmem.Memory, size int64, optFns ...Option) (*Buffer, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}

	addr, err := m.Malloc(size)
	if err != nil {
		return nil, err
	}

	o := applyOptions(optFns)
	return &Buffer{
		mem:    m,
		base:   addr,
		addr:   addr,
		size:   size,
		regLen: size,
		mode:   rawmem.MapPrivate,
		swap:   rawmem.NeedsSwap(o.order),
		release: func() error {
			return m.Free(addr)
		},
	}, nil
}

// Close releases the underlying region. It is idempotent.
func (b *Buffer) Close() error {
	if b.closed.Swap(true) {
		return nil // Already closed
	}
	if b.release != nil {
		return b.release()
	}
	return nil
}

// Size returns the size of the window in bytes.
func (b *Buffer) Size() int64 {
	return b.size
}

// Mode returns the access mode of the underlying region.
func (b *Buffer) Mode() rawmem.MapMode {
	return b.mode
}

// Address returns the native address of the first window byte. The
// address stays valid only until Close.
func (b *Buffer) Address() rawmem.Address {
	return b.addr
}

func (b *Buffer) readOnly() bool {
	return b.mode == rawmem.MapReadOnly
}

// view returns the window as a byte slice.
func (b *Buffer) view() []byte {
	if b.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(b.addr)), b.size)
}

// check validates an access of width bytes at index. The subtraction
// form cannot overflow for any non-negative index and width.
func (b *Buffer) check(index, width int64) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if index < 0 || width < 0 || width > b.size || index > b.size-width {
		return ErrOutOfBounds
	}
	return nil
}

func (b *Buffer) checkPut(index, width int64) error {
	if err := b.check(index, width); err != nil {
		return err
	}
	if b.readOnly() {
		return ErrReadOnly
	}
	return nil
}

// GetByte reads the byte at index.
func (b *Buffer) GetByte(index int64) (byte, error) {
	if err := b.check(index, 1); err != nil {
		return 0, err
	}
	return b.mem.PeekByte(b.addr + rawmem.Address(index)), nil
}

// PutByte writes the byte at index.
func (b *Buffer) PutByte(index int64, v byte) error {
	if err := b.checkPut(index, 1); err != nil {
		return err
	}
	b.mem.PokeByte(b.addr+rawmem.Address(index), v)
	return nil
}

// GetShort reads the 16-bit value at index in the buffer's byte order.
func (b *Buffer) GetShort(index int64) (int16, error) {
	if err := b.check(index, 2); err != nil {
		return 0, err
	}
	return b.mem.PeekShort(b.addr+rawmem.Address(index), b.swap), nil
}

// PutShort writes the 16-bit value at index in the buffer's byte order.
func (b *Buffer) PutShort(index int64, v int16) error {
	if err := b.checkPut(index, 2); err != nil {
		return err
	}
	b.mem.PokeShort(b.addr+rawmem.Address(index), v, b.swap)
	return nil
}

// GetChar reads the unsigned 16-bit value at index in the buffer's byte
// order.
func (b *Buffer) GetChar(index int64) (uint16, error) {
	v, err := b.GetShort(index)
	return uint16(v), err
}

// PutChar writes the unsigned 16-bit value at index in the buffer's
// byte order.
func (b *Buffer) PutChar(index int64, v uint16) error {
	return b.PutShort(index, int16(v))
}

// GetInt reads the 32-bit value at index in the buffer's byte order.
func (b *Buffer) GetInt(index int64) (int32, error) {
	if err := b.check(index, 4); err != nil {
		return 0, err
	}
	return b.mem.PeekInt(b.addr+rawmem.Address(index), b.swap), nil
}

// PutInt writes the 32-bit value at index in the buffer's byte order.
func (b *Buffer) PutInt(index int64, v int32) error {
	if err := b.checkPut(index, 4); err != nil {
		return err
	}
	b.mem.PokeInt(b.addr+rawmem.Address(index), v, b.swap)
	return nil
}

// GetLong reads the 64-bit value at index in the buffer's byte order.
func (b *Buffer) GetLong(index int64) (int64, error) {
	if err := b.check(index, 8); err != nil {
		return 0, err
	}
	return b.mem.PeekLong(b.addr+rawmem.Address(index), b.swap), nil
}

// PutLong writes the 64-bit value at index in the buffer's byte order.
func (b *Buffer) PutLong(index int64, v int64) error {
	if err := b.checkPut(index, 8); err != nil {
		return err
	}
	b.mem.PokeLong(b.addr+rawmem.Address(index), v, b.swap)
	return nil
}

// GetFloat reads the 32-bit float at index in the buffer's byte order.
func (b *Buffer) GetFloat(index int64) (float32, error) {
	if err := b.check(index, 4); err != nil {
		return 0, err
	}
	return b.mem.PeekFloat(b.addr+rawmem.Address(index), b.swap), nil
}

// PutFloat writes the 32-bit float at index in the buffer's byte order.
func (b *Buffer) PutFloat(index int64, v float32) error {
	if err := b.checkPut(index, 4); err != nil {
		return err
	}
	b.mem.PokeFloat(b.addr+rawmem.Address(index), v, b.swap)
	return nil
}

// GetDouble reads the 64-bit float at index in the buffer's byte order.
func (b *Buffer) GetDouble(index int64) (float64, error) {
	if err := b.check(index, 8); err != nil {
		return 0, err
	}
	return b.mem.PeekDouble(b.addr+rawmem.Address(index), b.swap), nil
}

// PutDouble writes the 64-bit float at index in the buffer's byte order.
func (b *Buffer) PutDouble(index int64, v float64) error {
	if err := b.checkPut(index, 8); err != nil {
		return err
	}
	b.mem.PokeDouble(b.addr+rawmem.Address(index), v, b.swap)
	return nil
}

// Bytes returns the window as a byte slice.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (b *Buffer) Bytes() []byte {
	if b.closed.Load() {
		return nil
	}
	return b.view()
}

// Slice returns a bounds-checked sub-window as a byte slice. The slice
// is valid only until Close.
func (b *Buffer) Slice(off, length int64) ([]byte, error) {
	if err := b.check(off, length); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	return b.view()[off : off+length], nil
}

// ReadAt implements io.ReaderAt.
func (b *Buffer) ReadAt(p []byte, off int64) (n int, err error) {
	if b.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= b.size {
		return 0, io.EOF
	}

	n = len(p)
	if int64(n) > b.size-off {
		n = int(b.size - off)
	}
	b.mem.PeekByteArray(b.addr+rawmem.Address(off), p[:n])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt.
func (b *Buffer) WriteAt(p []byte, off int64) (n int, err error) {
	if b.closed.Load() {
		return 0, ErrClosed
	}
	if b.readOnly() {
		return 0, ErrReadOnly
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= b.size {
		if len(p) == 0 && off == b.size {
			return 0, nil
		}
		return 0, ErrOutOfBounds
	}

	n = len(p)
	if int64(n) > b.size-off {
		n = int(b.size - off)
	}
	b.mem.PokeByteArray(b.addr+rawmem.Address(off), p[:n])
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// ReadFrom implements io.ReaderFrom. It fills the window from r until
// the window is full or r is drained.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	if b.closed.Load() {
		return 0, ErrClosed
	}
	if b.readOnly() {
		return 0, ErrReadOnly
	}

	view := b.view()
	var total int64
	for total < int64(len(view)) {
		n, err := r.Read(view[total:])
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteTo implements io.WriterTo. It writes the entire window to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.closed.Load() {
		return 0, ErrClosed
	}
	n, err := w.Write(b.view())
	return int64(n), err
}

// Sync writes modified pages of the underlying region back to the file.
func (b *Buffer) Sync() error {
	if b.closed.Load() {
		return ErrClosed
	}
	return b.mem.Sync(b.base, b.regLen)
}

// Load touches the underlying region into physical memory as a
// best-effort hint.
func (b *Buffer) Load() error {
	if b.closed.Load() {
		return ErrClosed
	}
	b.mem.Load(b.base, b.regLen)
	return nil
}

// Loaded reports whether every page of the window is resident in
// physical memory.
func (b *Buffer) Loaded() bool {
	if b.closed.Load() {
		return false
	}
	return b.mem.IsLoaded(b.addr, b.size)
}

// Advise provides hints to the kernel about how the window will be
// accessed.
func (b *Buffer) Advise(advice rawmem.Advice) error {
	if b.closed.Load() {
		return ErrClosed
	}
	return b.mem.Advise(b.addr, b.size, advice)
}
