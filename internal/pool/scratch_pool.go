// Package pool provides reusable scratch storage for swapped bulk
// transfers. Uses sync.Pool for automatic memory reuse.
//
// Buffers are backed by 64-bit words, so storage borrowed from the pool
// is correctly aligned for every element width.
package pool

import "sync"

const (
	// DefaultScratchWords is the initial capacity of pooled buffers in
	// 64-bit words. Large enough for typical bulk transfers without
	// reallocation.
	DefaultScratchWords = 8 << 10

	// MaxPooledWords caps the capacity of buffers accepted back into
	// the pool, so a single oversized transfer cannot pin memory.
	MaxPooledWords = 1 << 17
)

var scratchPool = sync.Pool{
	New: func() any {
		b := make([]uint64, 0, DefaultScratchWords)
		return &b
	},
}

// Get retrieves scratch storage of at least words 64-bit words.
func Get(words int) *[]uint64 {
	wp := scratchPool.Get().(*[]uint64)
	if cap(*wp) < words {
		b := make([]uint64, 0, words)
		wp = &b
	}
	*wp = (*wp)[:words]
	return wp
}

// Put returns scratch storage to the pool for reuse.
func Put(wp *[]uint64) {
	if cap(*wp) > MaxPooledWords {
		return
	}
	scratchPool.Put(wp)
}
