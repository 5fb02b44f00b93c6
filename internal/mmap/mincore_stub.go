//go:build darwin || freebsd || netbsd || openbsd

package mmap

import "golang.org/x/sys/unix"

// Mincore reports ENOSYS; residency vectors are only available on Linux.
func Mincore(addr, length uintptr) ([]byte, error) {
	return nil, unix.ENOSYS
}
