//go:build linux

package mapalloc

import "golang.org/x/sys/unix"

// prefaultRegion backs a fresh scratch mapping with writable pages up front,
// so the first merge that stages into it does not fault page by page.
// Kernels before 5.14 reject MADV_POPULATE_WRITE and the pages are faulted
// lazily instead.
func prefaultRegion(m []byte) {
	if len(m) > 0 {
		_ = unix.Madvise(m, unix.MADV_POPULATE_WRITE)
	}
}
