package runsort

import (
	"fmt"

	sorterrors "github.com/tamirms/runsort/errors"
)

// Allocator provisions scratch buffers for a sort call.
//
// Allocate returns a buffer of exactly n elements or an error; it must not
// return a partially usable buffer. Release hands a buffer obtained from
// Allocate back. A Scratch never releases a buffer twice.
type Allocator[E any] interface {
	Allocate(n int) ([]E, error)
	Release(buf []E) error
}

// HeapAllocator allocates scratch buffers on the Go heap. It is the default.
type HeapAllocator[E any] struct{}

// Allocate returns make([]E, n).
func (HeapAllocator[E]) Allocate(n int) ([]E, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", sorterrors.ErrInvalidSize, n)
	}
	return make([]E, n), nil
}

// Release clears buf so that elements staged during merges do not keep
// referenced memory alive.
func (HeapAllocator[E]) Release(buf []E) error {
	clear(buf)
	return nil
}

type limitAllocator[E any] struct {
	a   Allocator[E]
	max int
}

// Limit wraps a so that any request for more than max elements fails with
// ErrScratchLimit without reaching a. It models an allocator under resource
// pressure.
func Limit[E any](a Allocator[E], max int) Allocator[E] {
	return &limitAllocator[E]{a: a, max: max}
}

func (l *limitAllocator[E]) Allocate(n int) ([]E, error) {
	if n > l.max {
		return nil, fmt.Errorf("%w: requested %d elements, limit %d",
			sorterrors.ErrScratchLimit, n, l.max)
	}
	return l.a.Allocate(n)
}

func (l *limitAllocator[E]) Release(buf []E) error {
	return l.a.Release(buf)
}
