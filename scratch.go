package runsort

import (
	"errors"
	"fmt"

	sorterrors "github.com/tamirms/runsort/errors"
)

// Scratch is the temporary buffer shared by all merges of one sort call.
//
// Its capacity only grows: there is no shrink operation, and Release ends
// its life. A Scratch must not be shared between concurrent sort calls.
type Scratch[E any] struct {
	alloc    Allocator[E]
	buf      []E
	ceiling  int // 0 = unbounded
	released bool

	// Release failures of outgrown buffers, reported by Release.
	errs []error

	// Test hook: called with the new capacity after each successful growth.
	onGrow func(int)
}

// NewScratch returns an empty Scratch backed by a. A nil a uses
// HeapAllocator. Growth never rounds past ceiling unless a single request
// needs more; a ceiling <= 0 leaves growth unbounded.
func NewScratch[E any](a Allocator[E], ceiling int) *Scratch[E] {
	if a == nil {
		a = HeapAllocator[E]{}
	}
	return &Scratch[E]{alloc: a, ceiling: max(ceiling, 0)}
}

// Cap returns the number of elements the buffer currently holds.
func (sc *Scratch[E]) Cap() int {
	return len(sc.buf)
}

// EnsureCapacity guarantees room for at least n elements.
//
// Requests at or below the current capacity are no-ops. Otherwise a new
// buffer of max(n, min(2*Cap(), ceiling)) elements is allocated before the
// old one is let go; if allocation fails the old buffer and capacity are left
// untouched and the error wraps ErrAllocation.
func (sc *Scratch[E]) EnsureCapacity(n int) error {
	if sc.released {
		return sorterrors.ErrScratchReleased
	}
	if n <= len(sc.buf) {
		return nil
	}

	size := 2 * len(sc.buf)
	if sc.ceiling > 0 && size > sc.ceiling {
		size = sc.ceiling
	}
	size = max(size, n)

	buf, err := sc.alloc.Allocate(size)
	if err != nil {
		return fmt.Errorf("%w: grow scratch from %d to %d elements: %w",
			sorterrors.ErrAllocation, len(sc.buf), size, err)
	}
	if len(buf) != size {
		return fmt.Errorf("%w: allocator returned %d elements, want %d",
			sorterrors.ErrAllocation, len(buf), size)
	}

	if sc.buf != nil {
		if err := sc.alloc.Release(sc.buf); err != nil {
			sc.errs = append(sc.errs, fmt.Errorf("release outgrown scratch: %w", err))
		}
	}
	sc.buf = buf
	if sc.onGrow != nil {
		sc.onGrow(size)
	}
	return nil
}

// Release returns the buffer to its allocator. Idempotent.
func (sc *Scratch[E]) Release() error {
	if sc.released {
		return nil
	}
	sc.released = true
	if sc.buf != nil {
		if err := sc.alloc.Release(sc.buf); err != nil {
			sc.errs = append(sc.errs, fmt.Errorf("release scratch: %w", err))
		}
		sc.buf = nil
	}
	err := errors.Join(sc.errs...)
	sc.errs = nil
	return err
}

// window returns the first n elements of the buffer.
// The caller must have called EnsureCapacity(n).
func (sc *Scratch[E]) window(n int) []E {
	return sc.buf[:n:n]
}
