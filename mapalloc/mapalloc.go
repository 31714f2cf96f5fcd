// Package mapalloc provides a scratch allocator for runsort backed by
// anonymous memory mappings.
//
// Scratch buffers live outside the Go heap, so large sorts do not grow the
// heap by up to half the sequence size and the memory is returned to the OS as
// soon as a sort call finishes. Only pointer-free element types are allowed:
// the garbage collector does not scan mapped memory.
//
//	alloc := mapalloc.New[uint64](mapalloc.WithPrefault())
//	defer alloc.Close()
//	err := runsort.SortOrdered(keys, runsort.WithAllocator[uint64](alloc))
package mapalloc

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/exp/constraints"

	sorterrors "github.com/tamirms/runsort/errors"
)

// Plain is the set of element types that may live in mapped memory.
type Plain interface {
	constraints.Integer | constraints.Float
}

// Option is a functional option for configuring an Allocator.
type Option func(*config)

type config struct {
	prefault bool
}

// WithPrefault asks the kernel to populate pages when a buffer is mapped,
// moving page faults out of the merge loop. Best-effort; a no-op outside Linux.
func WithPrefault() Option {
	return func(c *config) {
		c.prefault = true
	}
}

// Allocator hands out mmap-backed buffers. It is safe for concurrent use by
// several sort calls; each call still gets its own buffers.
type Allocator[E Plain] struct {
	cfg config

	mu        sync.Mutex
	live      map[*E]mmap.MMap
	liveBytes int64
	peakBytes int64
}

// New returns an Allocator with no live mappings.
func New[E Plain](opts ...Option) *Allocator[E] {
	a := &Allocator[E]{live: make(map[*E]mmap.MMap)}
	for _, opt := range opts {
		opt(&a.cfg)
	}
	return a
}

// Allocate maps a zeroed buffer of n elements.
func (a *Allocator[E]) Allocate(n int) ([]E, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", sorterrors.ErrInvalidSize, n)
	}
	if n == 0 {
		return []E{}, nil
	}

	var zero E
	elemSize := int(unsafe.Sizeof(zero))
	if n > math.MaxInt/elemSize {
		return nil, fmt.Errorf("%w: %d elements × %d bytes overflows int",
			sorterrors.ErrInvalidSize, n, elemSize)
	}
	size := n * elemSize

	m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("map %d bytes: %w", size, err)
	}
	if a.cfg.prefault {
		prefaultRegion(m)
	}
	buf := unsafe.Slice((*E)(unsafe.Pointer(&m[0])), n)

	a.mu.Lock()
	a.live[&buf[0]] = m
	a.liveBytes += int64(size)
	a.peakBytes = max(a.peakBytes, a.liveBytes)
	a.mu.Unlock()
	return buf, nil
}

// Release unmaps a buffer returned by Allocate. buf must be the exact slice
// Allocate returned; releasing anything else fails with ErrForeignBuf.
func (a *Allocator[E]) Release(buf []E) error {
	if len(buf) == 0 {
		return nil
	}
	a.mu.Lock()
	m, ok := a.live[&buf[0]]
	if ok {
		delete(a.live, &buf[0])
		a.liveBytes -= int64(len(m))
	}
	a.mu.Unlock()
	if !ok {
		return sorterrors.ErrForeignBuf
	}
	if err := m.Unmap(); err != nil {
		return fmt.Errorf("unmap %d bytes: %w", len(m), err)
	}
	return nil
}

// Live returns the number of buffers allocated and not yet released.
func (a *Allocator[E]) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// PeakBytes returns the largest number of bytes mapped at once.
func (a *Allocator[E]) PeakBytes() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.peakBytes
}

// Close unmaps every buffer still live. Buffers handed out earlier must not
// be used afterwards. Idempotent.
func (a *Allocator[E]) Close() error {
	a.mu.Lock()
	live := a.live
	a.live = make(map[*E]mmap.MMap)
	a.liveBytes = 0
	a.mu.Unlock()

	var errs []error
	for _, m := range live {
		if err := m.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap %d bytes: %w", len(m), err))
		}
	}
	return errors.Join(errs...)
}
