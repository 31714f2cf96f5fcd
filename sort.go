package runsort

import (
	"cmp"
	"errors"
	"fmt"

	sorterrors "github.com/tamirms/runsort/errors"
	intbits "github.com/tamirms/runsort/internal/bits"
)

// SmallSortThreshold is the length below which Sort uses binary insertion
// sort over the whole sequence instead of run detection and merging.
const SmallSortThreshold = 64

// minRunBits is the width of minrun: MinRun keeps this many high bits of n.
const minRunBits = 6

// MinRun returns the minimum run length used when sorting n elements.
//
// n below SmallSortThreshold is returned as is. Otherwise n is halved until it
// is below 64, and the result is bumped by one if any 1-bit was shifted out,
// so that n/MinRun(n) is a power of two or slightly below one. The result is
// in [32, 64].
func MinRun(n int) int {
	if n < SmallSortThreshold {
		return max(n, 0)
	}
	top, dropped := intbits.HighBits(uint64(n), minRunBits)
	if dropped {
		top++
	}
	return int(top)
}

// Sort sorts s in place, ascending per c, keeping equal elements in their
// original order.
//
// A sort fails only with ErrAllocation, when the scratch buffer cannot grow
// (see WithAllocator and WithScratchLimit). s is then a permutation of its
// input in which every run pending at the time is sorted, but s as a whole is
// not; it is safe to sort again or discard.
//
// An allocator that fails to take the scratch buffer back is reported
// separately: the error wraps ErrReleaseFailed, not ErrAllocation, and s is
// fully sorted. It is joined to the allocation error when both occur.
func Sort[S ~[]E, E any](s S, c Comparator[E], opts ...Option[E]) (err error) {
	cfg := defaultSortConfig[E]()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.stats != nil {
		*cfg.stats = Stats{}
		c = counting(c, &cfg.stats.Comparisons)
	}

	seq := []E(s)
	n := len(seq)
	if n < 2 {
		return nil
	}
	if n < SmallSortThreshold {
		shifts := BinaryInsertionSort(seq, 0, c)
		if cfg.stats != nil {
			cfg.stats.Shifts = shifts
		}
		return nil
	}

	// Growth is clamped to the limit so that speculative doubling never asks
	// the allocator for more than it accepts.
	alloc, ceiling := cfg.alloc, n/2
	if cfg.scratchLimit > 0 {
		alloc = Limit(alloc, cfg.scratchLimit)
		ceiling = min(ceiling, cfg.scratchLimit)
	}
	ts := &sorter[E]{
		s:       seq,
		c:       c,
		scratch: NewScratch(alloc, ceiling),
		stats:   cfg.stats,
	}
	defer func() {
		if ts.stats != nil {
			ts.stats.ScratchCap = ts.scratch.Cap()
		}
		if rerr := ts.scratch.Release(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("%w: %w", sorterrors.ErrReleaseFailed, rerr))
		}
	}()

	if cfg.initialScratch > 0 {
		if err := ts.scratch.EnsureCapacity(min(cfg.initialScratch, ceiling)); err != nil {
			return err
		}
	}
	return ts.sortRuns()
}

// SortFunc sorts s in place, stably, using a signed three-way comparison
// function such as cmp.Compare or strings.Compare.
func SortFunc[S ~[]E, E any](s S, cmp func(a, b E) int, opts ...Option[E]) error {
	return Sort(s, Compare(cmp), opts...)
}

// SortOrdered sorts s in place in ascending natural order.
func SortOrdered[S ~[]E, E cmp.Ordered](s S, opts ...Option[E]) error {
	return Sort(s, Ordered[E](), opts...)
}

// IsSorted reports whether s is sorted ascending per c.
func IsSorted[E any](s []E, c Comparator[E]) bool {
	for i := len(s) - 1; i > 0; i-- {
		if c(s[i-1], s[i]) == Greater {
			return false
		}
	}
	return true
}

// sorter is the state of one run-merging sort call. It is never shared.
type sorter[E any] struct {
	s       []E
	c       Comparator[E]
	scratch *Scratch[E]
	stack   RunStack
	stats   *Stats
}

// sortRuns scans s left to right. For every run it detects, pads it to
// minrun, pushes it and lets the stack collapse; once the input is consumed
// the remaining runs are merged into one.
func (ts *sorter[E]) sortRuns() error {
	n := len(ts.s)
	minRun := MinRun(n)

	cursor := 0
	for moreInput := cursor < n; moreInput; moreInput = cursor < n {
		runLen := DetectRun(ts.s, cursor, ts.c)
		if runLen < minRun {
			force := min(minRun, n-cursor)
			shifts := BinaryInsertionSort(ts.s[cursor:cursor+force], runLen, ts.c)
			if ts.stats != nil {
				ts.stats.Extended++
				ts.stats.Shifts += shifts
			}
			runLen = force
		}

		ts.stack.Push(Run{Start: cursor, Len: runLen})
		cursor += runLen
		if ts.stats != nil {
			ts.stats.Runs++
			ts.stats.MaxStackDepth = max(ts.stats.MaxStackDepth, ts.stack.Len())
		}

		if err := ts.stack.Collapse(ts.merge, n-cursor); err != nil {
			return err
		}
	}
	return ts.stack.CollapseFinal(ts.merge)
}

func (ts *sorter[E]) merge(a, b Run) error {
	if err := MergeRuns(ts.s, a, b, ts.scratch, ts.c); err != nil {
		return err
	}
	if ts.stats != nil {
		ts.stats.Merges++
		ts.stats.MaxStaged = max(ts.stats.MaxStaged, min(a.Len, b.Len))
	}
	return nil
}
