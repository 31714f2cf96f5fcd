package runsort

// Option is a functional option for configuring a sort call.
type Option[E any] func(*sortConfig[E])

type sortConfig[E any] struct {
	alloc          Allocator[E]
	scratchLimit   int // max scratch elements; 0 = unlimited
	initialScratch int // elements reserved before the first merge
	stats          *Stats
}

func defaultSortConfig[E any]() *sortConfig[E] {
	return &sortConfig[E]{
		alloc: HeapAllocator[E]{},
	}
}

// WithAllocator sets the allocator backing the scratch buffer.
// Default is HeapAllocator. A nil allocator keeps the default.
func WithAllocator[E any](a Allocator[E]) Option[E] {
	return func(c *sortConfig[E]) {
		if a != nil {
			c.alloc = a
		}
	}
}

// WithScratchLimit caps the scratch buffer at n elements. Growth never
// overshoots the cap, so the sort succeeds whenever every merge fits in n
// elements; a merge that needs more fails the sort with ErrAllocation (see
// Sort for the state the sequence is left in). n <= 0 means unlimited, the
// default.
func WithScratchLimit[E any](n int) Option[E] {
	return func(c *sortConfig[E]) {
		c.scratchLimit = n
	}
}

// WithInitialScratch reserves room for n elements up front, so that merges
// of runs up to that size never allocate. The reservation is clamped to half
// the sequence length, the largest scratch any merge can need.
func WithInitialScratch[E any](n int) Option[E] {
	return func(c *sortConfig[E]) {
		c.initialScratch = n
	}
}

// WithStats records counters for the call into st. st is reset at the start
// of the call and must not be shared with a concurrent call.
func WithStats[E any](st *Stats) Option[E] {
	return func(c *sortConfig[E]) {
		c.stats = st
	}
}

// Stats describes the work done by one sort call.
type Stats struct {
	Runs          int   // runs pushed on the run stack
	Extended      int   // runs padded to minrun by insertion sort
	Shifts        int   // elements moved by insertion sort
	Merges        int   // MergeRuns calls that moved data
	Comparisons   int64 // comparator invocations
	ScratchCap    int   // final scratch capacity in elements
	MaxStackDepth int   // deepest run stack observed
	MaxStaged     int   // most elements staged by a single merge
}
