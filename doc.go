// Package runsort implements an adaptive, stable, in-place sort for Go slices.
//
// The sort scans its input for natural runs (non-decreasing, or strictly
// decreasing and reversed), pads short runs with binary insertion sort, and
// merges runs through a bounded stack whose balance invariant keeps the worst
// case at O(n log n) comparisons while nearly sorted input costs close to n.
// Inputs shorter than SmallSortThreshold are sorted by binary insertion alone.
//
// # Basic Usage
//
//	err := runsort.SortFunc(people, func(a, b Person) int {
//	    return cmp.Compare(a.Age, b.Age)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Scratch Memory
//
// Merges stage the shorter of two runs in a scratch buffer that belongs to a
// single sort call. It grows on demand, never shrinks, never exceeds half
// the input length, and is released before Sort returns. Its memory comes from
// an Allocator: HeapAllocator by default, or mapalloc for mmap-backed buffers.
// When the allocator fails, Sort returns an error wrapping ErrAllocation
// and the slice is left as a permutation of the input that can be sorted
// again.
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: sort.go (Sort, SortFunc, SortOrdered, MinRun), options.go
//   - Ordering: comparator.go (Order, Comparator, Compare, FromLess, Ordered)
//   - Runs: run.go (Run, DetectRun), insertion.go (FindInsertPosition, BinaryInsertionSort)
//   - Merging: merge.go (MergeRuns), scratch.go (Scratch), allocator.go (Allocator, Limit)
//   - Run stack: stack.go (RunStack, CheckInvariant, Collapse, CollapseFinal)
//   - Errors: errors/ (sentinels shared by all packages)
//   - mmap scratch: mapalloc/
package runsort
