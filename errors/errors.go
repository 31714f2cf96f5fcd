// Package errors defines all exported error sentinels for the runsort library.
//
// This is the single source of truth for error values. The root runsort
// package, the mapalloc allocator and the internal helpers all import from
// here, so errors.Is checks work across package boundaries.
package errors

import "errors"

// Sort errors
var (
	// ErrAllocation is the only recoverable sort failure: the scratch buffer
	// could not grow. The sequence is left as a permutation of the input.
	ErrAllocation      = errors.New("runsort: scratch buffer allocation failed")
	ErrScratchReleased = errors.New("runsort: scratch buffer already released")
	ErrInvalidRun      = errors.New("runsort: runs are not adjacent or out of range")
	// ErrReleaseFailed means the allocator failed to take the scratch
	// buffer back after the sort. The sequence itself is sorted.
	ErrReleaseFailed = errors.New("runsort: scratch buffer release failed")
)

// Allocator errors
var (
	ErrScratchLimit = errors.New("runsort: scratch request exceeds allocator limit")
	ErrInvalidSize  = errors.New("runsort: invalid allocation size")
	ErrForeignBuf   = errors.New("runsort: buffer was not allocated by this allocator")
)

// Workload errors
var (
	ErrUnsupportedWorkload = errors.New("runsort: unknown workload kind")
)
