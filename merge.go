package runsort

import (
	"fmt"

	sorterrors "github.com/tamirms/runsort/errors"
)

// MergeRuns merges the adjacent sorted runs a and b of s into one sorted run
// covering [a.Start, b.End()).
//
// The shorter run is staged in sc and merged against the other one in place:
// front to back when a is staged, back to front when b is. Equal elements
// keep their order, a's before b's.
//
// The scratch capacity is secured before anything is written, so when
// EnsureCapacity fails s is untouched and both runs are still sorted.
func MergeRuns[E any](s []E, a, b Run, sc *Scratch[E], c Comparator[E]) error {
	if a.Start < 0 || a.Len < 0 || b.Len < 0 || a.End() != b.Start || b.End() > len(s) {
		return fmt.Errorf("%w: [%d,%d) + [%d,%d) over %d elements",
			sorterrors.ErrInvalidRun, a.Start, a.End(), b.Start, b.End(), len(s))
	}
	if a.Len == 0 || b.Len == 0 {
		return nil
	}

	if err := sc.EnsureCapacity(min(a.Len, b.Len)); err != nil {
		return err
	}
	if a.Len <= b.Len {
		mergeLo(s[a.Start:b.End()], a.Len, sc.window(a.Len), c)
	} else {
		mergeHi(s[a.Start:b.End()], a.Len, sc.window(b.Len), c)
	}
	return nil
}

// mergeLo merges s[:mid] and s[mid:] with the left run staged in tmp.
// The write cursor never overtakes the unread part of the right run.
func mergeLo[E any](s []E, mid int, tmp []E, c Comparator[E]) {
	copy(tmp, s[:mid])
	i, j, k := 0, mid, 0
	for i < len(tmp) && j < len(s) {
		if c(s[j], tmp[i]) == Less {
			s[k] = s[j]
			j++
		} else {
			s[k] = tmp[i]
			i++
		}
		k++
	}
	// Whatever remains of the right run is already in place.
	copy(s[k:], tmp[i:])
}

// mergeHi merges s[:mid] and s[mid:] with the right run staged in tmp,
// filling s from the back.
func mergeHi[E any](s []E, mid int, tmp []E, c Comparator[E]) {
	copy(tmp, s[mid:])
	i, j, k := mid-1, len(tmp)-1, len(s)-1
	for i >= 0 && j >= 0 {
		if c(tmp[j], s[i]) == Less {
			s[k] = s[i]
			i--
		} else {
			s[k] = tmp[j]
			j--
		}
		k--
	}
	// Whatever remains of the left run is already in place.
	copy(s[:j+1], tmp[:j+1])
}
