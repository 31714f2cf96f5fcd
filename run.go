package runsort

// Run describes the sorted (ascending) sub-range [Start, Start+Len) of a
// sequence.
type Run struct {
	Start int
	Len   int
}

// End returns the index one past the last element of the run.
func (r Run) End() int {
	return r.Start + r.Len
}

// DetectRun finds the longest monotonic run of s beginning at start and
// returns its length.
//
// A run is either non-decreasing, where equal neighbours extend it, or
// strictly decreasing. A strictly decreasing run is reversed in place so that
// on return s[start:start+length] is ascending. Equal elements never start a
// descending run, so reversing cannot reorder them.
//
// A start at or past the end yields 0; the last element is a run of length 1.
func DetectRun[E any](s []E, start int, c Comparator[E]) int {
	n := len(s)
	if start >= n {
		return 0
	}
	end := start + 1
	if end == n {
		return 1
	}

	if c(s[start], s[end]) == Greater {
		end++
		for end < n && c(s[end-1], s[end]) == Greater {
			end++
		}
		reverseRange(s, start, end)
	} else {
		end++
		for end < n && c(s[end-1], s[end]) != Greater {
			end++
		}
	}
	return end - start
}

// reverseRange reverses s[lo:hi] in place.
func reverseRange[E any](s []E, lo, hi int) {
	hi--
	for lo < hi {
		s[lo], s[hi] = s[hi], s[lo]
		lo++
		hi--
	}
}
