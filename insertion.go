package runsort

// FindInsertPosition returns the right-most index at which key can be
// inserted into the sorted prefix s[:sorted] while keeping it sorted: the
// first i with c(key, s[i]) == Less, or sorted if there is none.
//
// Inserting after existing equal elements is what keeps insertion sort stable.
func FindInsertPosition[E any](s []E, key E, sorted int, c Comparator[E]) int {
	lo, hi := 0, sorted
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if c(key, s[mid]) == Less {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// BinaryInsertionSort extends the sorted prefix s[:sorted] to cover all of s.
// Each following element is placed with FindInsertPosition and the elements
// it passes are shifted right by one. It returns the number of shifted
// elements.
//
// Comparisons are O(n log n) but moves are O(n²), so it is meant for inputs
// below SmallSortThreshold and for padding short runs up to minrun.
func BinaryInsertionSort[E any](s []E, sorted int, c Comparator[E]) int {
	if sorted < 1 {
		sorted = 1
	}
	shifts := 0
	for i := sorted; i < len(s); i++ {
		pivot := s[i]
		pos := FindInsertPosition(s, pivot, i, c)
		n := i - pos
		if n == 0 {
			continue
		}
		switch n {
		case 1:
			s[pos+1] = s[pos]
		case 2:
			s[pos+2] = s[pos+1]
			s[pos+1] = s[pos]
		default:
			copy(s[pos+1:i+1], s[pos:i])
		}
		s[pos] = pivot
		shifts += n
	}
	return shifts
}
