package runsort

import "cmp"

// Order is the result of a three-way comparison.
type Order int

const (
	Less    Order = -1
	Equal   Order = 0
	Greater Order = 1
)

// String returns the order name.
func (o Order) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	}
	return "Order(invalid)"
}

// Comparator is a total order over E. It must be consistent for the whole
// duration of a sort call; an inconsistent comparator yields an unspecified
// permutation of the input, never an out-of-range access.
type Comparator[E any] func(a, b E) Order

// Compare adapts a signed three-way comparison (negative, zero, positive),
// such as cmp.Compare or strings.Compare, to a Comparator.
func Compare[E any](f func(a, b E) int) Comparator[E] {
	return func(a, b E) Order {
		switch r := f(a, b); {
		case r < 0:
			return Less
		case r > 0:
			return Greater
		}
		return Equal
	}
}

// FromLess derives a Comparator from a strict weak ordering.
// Elements for which neither less(a, b) nor less(b, a) holds compare Equal.
func FromLess[E any](less func(a, b E) bool) Comparator[E] {
	return func(a, b E) Order {
		if less(a, b) {
			return Less
		}
		if less(b, a) {
			return Greater
		}
		return Equal
	}
}

// Ordered returns the natural ascending Comparator for an ordered type.
// NaNs sort before all other floats, as with cmp.Compare.
func Ordered[E cmp.Ordered]() Comparator[E] {
	return func(a, b E) Order {
		return Order(cmp.Compare(a, b))
	}
}

// counting wraps c so that every invocation increments *n.
func counting[E any](c Comparator[E], n *int64) Comparator[E] {
	return func(a, b E) Order {
		*n++
		return c(a, b)
	}
}
