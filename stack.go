package runsort

import "fmt"

// MaxStackDepth bounds the number of pending runs. While the merge invariant
// holds, run lengths grow at least as fast as the Fibonacci numbers from the
// top of the stack down, so no addressable sequence needs more than ~90
// entries; one push past an invariant-respecting stack is also covered.
const MaxStackDepth = 128

// MergeFunc merges two adjacent runs into one. A RunStack calls it with the
// lower run first.
type MergeFunc func(a, b Run) error

// RunStack holds the pending runs of one sort call, bottom to top, each one
// immediately followed by the next in the sequence.
type RunStack struct {
	runs [MaxStackDepth]Run
	n    int
}

// Len returns the number of pending runs.
func (st *RunStack) Len() int {
	return st.n
}

// Runs returns the pending runs, bottom first. The slice aliases the stack
// and is only valid until the next Push or collapse.
func (st *RunStack) Runs() []Run {
	return st.runs[:st.n]
}

// Top returns the top-most run. It panics on an empty stack.
func (st *RunStack) Top() Run {
	if st.n == 0 {
		panic("runsort: Top of empty run stack")
	}
	return st.runs[st.n-1]
}

// Push appends r on top of the stack.
//
// Exceeding MaxStackDepth means the caller skipped collapsing, which is a
// programming error; Push panics.
func (st *RunStack) Push(r Run) {
	if st.n == len(st.runs) {
		panic(fmt.Sprintf("runsort: run stack overflow (%d runs)", st.n))
	}
	st.runs[st.n] = r
	st.n++
}

// CheckInvariant reports whether every three consecutive runs A, B, C (C
// nearest the top) satisfy len(A) > len(B)+len(C) and every two consecutive
// runs B, C satisfy len(B) > len(C).
func (st *RunStack) CheckInvariant() bool {
	r := st.runs[:st.n]
	for i := 1; i < len(r); i++ {
		if r[i-1].Len <= r[i].Len {
			return false
		}
		if i >= 2 && r[i-2].Len <= r[i-1].Len+r[i].Len {
			return false
		}
	}
	return true
}

// Collapse merges runs near the top until the invariant holds again.
//
// remaining is the number of input elements not yet pushed; at zero the last
// two runs are merged regardless, since nothing larger can arrive.
//
// With D on top of C, B and A, each step merges exactly one pair:
//   - B with C (left merge) when B <= C+D or A <= B+C, and C > D;
//   - C with D (right merge) when C <= D.
//
// Only the top four runs are inspected. Runs further down are untouched by
// the merges and already satisfied the invariant, so stopping when the top
// four do restores it for the whole stack.
//
// If merge fails the stack is left as it was before that step.
func (st *RunStack) Collapse(merge MergeFunc, remaining int) error {
	for st.n > 1 {
		if st.n == 2 {
			if remaining == 0 || st.runs[0].Len <= st.runs[1].Len {
				return st.mergeAt(merge, 0)
			}
			return nil
		}

		top := st.n - 1
		b, c, d := st.runs[top-2].Len, st.runs[top-1].Len, st.runs[top].Len
		abc := st.n >= 4 && st.runs[top-3].Len <= b+c
		bcd := b <= c+d || abc
		cd := c <= d

		switch {
		case !bcd && !cd:
			return nil
		case bcd && !cd:
			if err := st.mergeAt(merge, top-2); err != nil {
				return err
			}
		default:
			if err := st.mergeAt(merge, top-1); err != nil {
				return err
			}
		}
	}
	return nil
}

// CollapseFinal merges the top two runs until a single run remains.
func (st *RunStack) CollapseFinal(merge MergeFunc) error {
	for st.n > 1 {
		if err := st.mergeAt(merge, st.n-2); err != nil {
			return err
		}
	}
	return nil
}

// mergeAt merges runs i and i+1 and closes the gap above them.
func (st *RunStack) mergeAt(merge MergeFunc, i int) error {
	a, b := st.runs[i], st.runs[i+1]
	if err := merge(a, b); err != nil {
		return err
	}
	st.runs[i].Len = a.Len + b.Len
	copy(st.runs[i+1:st.n-1], st.runs[i+2:st.n])
	st.n--
	return nil
}
