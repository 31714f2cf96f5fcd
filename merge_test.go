package runsort

import (
	"errors"
	"slices"
	"testing"

	sorterrors "github.com/tamirms/runsort/errors"
)

func TestMergeRuns(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		a, b Run
		want []int
	}{
		{"interleaved_equal_lengths", []int{1, 3, 5, 3, 4, 6}, Run{0, 3}, Run{3, 3}, []int{1, 3, 3, 4, 5, 6}},
		{"left_shorter", []int{4, 9, 1, 2, 5, 7, 10}, Run{0, 2}, Run{2, 5}, []int{1, 2, 4, 5, 7, 9, 10}},
		{"right_shorter", []int{1, 2, 5, 7, 10, 4, 9}, Run{0, 5}, Run{5, 2}, []int{1, 2, 4, 5, 7, 9, 10}},
		{"already_ordered", []int{1, 2, 3, 4}, Run{0, 2}, Run{2, 2}, []int{1, 2, 3, 4}},
		{"fully_swapped", []int{5, 6, 7, 1, 2}, Run{0, 3}, Run{3, 2}, []int{1, 2, 5, 6, 7}},
		{"offset_runs", []int{9, 2, 8, 3, 0}, Run{1, 2}, Run{3, 1}, []int{9, 2, 3, 8, 0}},
		{"empty_left", []int{3, 1}, Run{0, 0}, Run{0, 2}, []int{3, 1}},
		{"empty_right", []int{3, 1}, Run{0, 2}, Run{2, 0}, []int{3, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := slices.Clone(tc.in)
			sc := NewScratch[int](nil, 0)
			defer sc.Release()
			if err := MergeRuns(s, tc.a, tc.b, sc, Ordered[int]()); err != nil {
				t.Fatalf("MergeRuns: %v", err)
			}
			if !slices.Equal(s, tc.want) {
				t.Fatalf("MergeRuns(%v) = %v, want %v", tc.in, s, tc.want)
			}
			if sc.Cap() > min(tc.a.Len, tc.b.Len) {
				t.Fatalf("scratch cap = %d, want <= %d (shorter run)", sc.Cap(), min(tc.a.Len, tc.b.Len))
			}
		})
	}
}

// TestMergeRunsStable checks the left-before-right rule for equal keys on
// both merge directions.
func TestMergeRunsStable(t *testing.T) {
	tests := []struct {
		name  string
		left  []int
		right []int
	}{
		{"left_staged", []int{1, 2, 2}, []int{0, 2, 2, 2, 3}},
		{"right_staged", []int{0, 2, 2, 2, 3}, []int{1, 2, 2}},
		{"all_equal", []int{5, 5, 5, 5}, []int{5, 5, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := records(append(slices.Clone(tc.left), tc.right...))
			want := slices.Clone(s)
			slices.SortStableFunc(want, func(a, b record) int { return a.Key - b.Key })

			sc := NewScratch[record](nil, 0)
			defer sc.Release()
			a := Run{0, len(tc.left)}
			b := Run{a.End(), len(tc.right)}
			if err := MergeRuns(s, a, b, sc, byKey); err != nil {
				t.Fatalf("MergeRuns: %v", err)
			}
			if !slices.Equal(s, want) {
				t.Fatalf("MergeRuns = %v, want %v", s, want)
			}
		})
	}
}

func TestMergeRunsRandom(t *testing.T) {
	rng := newTestRNG(t)
	sc := NewScratch[record](nil, 0)
	defer sc.Release()

	for iter := range 1000 {
		la, lb := rng.IntN(50), rng.IntN(50)
		left := randomInts(rng, la, 10)
		right := randomInts(rng, lb, 10)
		slices.Sort(left)
		slices.Sort(right)
		s := records(append(left, right...))
		want := slices.Clone(s)
		slices.SortStableFunc(want, func(a, b record) int { return a.Key - b.Key })

		if err := MergeRuns(s, Run{0, la}, Run{la, lb}, sc, byKey); err != nil {
			t.Fatalf("iter %d: MergeRuns: %v", iter, err)
		}
		if !slices.Equal(s, want) {
			t.Fatalf("iter %d: MergeRuns = %v, want %v", iter, s, want)
		}
	}
}

func TestMergeRunsInvalid(t *testing.T) {
	s := []int{1, 2, 3, 4}
	sc := NewScratch[int](nil, 0)
	defer sc.Release()
	bad := []struct {
		name string
		a, b Run
	}{
		{"gap", Run{0, 1}, Run{2, 2}},
		{"overlap", Run{0, 3}, Run{2, 2}},
		{"past_end", Run{0, 2}, Run{2, 3}},
		{"negative_start", Run{-1, 1}, Run{0, 2}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			err := MergeRuns(s, tc.a, tc.b, sc, Ordered[int]())
			if !errors.Is(err, sorterrors.ErrInvalidRun) {
				t.Fatalf("MergeRuns error = %v, want ErrInvalidRun", err)
			}
		})
	}
}

// TestMergeRunsAllocationFailure verifies that a failed scratch growth
// leaves the sequence untouched.
func TestMergeRunsAllocationFailure(t *testing.T) {
	in := []int{2, 4, 6, 1, 3, 5}
	s := slices.Clone(in)
	sc := NewScratch[int](&failingAllocator[int]{}, 0)
	defer sc.Release()

	err := MergeRuns(s, Run{0, 3}, Run{3, 3}, sc, Ordered[int]())
	if !errors.Is(err, sorterrors.ErrAllocation) {
		t.Fatalf("MergeRuns error = %v, want ErrAllocation", err)
	}
	if !errors.Is(err, errInjected) {
		t.Fatalf("MergeRuns error = %v, want it to wrap the allocator error", err)
	}
	if !slices.Equal(s, in) {
		t.Fatalf("sequence = %v after failed merge, want %v", s, in)
	}
}
