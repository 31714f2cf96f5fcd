package runsort_test

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/tamirms/runsort"
	sorterrors "github.com/tamirms/runsort/errors"
	"github.com/tamirms/runsort/mapalloc"
)

// ExampleSortFunc sorts records by age; people of the same age keep their
// input order.
func ExampleSortFunc() {
	type person struct {
		name string
		age  int
	}
	people := []person{
		{"Gopher", 13}, {"Alice", 55}, {"Vera", 24}, {"Bob", 55}, {"Ann", 24},
	}
	if err := runsort.SortFunc(people, func(a, b person) int {
		return cmp.Compare(a.age, b.age)
	}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(people)

	// Output: [{Gopher 13} {Vera 24} {Ann 24} {Alice 55} {Bob 55}]
}

// ExampleFromLess sorts case-insensitively with a less function.
func ExampleFromLess() {
	words := []string{"b", "A", "a", "B", "c"}
	byFold := runsort.FromLess(func(a, b string) bool {
		return strings.ToLower(a) < strings.ToLower(b)
	})
	if err := runsort.Sort(words, byFold); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(words)

	// Output: [A a b B c]
}

// ExampleWithScratchLimit shows the allocation failure path.
func ExampleWithScratchLimit() {
	s := make([]int, 1000)
	for i := range s {
		s[i] = (i * 7919) % 1000
	}
	err := runsort.SortOrdered(s, runsort.WithScratchLimit[int](8))
	fmt.Println(errors.Is(err, sorterrors.ErrAllocation))

	// The sequence is still a permutation; sorting again without the limit
	// finishes the job.
	if err := runsort.SortOrdered(s); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s[0], s[499], s[999])

	// Output:
	// true
	// 0 499 999
}

// ExampleWithAllocator keeps scratch memory off the Go heap.
func ExampleWithAllocator() {
	alloc := mapalloc.New[uint32]()
	defer alloc.Close()

	s := make([]uint32, 10_000)
	for i := range s {
		s[i] = uint32(len(s) - i)
	}
	if err := runsort.SortOrdered(s, runsort.WithAllocator[uint32](alloc)); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s[0], s[len(s)-1], alloc.Live())

	// Output: 1 10000 0
}

// ExampleStats inspects the work done on nearly sorted input.
func ExampleStats() {
	s := make([]int, 4096)
	for i := range s {
		s[i] = i
	}
	s[100], s[3000] = s[3000], s[100]

	var st runsort.Stats
	if err := runsort.SortOrdered(s, runsort.WithStats[int](&st)); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(runsort.IsSorted(s, runsort.Ordered[int]()), st.Runs, st.Merges)

	// Output: true 3 2
}
