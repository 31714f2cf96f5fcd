package runsort

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"math/rand/v2"
	"sync"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// randomInts returns n values in [0, limit).
func randomInts(rng *rand.Rand, n, limit int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = rng.IntN(limit)
	}
	return s
}

// record is a sort element whose Seq is its position in the unsorted input.
type record struct {
	Key int
	Seq int
}

func records(keys []int) []record {
	out := make([]record, len(keys))
	for i, k := range keys {
		out[i] = record{Key: k, Seq: i}
	}
	return out
}

var byKey Comparator[record] = func(a, b record) Order {
	switch {
	case a.Key < b.Key:
		return Less
	case a.Key > b.Key:
		return Greater
	}
	return Equal
}

var errInjected = errors.New("injected allocation failure")

// failingAllocator fails every allocation after the first `ok` ones.
type failingAllocator[E any] struct {
	ok    int
	calls int
}

func (f *failingAllocator[E]) Allocate(n int) ([]E, error) {
	f.calls++
	if f.calls > f.ok {
		return nil, errInjected
	}
	return make([]E, n), nil
}

func (f *failingAllocator[E]) Release([]E) error { return nil }

// recordingAllocator logs every allocation and tracks live buffers.
type recordingAllocator[E any] struct {
	mu       sync.Mutex
	sizes    []int
	live     int
	released int
	// releaseErr, when set, is returned by every Release.
	releaseErr error
}

func (r *recordingAllocator[E]) Allocate(n int) ([]E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sizes = append(r.sizes, n)
	r.live++
	return make([]E, n), nil
}

func (r *recordingAllocator[E]) Release([]E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live--
	r.released++
	return r.releaseErr
}
