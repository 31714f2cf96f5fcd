// Package verify checks sort results: ascending order, stability, and
// digests that tell whether two sequences hold the same elements (Multiset)
// or the same elements in the same order (Ordered).
package verify

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Encoder appends the canonical byte form of e to dst.
type Encoder[E any] func(dst []byte, e E) []byte

// Int encodes integers as 8 little-endian bytes.
func Int[E constraints.Integer](dst []byte, e E) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(e))
}

// String encodes a string as its bytes.
func String(dst []byte, e string) []byte {
	return append(dst, e...)
}

// Multiset returns a digest of the elements of s that ignores their order:
// the wrapping sum of the xxhash of each encoded element.
func Multiset[E any](s []E, enc Encoder[E]) uint64 {
	var sum uint64
	var buf []byte
	for _, e := range s {
		buf = enc(buf[:0], e)
		sum += xxhash.Sum64(buf)
	}
	return sum
}

// Ordered returns a digest of s that depends on element order. Each encoded
// element is length-prefixed so that boundaries are unambiguous.
func Ordered[E any](s []E, enc Encoder[E]) xxh3.Uint128 {
	h := xxh3.New()
	var buf []byte
	for _, e := range s {
		buf = enc(buf[:0], e)
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(buf)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(buf)
	}
	return h.Sum128()
}

// Sorted returns an error naming the first position where s is descending.
func Sorted[E any](s []E, cmp func(a, b E) int) error {
	for i := 1; i < len(s); i++ {
		if cmp(s[i-1], s[i]) > 0 {
			return fmt.Errorf("order violated at %d: %v > %v", i, s[i-1], s[i])
		}
	}
	return nil
}

// Tagged pairs a key with its position in the unsorted input.
type Tagged[K any] struct {
	Key K
	Seq int
}

// Tag returns keys paired with their input positions.
func Tag[K any](keys []K) []Tagged[K] {
	out := make([]Tagged[K], len(keys))
	for i, k := range keys {
		out[i] = Tagged[K]{Key: k, Seq: i}
	}
	return out
}

// Keys returns the keys of s in order.
func Keys[K any](s []Tagged[K]) []K {
	out := make([]K, len(s))
	for i, t := range s {
		out[i] = t.Key
	}
	return out
}

// Stable checks that s is sorted by key and that elements with equal keys
// are still in input order.
func Stable[K any](s []Tagged[K], cmp func(a, b K) int) error {
	for i := 1; i < len(s); i++ {
		switch r := cmp(s[i-1].Key, s[i].Key); {
		case r > 0:
			return fmt.Errorf("order violated at %d: %v > %v", i, s[i-1].Key, s[i].Key)
		case r == 0 && s[i-1].Seq > s[i].Seq:
			return fmt.Errorf("stability violated at %d: key %v has seq %d before seq %d",
				i, s[i].Key, s[i-1].Seq, s[i].Seq)
		}
	}
	return nil
}
