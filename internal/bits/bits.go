// Package bits provides low-level bit manipulation primitives.
package bits

import "math/bits"

// HighBits keeps the top `keep` significant bits of n, shifting the rest out.
// dropped reports whether any 1-bit was shifted out.
// Values with at most keep significant bits are returned unchanged.
func HighBits(n uint64, keep int) (top uint64, dropped bool) {
	shift := bits.Len64(n) - keep
	if shift <= 0 {
		return n, false
	}
	mask := uint64(1)<<shift - 1
	return n >> shift, n&mask != 0
}

// FastRange64 maps a 64-bit hash uniformly to [0, n).
// Uses the "fastrange" technique: multiply and take high bits.
// This is the standard way to map hashes to ranges without modulo bias.
func FastRange64(hash, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, n)
	return hi
}
