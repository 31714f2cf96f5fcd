// Package workload generates deterministic input sequences for tests and the
// bench tool. Every sequence is a pure function of (kind, n, seed), whatever
// the number of workers used to produce it.
package workload

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"

	sorterrors "github.com/tamirms/runsort/errors"
	intbits "github.com/tamirms/runsort/internal/bits"
)

// Kind selects the shape of a generated sequence.
type Kind int

const (
	Random       Kind = iota // independent uniform values
	Sorted                   // 0, 1, 2, ...
	Reversed                 // n, n-1, ..., 1
	Sawtooth                 // eight ascending teeth
	FewUnique                // uniform over eight distinct values
	NearlySorted             // ascending with ~1% of positions swapped
	OrganPipe                // ascending then descending
	AllEqual                 // one repeated value
)

var kindNames = [...]string{
	Random:       "random",
	Sorted:       "sorted",
	Reversed:     "reversed",
	Sawtooth:     "sawtooth",
	FewUnique:    "fewunique",
	NearlySorted: "nearlysorted",
	OrganPipe:    "organpipe",
	AllEqual:     "allequal",
}

// Kinds lists every Kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, len(kindNames))
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s (case-insensitive).
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", sorterrors.ErrUnsupportedWorkload, s)
}

const (
	// chunkSize is the number of elements one worker fills per task.
	chunkSize = 1 << 16
	// contextCheckInterval is how often a worker polls for cancellation.
	contextCheckInterval = 4096
	// fewUniqueValues is the alphabet size of FewUnique.
	fewUniqueValues = 8
	// sawtoothTeeth is the number of ascending teeth in Sawtooth.
	sawtoothTeeth = 8
)

// Generate returns n values of the given kind. workers <= 1 generates on the
// calling goroutine; otherwise chunks are filled by up to workers goroutines.
func Generate(ctx context.Context, kind Kind, n int, seed uint32, workers int) ([]uint64, error) {
	if kind < 0 || int(kind) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %v", sorterrors.ErrUnsupportedWorkload, kind)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", sorterrors.ErrInvalidSize, n)
	}
	out := make([]uint64, n)
	g := gen{kind: kind, n: n, seed: seed}

	if workers <= 1 {
		if err := g.fill(ctx, out, 0); err != nil {
			return nil, err
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for lo := 0; lo < n; lo += chunkSize {
			hi := min(lo+chunkSize, n)
			eg.Go(func() error {
				return g.fill(egCtx, out[lo:hi], lo)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	if kind == NearlySorted {
		g.perturb(out)
	}
	return out, nil
}

type gen struct {
	kind Kind
	n    int
	seed uint32
}

// hash returns the seeded murmur3 hash of i.
func (g gen) hash(i int) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(i))
	return murmur3.Sum64WithSeed(b[:], g.seed)
}

// fill writes the values for positions [base, base+len(dst)).
func (g gen) fill(ctx context.Context, dst []uint64, base int) error {
	for off := range dst {
		if off%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		dst[off] = g.value(base + off)
	}
	return nil
}

func (g gen) value(i int) uint64 {
	n := uint64(g.n)
	u := uint64(i)
	switch g.kind {
	case Random:
		return g.hash(i)
	case Sorted, NearlySorted:
		return u
	case Reversed:
		return n - u
	case Sawtooth:
		tooth := max(n/sawtoothTeeth, 1)
		return u % tooth
	case FewUnique:
		return intbits.FastRange64(g.hash(i), fewUniqueValues)
	case OrganPipe:
		if u < n/2 {
			return u
		}
		return n - u
	case AllEqual:
		return 7
	}
	return 0
}

// perturb swaps about 1% of positions pairwise, deterministically.
func (g gen) perturb(s []uint64) {
	n := uint64(len(s))
	if n < 2 {
		return
	}
	swaps := max(len(s)/100, 1)
	for k := range swaps {
		i := intbits.FastRange64(g.hash(g.n+2*k), n)
		j := intbits.FastRange64(g.hash(g.n+2*k+1), n)
		s[i], s[j] = s[j], s[i]
	}
}
