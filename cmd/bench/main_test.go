package main

import (
	"context"
	"testing"

	"github.com/tamirms/runsort/internal/workload"
)

// TestRunWorkloadPeakMappedPerWorkload sorts a random input, which needs
// scratch, then a sorted one, which needs none. The second report must not
// inherit the first one's mapped peak.
func TestRunWorkloadPeakMappedPerWorkload(t *testing.T) {
	ctx := context.Background()
	cfg := runConfig{mmap: true, verify: true}

	var peaks []int64
	for _, kind := range []workload.Kind{workload.Random, workload.Sorted} {
		in, err := workload.Generate(ctx, kind, 200_000, 1, 2)
		if err != nil {
			t.Fatal(err)
		}
		r, err := runWorkload(kind, in, cfg)
		if err != nil {
			t.Fatalf("%v: %v", kind, err)
		}
		if r.verifyError != nil {
			t.Fatalf("%v: %v", kind, r.verifyError)
		}
		peaks = append(peaks, r.peakMapped)
	}
	if peaks[0] == 0 {
		t.Fatal("random workload mapped no scratch")
	}
	if peaks[1] != 0 {
		t.Fatalf("sorted workload peak mapped = %d, want 0", peaks[1])
	}
}

func TestRunWorkloadHeapScratch(t *testing.T) {
	in, err := workload.Generate(context.Background(), workload.Sawtooth, 50_000, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	r, err := runWorkload(workload.Sawtooth, in, runConfig{verify: true, baseline: true})
	if err != nil {
		t.Fatal(err)
	}
	if r.verifyError != nil {
		t.Fatal(r.verifyError)
	}
	if r.peakMapped != 0 || r.stats.Merges == 0 || r.baseline == 0 {
		t.Fatalf("result = %+v, want heap scratch with merges and a baseline time", r)
	}
}
