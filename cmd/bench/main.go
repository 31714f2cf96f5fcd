// Bench is a benchmarking tool for measuring runsort throughput, comparison
// counts and scratch memory against slices.SortStableFunc.
//
// Usage:
//
//	go run ./cmd/bench -n 10000000 -kind random -scratch mmap
//
// Flags:
//
//	-n          Number of elements to sort (default: 10,000,000)
//	-kind       Workload: random, sorted, reversed, sawtooth, fewunique,
//	            nearlysorted, organpipe, allequal, or all (default: all)
//	-seed       Workload seed (default: 0x1234)
//	-workers    Goroutines used to generate input (default: GOMAXPROCS)
//	-scratch    Scratch allocator: heap or mmap (default: heap)
//	-prefault   Prefault mmap scratch pages (default: false)
//	-baseline   Also time slices.SortStableFunc (default: true)
//	-verify     Check order and permutation of the output (default: true)
package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/metrics"
	"runtime/pprof"
	"slices"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/tamirms/runsort"
	"github.com/tamirms/runsort/internal/verify"
	"github.com/tamirms/runsort/internal/workload"
	"github.com/tamirms/runsort/mapalloc"
)

// peakRSS reports the process high-water resident set in bytes, or 0 if it
// cannot be read. The difference across the sort phase shows how much memory
// scratch buffers added, whether they came from the heap or from mappings.
func peakRSS() uint64 {
	var ru syscall.Rusage
	if syscall.Getrusage(syscall.RUSAGE_SELF, &ru) != nil {
		return 0
	}
	// Linux reports Maxrss in KiB, darwin in bytes.
	if runtime.GOOS == "darwin" {
		return uint64(ru.Maxrss)
	}
	return uint64(ru.Maxrss) * 1024
}

// result is one row of the report.
type result struct {
	kind        workload.Kind
	sortTime    time.Duration
	baseline    time.Duration
	stats       runsort.Stats
	peakHeap    uint64
	peakMapped  int64
	verifyError error
}

func main() {
	nFlag := flag.Int("n", 10_000_000, "number of elements")
	kindFlag := flag.String("kind", "all", "workload kind, or all")
	seedFlag := flag.Uint("seed", 0x1234, "workload seed")
	workersFlag := flag.Int("workers", runtime.GOMAXPROCS(0), "goroutines generating input")
	scratchFlag := flag.String("scratch", "heap", "scratch allocator: heap or mmap")
	prefaultFlag := flag.Bool("prefault", false, "prefault mmap scratch pages")
	baselineFlag := flag.Bool("baseline", true, "also time slices.SortStableFunc")
	verifyFlag := flag.Bool("verify", true, "check order and permutation of the output")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (sort phase only)")
	memprofile := flag.String("memprofile", "", "write memory profile to file (sort phase only)")
	flag.Parse()

	kinds := workload.Kinds()
	if *kindFlag != "all" {
		k, err := workload.ParseKind(*kindFlag)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(2)
		}
		kinds = []workload.Kind{k}
	}

	var mapOpts []mapalloc.Option
	switch *scratchFlag {
	case "heap":
	case "mmap":
		if *prefaultFlag {
			mapOpts = append(mapOpts, mapalloc.WithPrefault())
		}
	default:
		fmt.Printf("Unknown scratch allocator: %s (use 'heap' or 'mmap')\n", *scratchFlag)
		os.Exit(2)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			return
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			return
		}
		defer pprof.StopCPUProfile()
	}

	ctx := context.Background()
	baselineRSS := peakRSS()
	var results []result
	for _, kind := range kinds {
		fmt.Printf("Generating %d %v elements...\n", *nFlag, kind)
		in, err := workload.Generate(ctx, kind, *nFlag, uint32(*seedFlag), *workersFlag)
		if err != nil {
			fmt.Printf("Generate failed: %v\n", err)
			return
		}

		fmt.Printf("Sorting (%v)...\n", kind)
		r, err := runWorkload(kind, in, runConfig{
			mmap:     *scratchFlag == "mmap",
			mapOpts:  mapOpts,
			baseline: *baselineFlag,
			verify:   *verifyFlag,
		})
		if err != nil {
			fmt.Printf("Sort failed: %v\n", err)
			return
		}
		results = append(results, r)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			fmt.Printf("could not create memory profile: %v\n", err)
		} else {
			runtime.GC() // Get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Printf("could not write memory profile: %v\n", err)
			}
			_ = f.Close()
		}
	}

	printReport(results, *nFlag, *scratchFlag, peakRSS()-baselineRSS)
}

// runConfig selects how runWorkload sorts and checks one input.
type runConfig struct {
	mmap     bool
	mapOpts  []mapalloc.Option
	baseline bool
	verify   bool
}

// runWorkload sorts a copy of in and measures it. With mmap scratch each call
// gets its own allocator, so peakMapped covers this workload only.
func runWorkload(kind workload.Kind, in []uint64, cfg runConfig) (r result, err error) {
	r.kind = kind
	s := slices.Clone(in)
	opts := []runsort.Option[uint64]{runsort.WithStats[uint64](&r.stats)}
	var mapped *mapalloc.Allocator[uint64]
	if cfg.mmap {
		mapped = mapalloc.New[uint64](cfg.mapOpts...)
		defer func() { err = errors.Join(err, mapped.Close()) }()
		opts = append(opts, runsort.WithAllocator[uint64](mapped))
	}

	stop := sampleHeap(&r.peakHeap)
	start := time.Now()
	err = runsort.SortOrdered(s, opts...)
	r.sortTime = time.Since(start)
	stop()
	if err != nil {
		return r, err
	}
	if mapped != nil {
		r.peakMapped = mapped.PeakBytes()
	}

	if cfg.verify {
		r.verifyError = verify.Sorted(s, cmp.Compare[uint64])
		if r.verifyError == nil &&
			verify.Multiset(s, verify.Int[uint64]) != verify.Multiset(in, verify.Int[uint64]) {
			r.verifyError = errors.New("output is not a permutation of the input")
		}
	}

	if cfg.baseline {
		copy(s, in)
		start := time.Now()
		slices.SortStableFunc(s, cmp.Compare[uint64])
		r.baseline = time.Since(start)
	}
	return r, nil
}

// sampleHeap tracks peak live heap in 10ms steps until the returned stop
// function is called. Uses runtime/metrics instead of ReadMemStats to avoid
// stop-the-world pauses that distort timings.
func sampleHeap(peak *uint64) (stop func()) {
	runtime.GC()
	samples := []metrics.Sample{{Name: "/memory/classes/heap/objects:bytes"}}
	metrics.Read(samples)
	base := samples[0].Value.Uint64()

	var highest atomic.Uint64
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				metrics.Read(samples)
				if v := samples[0].Value.Uint64(); v > highest.Load() {
					highest.Store(v)
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
		if m := highest.Load(); m > base {
			*peak = m - base
		}
	}
}

func printReport(results []result, n int, scratch string, rssGrowth uint64) {
	fmt.Printf("\n")
	fmt.Printf("n = %d, scratch = %s, RSS growth = %.1f MB\n\n", n, scratch, float64(rssGrowth)/1_000_000)
	fmt.Printf("╔══════════════╦═══════════╦═══════════╦════════╦════════╦═════════════╦═══════════╦════════╗\n")
	fmt.Printf("║ Workload     ║ runsort   ║ stdlib    ║ Runs   ║ Merges ║ Comparisons ║ Scratch   ║ Verify ║\n")
	fmt.Printf("╠══════════════╬═══════════╬═══════════╬════════╬════════╬═════════════╬═══════════╬════════╣\n")
	for _, r := range results {
		baseline := "    -    "
		if r.baseline > 0 {
			baseline = fmt.Sprintf("%7.3f s", r.baseline.Seconds())
		}
		status := "ok"
		if r.verifyError != nil {
			status = "FAIL"
		}
		scratchMB := float64(r.stats.ScratchCap*8) / 1_000_000
		fmt.Printf("║ %-12s ║ %7.3f s ║ %s ║ %6d ║ %6d ║ %11d ║ %6.1f MB ║ %-6s ║\n",
			r.kind, r.sortTime.Seconds(), baseline, r.stats.Runs, r.stats.Merges,
			r.stats.Comparisons, scratchMB, status)
	}
	fmt.Printf("╚══════════════╩═══════════╩═══════════╩════════╩════════╩═════════════╩═══════════╩════════╝\n")

	for _, r := range results {
		if r.peakHeap > 0 || r.peakMapped > 0 {
			fmt.Printf("%-12s peak heap %.1f MB, peak mapped %.1f MB\n",
				r.kind, float64(r.peakHeap)/1_000_000, float64(r.peakMapped)/1_000_000)
		}
		if r.verifyError != nil {
			fmt.Printf("%-12s verify: %v\n", r.kind, r.verifyError)
		}
	}
}
