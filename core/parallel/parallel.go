// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"

	"github.com/sourcegraph/conc"
)

// Parallelize divides items into one contiguous [start, end) range per CPU core
// and runs fn on every range concurrently. It returns once all ranges are done.
// A panic in fn is re-raised in the caller after the other ranges finish.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeWorkers(items, runtime.NumCPU(), fn)
}

// ParallelizeWorkers is Parallelize with an explicit worker count.
func ParallelizeWorkers(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items
	}

	chunk := (items + workers - 1) / workers

	var wg conc.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Go(func() { fn(start, end) })
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
