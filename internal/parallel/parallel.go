// Package parallel provides block-partitioned parallel loops for the
// bulk-synchronous phases of the interpolation pipeline. Each phase is an
// independent-iteration map over targets, so a loop here is just: split
// [0,n) into contiguous chunks, run one goroutine per chunk, wait.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// For runs fn over contiguous chunks covering [0,n) using up to workers
// goroutines and returns when all chunks are done. If workers <= 0,
// runtime.GOMAXPROCS(0) is used.
//
// Iterations must touch only their own output cells; For provides no
// synchronization beyond the final barrier.
func For(n, workers int, fn func(start, end int)) {
	_ = ForErr(n, workers, func(start, end int) error {
		fn(start, end)
		return nil
	})
}

// ForErr is For with error propagation: the first error returned by any
// chunk is returned after all chunks have finished. There is no
// cancellation; chunks always run to completion.
func ForErr(n, workers int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		return fn(0, n)
	}

	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		g.Go(func() error {
			return fn(start, end)
		})
	}

	return g.Wait()
}
