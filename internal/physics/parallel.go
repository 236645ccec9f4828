package physics

import (
	"runtime"
	"sync"
)

// ParallelThreshold is the range size from which Step spreads the gravity
// pass over several goroutines.
var ParallelThreshold = 256

// minChunk keeps each worker busy with at least this many bodies.
const minChunk = 64

// parallelFor splits [start, end) into contiguous chunks and runs fn on each
// chunk concurrently, returning once all have finished.
func parallelFor(start, end int, fn func(lo, hi int)) {
	n := end - start
	workers := runtime.GOMAXPROCS(0)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(start, end)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := start; lo < end; lo += chunk {
		hi := lo + chunk
		if hi > end {
			hi = end
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
