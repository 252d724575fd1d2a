package field

import (
	"runtime"
	"sync"
)

// ForEachRow splits the half-open row range [0,n) across workers goroutines
// (runtime.NumCPU() when workers<=0, serial when workers==1) and calls fn
// once per contiguous row chunk. Each chunk is independent: no cross-thread
// data dependencies, so callers can write directly into their slice of the
// grid without synchronization.
func ForEachRow(n, workers int, fn func(yStart, yEnd int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 1 || n <= workers {
		fn(0, n)
		return
	}

	rowsPerWorker := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startY := w * rowsPerWorker
		endY := Min(startY+rowsPerWorker, n)
		if startY >= n {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			fn(yStart, yEnd)
		}(startY, endY)
	}
	wg.Wait()
}
