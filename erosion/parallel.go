package erosion

import (
	"math/rand"
	"sync"

	"github.com/duskfield/heightmap/field"
)

// simulateParallel splits opts.Particles across threads goroutines. Each
// worker reads from a shared, frozen snapshot of h1 (never mutated) and
// writes its deposit/erode deltas into its own private zero-initialized
// accumulator grid, so there is no cross-thread write contention and no
// atomic per-cell update. The accumulators are summed into the base grid
// once every worker has finished, which is the one synchronization point
// in the whole stage.
func simulateParallel(h, h1, p *field.Grid, baseSeed int64, opts Options, threads int) (*field.Grid, error) {
	n := h1.N
	perWorker := opts.Particles / threads
	remainder := opts.Particles % threads

	deltas := make([]*field.Grid, threads)
	var wg sync.WaitGroup

	start := 0
	for w := 0; w < threads; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		if count == 0 {
			continue
		}

		acc := field.NewGrid(n)
		deltas[w] = acc

		// Each worker's stream is derived from (baseSeed, worker index) so
		// the set of particles simulated is identical across runs with the
		// same seed and thread count, regardless of goroutine scheduling
		// order: scheduling only affects which worker finishes first, not
		// what it computed.
		r := rand.New(rand.NewSource(baseSeed ^ int64(w)*0x2545F4914F6CDD1D))

		wg.Add(1)
		workerStart := start
		workerCount := count
		go func() {
			defer wg.Done()
			runBatch(acc, h1, p, r, opts, workerStart, workerCount, opts.Progress)
		}()

		start += count
	}

	wg.Wait()

	for _, acc := range deltas {
		if acc == nil {
			continue
		}
		for i, d := range acc.Values {
			h.Values[i] += d
		}
	}

	return h, nil
}
