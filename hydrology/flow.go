package hydrology

import "sort"

// neighborDX/neighborDY enumerate the 8 D8 neighbors in canonical order
// (N, NE, E, SE, S, SW, W, NW). Ties in steepest-drop favor the first
// maximal entry in this order.
var neighborDX = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
var neighborDY = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
var neighborDist = [8]float32{1, sqrt2, 1, sqrt2, 1, sqrt2, 1, sqrt2}

const sqrt2 = 1.4142135

// noFlow marks a boundary cell: D8 routes it to a virtual exterior sink
// rather than any interior neighbor.
const noFlow = -1

func forEachNeighbor8(x, y, n int, fn func(nx, ny int)) {
	for i := 0; i < 8; i++ {
		nx, ny := x+neighborDX[i], y+neighborDY[i]
		if nx < 0 || nx >= n || ny < 0 || ny >= n {
			continue
		}
		fn(nx, ny)
	}
}

// d8Direction computes, for every cell, the index of the neighbor (in
// neighborDX/neighborDY order) reached by the steepest filled-elevation
// drop per unit distance; boundary cells get noFlow.
func d8Direction(filled []float32, n int) []int8 {
	dir := make([]int8, len(filled))

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			idx := y*n + x
			if x == 0 || x == n-1 || y == 0 || y == n-1 {
				dir[idx] = noFlow
				continue
			}

			best := int8(noFlow)
			var bestDrop float32
			h := filled[idx]

			for i := 0; i < 8; i++ {
				nx, ny := x+neighborDX[i], y+neighborDY[i]
				nidx := ny*n + nx
				drop := (h - filled[nidx]) / neighborDist[i]
				if drop > bestDrop {
					bestDrop = drop
					best = int8(i)
				}
			}
			dir[idx] = best
		}
	}
	return dir
}

// flowAccumulation sorts cells by filled elevation descending, then
// traverses in that order so every cell's accumulation is finalized before
// it drains into its (lower) downstream neighbor. This is an exact integer
// reduction, so it is computed single-threaded rather than split across
// goroutines; a parallel reduction here would only add complexity without
// changing the result.
func flowAccumulation(filled []float32, dir []int8, n int) []float32 {
	order := make([]int, len(filled))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return filled[order[a]] > filled[order[b]]
	})

	acc := make([]float32, len(filled))
	for i := range acc {
		acc[i] = 1
	}

	for _, idx := range order {
		d := dir[idx]
		if d == noFlow {
			continue
		}
		x, y := idx%n, idx/n
		nx, ny := x+neighborDX[d], y+neighborDY[d]
		acc[ny*n+nx] += acc[idx]
	}

	return acc
}
