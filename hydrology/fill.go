package hydrology

import "container/heap"

// fillEpsilon is the epsilon added across a priority-flood boundary sweep
// to guarantee strict descent out of every pit.
const fillEpsilon = 1e-6

// flatCell is one entry in the priority-flood open set: a cell's grid
// index and the filled elevation it was pushed with.
type flatCell struct {
	idx    int
	filled float32
}

// cellHeap is a min-heap over flatCell.filled implementing
// container/heap.Interface.
type cellHeap []flatCell

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].filled < h[j].filled }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(flatCell)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// fillDepressions runs priority-flood and returns the filled elevation of
// every cell, guaranteeing every non-boundary cell has at
// least one strictly-lower 8-neighbor (hence a well-defined D8 downstream
// target).
func fillDepressions(h []float32, n int) []float32 {
	filled := make([]float32, len(h))
	visited := make([]bool, len(h))

	open := &cellHeap{}
	heap.Init(open)

	pushBoundary := func(x, y int) {
		idx := y*n + x
		if visited[idx] {
			return
		}
		visited[idx] = true
		filled[idx] = h[idx]
		heap.Push(open, flatCell{idx: idx, filled: filled[idx]})
	}

	for x := 0; x < n; x++ {
		pushBoundary(x, 0)
		pushBoundary(x, n-1)
	}
	for y := 0; y < n; y++ {
		pushBoundary(0, y)
		pushBoundary(n-1, y)
	}

	for open.Len() > 0 {
		cur := heap.Pop(open).(flatCell)
		cx, cy := cur.idx%n, cur.idx/n

		forEachNeighbor8(cx, cy, n, func(nx, ny int) {
			nidx := ny*n + nx
			if visited[nidx] {
				return
			}
			visited[nidx] = true
			candidate := h[nidx]
			if candidate < cur.filled+fillEpsilon {
				candidate = cur.filled + fillEpsilon
			}
			filled[nidx] = candidate
			heap.Push(open, flatCell{idx: nidx, filled: candidate})
		})
	}

	return filled
}
