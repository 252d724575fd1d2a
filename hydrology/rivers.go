package hydrology

import "github.com/chewxy/math32"

// DefaultRiverPercentile is the default accumulation threshold, the 99th
// percentile of accumulation values.
const DefaultRiverPercentile = 99

// DefaultWidthConstant is k in w = k*sqrt(A), with w in cells: a cell
// draining 100 cells gets width 1.5, one draining 10,000 cells gets 15.
const DefaultWidthConstant = 0.15

// River is one connected group of river cells.
type River struct {
	Cells []Point
	Width []float32 // parallel to Cells
}

// Point is a grid coordinate.
type Point struct{ X, Y int }

// extractRivers groups cells whose accumulation exceeds threshold into
// 8-connected components and assigns each cell a hydraulic-geometry width.
func extractRivers(acc []float32, n int, threshold, widthK float32) []River {
	isRiver := make([]bool, len(acc))
	for i, a := range acc {
		isRiver[i] = a > threshold
	}

	visited := make([]bool, len(acc))
	var rivers []River

	var stack []int
	for start := 0; start < len(acc); start++ {
		if !isRiver[start] || visited[start] {
			continue
		}

		var r River
		stack = stack[:0]
		stack = append(stack, start)
		visited[start] = true

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := idx%n, idx/n
			r.Cells = append(r.Cells, Point{X: x, Y: y})
			r.Width = append(r.Width, widthK*math32.Sqrt(acc[idx]))

			forEachNeighbor8(x, y, n, func(nx, ny int) {
				nidx := ny*n + nx
				if isRiver[nidx] && !visited[nidx] {
					visited[nidx] = true
					stack = append(stack, nidx)
				}
			})
		}

		rivers = append(rivers, r)
	}

	return rivers
}
