package field

import "fmt"

// Grid is a contiguous N×N row-major buffer of float32 values.
// It is the single data type every pipeline stage consumes and produces:
// elevation H and buildability potential P (both in [0,1]), and any derived
// scalar field (slope S, flow accumulation A, whose values are cell counts
// of 1 or more) all live in a Grid.
type Grid struct {
	N      int
	Values []float32
}

// NewGrid allocates an N×N grid, zero-initialized.
func NewGrid(n int) *Grid {
	return &Grid{N: n, Values: make([]float32, n*n)}
}

// At returns the value at (x,y). x and y are wrapped-free; callers must
// keep them in [0,N).
func (g *Grid) At(x, y int) float32 {
	return g.Values[y*g.N+x]
}

// AtClamped returns At with (x,y) clamped to the valid range, used by
// stencils near the border.
func (g *Grid) AtClamped(x, y int) float32 {
	x = Clamp(x, 0, g.N-1)
	y = Clamp(y, 0, g.N-1)
	return g.Values[y*g.N+x]
}

func (g *Grid) Set(x, y int, v float32) {
	g.Values[y*g.N+x] = v
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{N: g.N, Values: make([]float32, len(g.Values))}
	copy(out.Values, g.Values)
	return out
}

// InBounds reports whether (x,y) is a valid cell index.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.N && y >= 0 && y < g.N
}

// Mean returns the arithmetic mean of all cells.
func (g *Grid) Mean() float32 {
	var sum float64
	for _, v := range g.Values {
		sum += float64(v)
	}
	return float32(sum / float64(len(g.Values)))
}

// MinMax returns the minimum and maximum cell values.
func (g *Grid) MinMax() (min, max float32) {
	min, max = g.Values[0], g.Values[0]
	for _, v := range g.Values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

// RepairNonFinite clamps any NaN/Inf cell to [0,1] in place and returns the
// count of cells that were repaired. Finite cells outside [0,1] are clamped
// too but are not included in the count. This is the only form of error
// recovery the pipeline performs silently; the count is surfaced in the
// statistics record rather than swallowed.
func (g *Grid) RepairNonFinite() int {
	repaired := 0
	for i, v := range g.Values {
		if v != v { // NaN
			g.Values[i] = 0
			repaired++
			continue
		}
		if v > 1 {
			g.Values[i] = 1
			if v > 1e30 || v < -1e30 { // was effectively +/-Inf
				repaired++
			}
		} else if v < 0 {
			g.Values[i] = 0
			if v < -1e30 {
				repaired++
			}
		}
	}
	return repaired
}

// Normalize rescales all cells so the minimum maps to 0 and the maximum to
// 1. The pipeline driver calls this exactly twice: once after erosion and
// once at the very end. A third call anywhere in between would silently
// rescale an already-[0,1] field and distort every absolute threshold
// downstream of it, so new stages must never call this themselves.
func (g *Grid) Normalize() {
	min, max := g.MinMax()
	span := max - min
	if span < 1e-12 {
		// Degenerate (flat) field: center it rather than divide by ~0.
		for i := range g.Values {
			g.Values[i] = 0.5
		}
		return
	}
	inv := 1 / span
	for i, v := range g.Values {
		g.Values[i] = (v - min) * inv
	}
}

// Sample bilinearly interpolates the grid at a sub-pixel float position.
// Positions outside [0,N-1] are clamped to the border, matching the
// "outside the grid kills the particle" rule being enforced by the caller
// rather than by this helper returning garbage.
func (g *Grid) Sample(x, y float32) float32 {
	fx := Clamp(x, 0, float32(g.N-1))
	fy := Clamp(y, 0, float32(g.N-1))

	x0 := int(fx)
	y0 := int(fy)
	x1 := Min(x0+1, g.N-1)
	y1 := Min(y0+1, g.N-1)

	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := g.At(x0, y0)
	c10 := g.At(x1, y0)
	c01 := g.At(x0, y1)
	c11 := g.At(x1, y1)

	top := Lerp2(c00, c10, tx)
	bottom := Lerp2(c01, c11, tx)
	return Lerp2(top, bottom, ty)
}

func Lerp2(a, b, t float32) float32 {
	return a + (b-a)*t
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid{N:%d}", g.N)
}
