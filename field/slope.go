package field

import "github.com/chewxy/math32"

// BuildableGrade is the maximum grade (rise over run) considered buildable,
// a 5% slope. It is a named constant rather than a derived value so every
// stage that gates on buildability agrees on the exact same threshold.
const BuildableGrade = 0.05

// SlopeField computes S = |∇H| in grade units from a centered-difference
// stencil scaled by the physical cell spacing. cellMeters is the physical
// width of one cell (commonly 3.5 m/px at full resolution).
func SlopeField(h *Grid, cellMeters float32) *Grid {
	s := NewGrid(h.N)
	n := h.N
	inv2d := 1 / (2 * cellMeters)

	ForEachRow(n, 0, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < n; x++ {
				left := h.AtClamped(x-1, y)
				right := h.AtClamped(x+1, y)
				up := h.AtClamped(x, y-1)
				down := h.AtClamped(x, y+1)

				dx := (right - left) * inv2d
				dy := (down - up) * inv2d
				s.Set(x, y, math32.Hypot(dx, dy))
			}
		}
	})
	return s
}

// BuildableMask derives B(x,y) = 1 iff S(x,y) <= BuildableGrade, stored as
// 0/1 float32 so it composes with the rest of the float-grid pipeline.
func BuildableMask(s *Grid) *Grid {
	b := NewGrid(s.N)
	for i, v := range s.Values {
		if v <= BuildableGrade {
			b.Values[i] = 1
		}
	}
	return b
}

// BuildableFraction returns the mean of B for an elevation field H, deriving
// S and B on demand rather than caching them.
func BuildableFraction(h *Grid, cellMeters float32) float32 {
	s := SlopeField(h, cellMeters)
	var buildable int
	for _, v := range s.Values {
		if v <= BuildableGrade {
			buildable++
		}
	}
	return float32(buildable) / float32(len(s.Values))
}

// Percentile returns the p-th percentile (0..100) of a grid's values using
// a full sort of a copy; used for slope statistics (P50/P90/P99) and the
// hydrology river threshold.
func Percentile(g *Grid, p float32) float32 {
	return PercentileSlice(g.Values, p)
}
