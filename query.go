package heightmap

import (
	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/hydrology"
)

// SlopeField computes the slope field S for elevation grid H.
func SlopeField(h *field.Grid, cellMeters float32) *field.Grid {
	return field.SlopeField(h, cellMeters)
}

// BuildableFraction computes the buildable fraction β for elevation grid H.
func BuildableFraction(h *field.Grid, cellMeters float32) float32 {
	return field.BuildableFraction(h, cellMeters)
}

// FlowAccumulation computes flow accumulation A for elevation grid H.
func FlowAccumulation(h *field.Grid) *field.Grid {
	return hydrology.FlowAccumulation(h)
}

// ExtractRivers extracts rivers from a previously computed accumulation
// grid at an absolute threshold.
func ExtractRivers(a *field.Grid, threshold float32) []hydrology.River {
	return hydrology.ExtractRivers(a, threshold)
}
