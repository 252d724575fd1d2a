// Package hydrology implements depression filling, D8 flow routing, flow
// accumulation, river extraction, and a dam-site heuristic. It is
// read-only with respect to elevation: every function here takes an
// elevation grid and derives side-output fields without mutating it.
package hydrology

import (
	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/perror"
)

// Options configures Analyze. CellMeters must be positive. When
// RiverThreshold is left at zero the river cutoff is the RiverPercentile
// percentile of accumulation (the 99th when RiverPercentile is also zero);
// set RiverThreshold explicitly to use an absolute accumulation cutoff
// instead of the percentile.
type Options struct {
	CellMeters      float32
	RiverThreshold  float32 // absolute A cutoff; 0 means "use RiverPercentile"
	RiverPercentile float32
	WidthConstant   float32
}

// DefaultOptions returns the default hydrology analysis parameters.
func DefaultOptions(cellMeters float32) Options {
	return Options{
		CellMeters:      cellMeters,
		RiverPercentile: DefaultRiverPercentile,
		WidthConstant:   DefaultWidthConstant,
	}
}

// Result is the full side-output of one Analyze call.
type Result struct {
	FlowDirection []int8
	Accumulation  *field.Grid
	Rivers        []River
	DamSites      []DamSite
}

// Analyze runs the full hydrology pipeline against h (typically the
// post-erosion elevation). h is never modified.
func Analyze(h *field.Grid, opts Options) (*Result, error) {
	if h.N < 2 {
		return nil, perror.New(perror.InvalidParameter, "hydrology requires N >= 2")
	}
	if opts.CellMeters <= 0 {
		return nil, perror.New(perror.InvalidParameter, "cell_meters must be positive")
	}

	n := h.N
	filled := fillDepressions(h.Values, n)
	dir := d8Direction(filled, n)
	acc := flowAccumulation(filled, dir, n)

	threshold := opts.RiverThreshold
	if threshold <= 0 {
		pct := opts.RiverPercentile
		if pct <= 0 {
			pct = DefaultRiverPercentile
		}
		threshold = field.PercentileSlice(acc, pct)
	}

	widthK := opts.WidthConstant
	if widthK <= 0 {
		widthK = DefaultWidthConstant
	}

	rivers := extractRivers(acc, n, threshold, widthK)
	dams := findDamSites(h.Values, dir, n, opts.CellMeters, rivers)

	accGrid := &field.Grid{N: n, Values: acc}

	return &Result{
		FlowDirection: dir,
		Accumulation:  accGrid,
		Rivers:        rivers,
		DamSites:      dams,
	}, nil
}

// FlowAccumulation computes flow accumulation A directly from an elevation
// grid, without the rest of Analyze's river/dam output.
func FlowAccumulation(h *field.Grid) *field.Grid {
	filled := fillDepressions(h.Values, h.N)
	dir := d8Direction(filled, h.N)
	acc := flowAccumulation(filled, dir, h.N)
	return &field.Grid{N: h.N, Values: acc}
}

// ExtractRivers extracts rivers from a previously computed accumulation
// grid at an explicit absolute threshold.
func ExtractRivers(acc *field.Grid, threshold float32) []River {
	return extractRivers(acc.Values, acc.N, threshold, DefaultWidthConstant)
}
