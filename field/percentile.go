package field

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PercentileSlice returns the p-th percentile (0..100) of values. It
// copies and sorts the input (gonum/stat.Quantile requires sorted, strictly
// ascending-ready data) so the caller's slice is left untouched.
func PercentileSlice(values []float32, p float32) float32 {
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)
	return float32(stat.Quantile(float64(p)/100, stat.Empirical, sorted, nil))
}
