package detail

import (
	"github.com/duskfield/heightmap/field"

	"github.com/chewxy/math32"
)

// DefaultTargetLow is the minimum acceptable buildable fraction below
// which the verifier starts smoothing.
const DefaultTargetLow = 0.55

// NearBuildableHigh bounds the "near-buildable" band (5% < S <= 8%) that
// the verifier is permitted to touch.
const NearBuildableHigh = 0.08

// MaxSmoothPasses caps the verifier's corrective smoothing loop.
const MaxSmoothPasses = 3

// smoothSigma is the Gaussian smoothing radius in cells.
const smoothSigma = 2.5

// Classification labels a cell by its slope band.
type Classification int

const (
	Buildable Classification = iota
	NearBuildable
	Unbuildable
)

// VerifyResult is the buildability statistics the verifier reports.
type VerifyResult struct {
	H                 *field.Grid
	BuildableFraction float32
	MeanSlope         float32
	P50Slope          float32
	P90Slope          float32
	P99Slope          float32
	Classification    []Classification
	PassesUsed        int
	TargetMissed      bool
}

// classify buckets a slope field into buildability bands.
func classify(s *field.Grid) []Classification {
	out := make([]Classification, len(s.Values))
	for i, v := range s.Values {
		switch {
		case v <= field.BuildableGrade:
			out[i] = Buildable
		case v <= NearBuildableHigh:
			out[i] = NearBuildable
		default:
			out[i] = Unbuildable
		}
	}
	return out
}

// Verify implements the ConstraintVerifier: it measures buildability on h3,
// and if below targetLow, locally smooths near-buildable cells for up to
// MaxSmoothPasses rounds before giving up and reporting TargetMissed. The
// smoothing never touches cells outside the near-buildable band, so it can
// never turn already-rugged terrain flat.
func Verify(h3 *field.Grid, cellMeters, targetLow float32) *VerifyResult {
	if targetLow <= 0 {
		targetLow = DefaultTargetLow
	}

	h := h3.Clone()
	var s *field.Grid
	var beta float32
	passes := 0

	for {
		s = field.SlopeField(h, cellMeters)
		beta = field.BuildableFraction(h, cellMeters)

		if beta >= targetLow || passes >= MaxSmoothPasses {
			break
		}

		smoothNearBuildable(h, s)
		passes++
	}

	return &VerifyResult{
		H:                 h,
		BuildableFraction: beta,
		MeanSlope:         s.Mean(),
		P50Slope:          field.Percentile(s, 50),
		P90Slope:          field.Percentile(s, 90),
		P99Slope:          field.Percentile(s, 99),
		Classification:    classify(s),
		PassesUsed:        passes,
		TargetMissed:      beta < targetLow,
	}
}

// smoothNearBuildable applies a small-radius Gaussian blur in place to
// cells whose slope falls in the near-buildable band, reading from a frozen
// snapshot so every smoothed cell in this pass sees the same pre-pass
// neighborhood.
func smoothNearBuildable(h *field.Grid, s *field.Grid) {
	n := h.N
	src := h.Clone()
	radius := int(smoothSigma*3 + 0.5)
	kernel, weightSum := gaussianKernel(radius, smoothSigma)

	field.ForEachRow(n, 0, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < n; x++ {
				if s.At(x, y) <= field.BuildableGrade || s.At(x, y) > NearBuildableHigh {
					continue
				}

				var acc float32
				for ky := -radius; ky <= radius; ky++ {
					for kx := -radius; kx <= radius; kx++ {
						w := kernel[(ky+radius)*(2*radius+1)+(kx+radius)]
						acc += w * src.AtClamped(x+kx, y+ky)
					}
				}
				h.Set(x, y, acc/weightSum)
			}
		}
	})
}

// gaussianKernel builds a flattened (2r+1)x(2r+1) separable-equivalent
// Gaussian kernel and its weight sum.
func gaussianKernel(radius int, sigma float32) ([]float32, float32) {
	size := 2*radius + 1
	kernel := make([]float32, size*size)
	var sum float32

	twoSigmaSq := 2 * sigma * sigma
	for ky := -radius; ky <= radius; ky++ {
		for kx := -radius; kx <= radius; kx++ {
			d2 := float32(kx*kx + ky*ky)
			w := math32.Exp(-d2 / twoSigmaSq)
			kernel[(ky+radius)*size+(kx+radius)] = w
			sum += w
		}
	}
	return kernel, sum
}
