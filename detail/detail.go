// Package detail implements ConditionalDetail: slope-gated
// high-frequency micro-relief that preserves buildable zones exactly.
package detail

import (
	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/noise"
	"github.com/duskfield/heightmap/perror"
	"github.com/duskfield/heightmap/rng"
)

const (
	// DefaultAmplitude is the micro-relief amplitude added on top of the
	// eroded surface, expressed as a fraction of the full [0,1] H range.
	DefaultAmplitude = 0.02
	// DefaultWavelengthMeters is the target wavelength of the added detail.
	DefaultWavelengthMeters = 75.0
	detailOctaves           = 2
)

// Options configures Apply.
type Options struct {
	Amplitude        float32
	WavelengthMeters float32
	CellMeters       float32
}

// DefaultOptions returns the default detail parameters for the given physical cell size.
func DefaultOptions(cellMeters float32) Options {
	return Options{
		Amplitude:        DefaultAmplitude,
		WavelengthMeters: DefaultWavelengthMeters,
		CellMeters:       cellMeters,
	}
}

// Apply adds slope-gated micro-relief to h2, returning H3.
// Cells with slope S <= BuildableGrade are left bit-for-bit unchanged; D is
// smoothstep-tapered in as S rises past the threshold so no slope
// discontinuity is introduced at the boundary.
func Apply(h2 *field.Grid, seed int64, opts Options) (*field.Grid, error) {
	if opts.Amplitude < 0 {
		return nil, perror.New(perror.InvalidParameter, "detail amplitude must be >= 0")
	}
	if opts.WavelengthMeters <= 0 || opts.CellMeters <= 0 {
		return nil, perror.New(perror.InvalidParameter, "wavelength_meters and cell_meters must be positive")
	}

	n := h2.N
	s := field.SlopeField(h2, opts.CellMeters)

	wavelengthCells := opts.WavelengthMeters / opts.CellMeters
	frequency := 1.0 / float64(wavelengthCells)
	gen := noise.NewDetail(rng.Derive(seed, rng.StageDetail), detailOctaves, 2.0, 0.5, frequency)

	h3 := field.NewGrid(n)
	field.ForEachRow(n, 0, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < n; x++ {
				base := h2.At(x, y)
				slope := s.At(x, y)

				if slope <= field.BuildableGrade {
					h3.Set(x, y, base)
					continue
				}

				w := field.Smoothstep(field.BuildableGrade, field.BuildableGrade*1.6, slope)
				d := gen.FBM(float32(x), float32(y)) * opts.Amplitude
				v := base + d*w
				h3.Set(x, y, field.Clamp(v, 0, 1))
			}
		}
	})

	h3.RepairNonFinite()
	return h3, nil
}
