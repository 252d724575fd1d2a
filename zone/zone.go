// Package zone generates a continuous buildability-potential field P that
// tells later stages where the terrain should be flat. P is read-only
// after this stage.
package zone

import (
	"sort"

	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/noise"
	"github.com/duskfield/heightmap/perror"
	"github.com/duskfield/heightmap/rng"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultCoverage is τ, the target fraction of area that leans
	// buildable.
	DefaultCoverage = 0.77
	// octaves is the fixed octave count for the zone field.
	octaves     = 2
	persistence = 0.5
	lacunarity  = 2.0
)

// DefaultWavelength returns λ_z = N/0.6 pixels, the characteristic
// wavelength of the zone field.
func DefaultWavelength(n int) float32 {
	return float32(n) / 0.6
}

// Generate produces P of shape N×N. tau is the target coverage (fraction
// of area with P>0.5); wavelength is λ_z in pixels.
func Generate(n int, seed int64, tau float32, wavelength float32) (*field.Grid, error) {
	if n < 64 {
		return nil, perror.New(perror.InvalidParameter, "resolution must be >= 64")
	}
	if tau <= 0 || tau >= 1 {
		return nil, perror.New(perror.InvalidParameter, "target_coverage must be in (0,1)")
	}
	if wavelength <= 0 {
		return nil, perror.New(perror.InvalidParameter, "wavelength must be positive")
	}

	frequency := 1.0 / float64(wavelength)
	gen := noise.New(rng.Derive(seed, rng.StageZone), octaves, persistence, lacunarity, frequency)

	raw := field.NewGrid(n)
	field.ForEachRow(n, 0, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < n; x++ {
				raw.Set(x, y, gen.FBM01(float32(x), float32(y)))
			}
		}
	})

	remap(raw, tau)
	raw.RepairNonFinite()
	return raw, nil
}

// remap applies the monotone empirical-CDF remap in place: the (1-tau)
// quantile of raw's values is sent to 0.5, everything below it compressed
// into [0,0.5) and everything above into (0.5,1], preserving rank order.
func remap(g *field.Grid, tau float32) {
	sample := subsample(g.Values, 65536)
	threshold := float32(stat.Quantile(float64(1-tau), stat.Empirical, sample, nil))

	min, max := g.MinMax()
	below := threshold - min
	above := max - threshold
	if below < 1e-6 {
		below = 1e-6
	}
	if above < 1e-6 {
		above = 1e-6
	}

	for i, v := range g.Values {
		if v <= threshold {
			g.Values[i] = 0.5 * (v - min) / below
		} else {
			g.Values[i] = 0.5 + 0.5*(v-threshold)/above
		}
	}
}

// subsample returns a sorted copy of up to maxSamples evenly-strided
// values from values, so the quantile lookup doesn't require sorting the
// full field at full resolution.
func subsample(values []float32, maxSamples int) []float64 {
	stride := 1
	if len(values) > maxSamples {
		stride = (len(values) + maxSamples - 1) / maxSamples
	}
	out := make([]float64, 0, maxSamples+1)
	for i := 0; i < len(values); i += stride {
		out = append(out, float64(values[i]))
	}
	sort.Float64s(out)
	return out
}
