package synth

import (
	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/noise"
	"github.com/duskfield/heightmap/perror"
	"github.com/duskfield/heightmap/rng"
)

const (
	// DefaultRidgeStrength is the default ridge injection strength.
	DefaultRidgeStrength = 0.15
	// RidgeBlendThreshold is the P value below which ridge contribution
	// blends in. It is a named constant rather than a derived value.
	RidgeBlendThreshold = 0.4
	// DefaultRidgeFrequency controls the ridge wavelength; picked to be a
	// few times finer than the base synthesis frequency so ridgelines read
	// as a distinct geological feature rather than a rescaled copy of H0.
	DefaultRidgeFrequency = 1.0 / 48.0
	ridgeOctaves          = 4
)

// EnhanceRidges injects sharp ridgelines into scenic zones
// (P < RidgeBlendThreshold) only, leaving buildable zones
// (P >= RidgeBlendThreshold) bit-for-bit unchanged.
func EnhanceRidges(h1in, p *field.Grid, seed int64, strength float32) (*field.Grid, error) {
	if strength < 0 {
		return nil, perror.New(perror.InvalidParameter, "ridge_strength must be >= 0")
	}
	if h1in.N != p.N {
		return nil, perror.New(perror.InvalidParameter, "H and P must share a resolution")
	}

	n := h1in.N
	gen := noise.New(rng.Derive(seed, rng.StageRidge), ridgeOctaves, persistence, lacunarity, float64(DefaultRidgeFrequency))

	h1 := field.NewGrid(n)
	field.ForEachRow(n, 0, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < n; x++ {
				pv := p.At(x, y)
				base := h1in.At(x, y)

				// smoothstep(0.4, 0.0, P): w=0 when P>=0.4, w=1 when P=0.
				w := field.Smoothstep(RidgeBlendThreshold, 0, pv)
				if w == 0 {
					h1.Set(x, y, base)
					continue
				}

				r := gen.Ridged(float32(x), float32(y))
				v := base + strength*w*(r-0.5)
				h1.Set(x, y, field.Clamp(v, 0, 1))
			}
		}
	})

	h1.RepairNonFinite()
	return h1, nil
}
