// Package synth implements the amplitude-modulated base elevation
// synthesizer and its scenic-zone ridge injection stage.
package synth

import (
	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/noise"
	"github.com/duskfield/heightmap/perror"
	"github.com/duskfield/heightmap/rng"
)

const (
	DefaultBaseAmplitude        = 0.18
	DefaultMinAmplitudeFraction = 0.30
	DefaultOctaves              = 6
	persistence                 = 0.5
	lacunarity                  = 2.0
	// DefaultBaseFrequency is chosen so the base terrain's dominant
	// wavelength (1/frequency pixels) sits well inside the zone field's
	// much lower frequency envelope, rather than deriving it from
	// resolution.
	DefaultBaseFrequency = 1.0 / 96.0
)

// Options configures WeightedTerrainSynth.
type Options struct {
	BaseAmplitude        float32
	MinAmplitudeFraction float32
	Octaves              int
	BaseFrequency        float32
}

// DefaultOptions returns the default synthesis parameters.
func DefaultOptions() Options {
	return Options{
		BaseAmplitude:        DefaultBaseAmplitude,
		MinAmplitudeFraction: DefaultMinAmplitudeFraction,
		Octaves:              DefaultOctaves,
		BaseFrequency:        DefaultBaseFrequency,
	}
}

// Generate produces H0: the same K octaves at the same frequencies
// everywhere, with only the per-cell amplitude envelope varying with P.
func Generate(p *field.Grid, seed int64, opts Options) (*field.Grid, error) {
	if opts.Octaves < 1 {
		return nil, perror.New(perror.InvalidParameter, "octaves must be >= 1")
	}
	if opts.MinAmplitudeFraction <= 0 || opts.MinAmplitudeFraction >= 1 {
		return nil, perror.New(perror.InvalidParameter, "min_amplitude_fraction must be in (0,1)")
	}
	if opts.BaseAmplitude <= 0 {
		return nil, perror.New(perror.InvalidParameter, "base_amplitude must be positive")
	}

	n := p.N
	gen := noise.New(rng.Derive(seed, rng.StageSynth), opts.Octaves, persistence, lacunarity, float64(opts.BaseFrequency))

	h := field.NewGrid(n)
	m := opts.MinAmplitudeFraction
	a := opts.BaseAmplitude

	field.ForEachRow(n, 0, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			for x := 0; x < n; x++ {
				noiseVal := gen.FBM(float32(x), float32(y))
				amplitude := a * (m + (1-m)*(1-p.At(x, y)))
				v := 0.5 + amplitude*noiseVal
				h.Set(x, y, field.Clamp(v, 0, 1))
			}
		}
	})

	h.RepairNonFinite()
	return h, nil
}
