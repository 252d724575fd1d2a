// Package noise provides the two noise families used across the pipeline.
//
// go-perlin's Perlin type already sums n octaves internally (octave i is
// weighted by alpha^(-i), so alpha is the reciprocal of the per-octave
// persistence; beta is its per-octave lacunarity), so a single
// Perlin instance gives the same octave count at the same frequencies on
// every call. Different stages get independent Generator instances at
// different frequency bands rather than sharing one.
package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
)

// Generator produces fractal (FBM) gradient noise at a configured base
// frequency, octave count, persistence, and lacunarity.
type Generator struct {
	p         *perlin.Perlin
	frequency float64
}

// New builds a Generator at a given octave count, persistence, lacunarity,
// and base frequency. persistence is the per-octave amplitude decay (0.5
// halves each successive octave's contribution, the conventional FBM
// value); go-perlin's own alpha parameter is persistence's reciprocal
// (octave i's amplitude is alpha^(-i)), so it is inverted here before
// being passed through.
func New(seed int64, octaves int, persistence, lacunarity float64, frequency float64) *Generator {
	alpha := 1 / persistence
	return &Generator{
		p:         perlin.NewPerlin(alpha, lacunarity, int32(octaves), seed),
		frequency: frequency,
	}
}

// FBM samples the noise field at (x,y) in pixel space, returning a value
// in approximately [-1,1].
func (g *Generator) FBM(x, y float32) float32 {
	return float32(g.p.Noise2D(float64(x)*g.frequency, float64(y)*g.frequency))
}

// FBM01 is FBM remapped to [0,1].
func (g *Generator) FBM01(x, y float32) float32 {
	return g.FBM(x, y)*0.5 + 0.5
}

// Ridged returns ridged fractal noise R = 2·|0.5 − FBM01|, which sharpens
// FBM's smooth hills into ridgelines.
func (g *Generator) Ridged(x, y float32) float32 {
	return 2 * math32.Abs(0.5-g.FBM01(x, y))
}
