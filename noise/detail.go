package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// DetailGenerator produces the high-frequency micro-relief noise used by
// the conditional detail stage. It is deliberately built on a different
// noise family (OpenSimplex rather than go-perlin) than the
// zone/synthesis/ridge stages, so its high-frequency content never
// phase-locks with the base terrain's gradient noise.
type DetailGenerator struct {
	noise      opensimplex.Noise
	frequency  float64
	octaves    int
	lacunarity float64
	gain       float64
}

// NewDetail builds a 2-octave (by default) OpenSimplex FBM generator at
// the given base frequency.
func NewDetail(seed int64, octaves int, lacunarity, gain, frequency float64) *DetailGenerator {
	return &DetailGenerator{
		noise:      opensimplex.New(seed),
		frequency:  frequency,
		octaves:    octaves,
		lacunarity: lacunarity,
		gain:       gain,
	}
}

// FBM samples octave-summed OpenSimplex noise at (x,y), normalized to
// approximately [-1,1].
func (d *DetailGenerator) FBM(x, y float32) float32 {
	freq := d.frequency
	amp := 1.0
	var sum, norm float64
	for o := 0; o < d.octaves; o++ {
		sum += d.noise.Eval2(float64(x)*freq, float64(y)*freq) * amp
		norm += amp
		amp *= d.gain
		freq *= d.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return float32(sum / norm)
}
