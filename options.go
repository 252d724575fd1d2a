// Package heightmap is the pipeline driver: it wires the zone, synthesis,
// ridge, erosion, hydrology, and detail/verification stages into a single
// generate(params) -> (H, Stats) operation. The core holds no persisted
// state; every call is a pure function of its parameters and the supplied
// seed.
package heightmap

import (
	"github.com/duskfield/heightmap/detail"
	"github.com/duskfield/heightmap/erosion"
	"github.com/duskfield/heightmap/synth"
	"github.com/duskfield/heightmap/zone"
)

// Options is the full set of pipeline parameters.
type Options struct {
	Resolution int
	Seed       int64
	CellMeters float32

	TargetBuildable float32
	TargetCoverage  float32

	BaseAmplitude        float32
	MinAmplitudeFraction float32
	Octaves              int

	ApplyRidges   bool
	RidgeStrength float32

	ApplyErosion     bool
	ErosionParticles int
	ErosionRate      float32
	DepositionRate   float32
	EvaporationRate  float32
	SedimentCapacity float32

	ApplyDetail       bool
	ApplyVerification bool

	Parallel    bool
	ThreadCount int

	// Progress is forwarded to the erosion stage's one-way notification
	// sink; nil disables progress reporting.
	Progress func(stage int, fraction float32)
}

// DefaultOptions returns the default pipeline parameters.
func DefaultOptions() Options {
	erosionDefaults := erosion.DefaultOptions()
	synthDefaults := synth.DefaultOptions()

	return Options{
		Resolution: 4096,
		Seed:       1,
		CellMeters: 3.5,

		TargetBuildable: 0.60,
		TargetCoverage:  zone.DefaultCoverage,

		BaseAmplitude:        synthDefaults.BaseAmplitude,
		MinAmplitudeFraction: synthDefaults.MinAmplitudeFraction,
		Octaves:              synthDefaults.Octaves,

		ApplyRidges:   false,
		RidgeStrength: synth.DefaultRidgeStrength,

		ApplyErosion:     true,
		ErosionParticles: erosionDefaults.Particles,
		ErosionRate:      erosionDefaults.ErosionRate,
		DepositionRate:   erosionDefaults.DepositionRate,
		EvaporationRate:  erosionDefaults.EvaporationRate,
		SedimentCapacity: erosionDefaults.SedimentCapacity,

		ApplyDetail:       false,
		ApplyVerification: true,

		Parallel: true,
	}
}

// detailOptions returns a detail.Options derived from the pipeline params.
func (o Options) detailOptions() detail.Options {
	return detail.DefaultOptions(o.CellMeters)
}
