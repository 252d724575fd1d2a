package heightmap

import (
	"time"

	"github.com/duskfield/heightmap/detail"
	"github.com/duskfield/heightmap/erosion"
	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/hydrology"
	"github.com/duskfield/heightmap/perror"
	"github.com/duskfield/heightmap/synth"
	"github.com/duskfield/heightmap/zone"
)

// HydrologyResult is exposed on Result so callers can inspect flow,
// rivers, and dam sites without a second pass over H; hydrology analysis
// is a side-output stage and never mutates H.
type HydrologyResult = hydrology.Result

// Result is everything Generate returns: the final elevation field, its
// hydrology side-output, and the statistics record.
type Result struct {
	H         *field.Grid
	Hydrology *HydrologyResult
	Stats     Stats
}

func (o Options) validate() error {
	if o.Resolution < 64 {
		return perror.New(perror.InvalidParameter, "resolution must be >= 64")
	}
	if o.Resolution&(o.Resolution-1) != 0 {
		return perror.New(perror.InvalidParameter, "resolution must be a power of two")
	}
	if o.CellMeters <= 0 {
		return perror.New(perror.InvalidParameter, "cell_meters must be positive")
	}
	if o.TargetCoverage <= 0 || o.TargetCoverage >= 1 {
		return perror.New(perror.InvalidParameter, "target_coverage must be in (0,1)")
	}
	return nil
}

// Generate runs the full pipeline: zone generation, weighted terrain
// synthesis, an optional ridge enhancement, an optional hydraulic erosion
// pass, hydrology analysis, and an optional detail+verification pass.
// Normalize is called at exactly two points: end of the erosion stage and
// end of the pipeline. It must never be called anywhere else, or every
// absolute slope/buildability threshold downstream would drift.
func Generate(opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := opts.Resolution
	stats := Stats{}
	repaired := 0

	mark := func(stage string, start time.Time) {
		stats.StageTimings = append(stats.StageTimings, StageTiming{
			Stage:      stage,
			DurationMS: float64(time.Since(start).Microseconds()) / 1000.0,
		})
	}

	t := time.Now()
	p, err := zone.Generate(n, opts.Seed, opts.TargetCoverage, zone.DefaultWavelength(n))
	if err != nil {
		return nil, err
	}
	mark("zone", t)

	t = time.Now()
	synthOpts := synth.Options{
		BaseAmplitude:        opts.BaseAmplitude,
		MinAmplitudeFraction: opts.MinAmplitudeFraction,
		Octaves:              opts.Octaves,
		BaseFrequency:        synth.DefaultBaseFrequency,
	}
	h, err := synth.Generate(p, opts.Seed, synthOpts)
	if err != nil {
		return nil, err
	}
	mark("synth", t)

	if opts.ApplyRidges {
		t = time.Now()
		h, err = synth.EnhanceRidges(h, p, opts.Seed, opts.RidgeStrength)
		if err != nil {
			return nil, err
		}
		mark("ridge", t)
	}

	stats.InitialBuildableFraction = field.BuildableFraction(h, opts.CellMeters)

	if opts.ApplyErosion {
		t = time.Now()
		erosionOpts := erosion.Options{
			Particles:        opts.ErosionParticles,
			ErosionRate:      opts.ErosionRate,
			DepositionRate:   opts.DepositionRate,
			EvaporationRate:  opts.EvaporationRate,
			SedimentCapacity: opts.SedimentCapacity,
			Inertia:          erosion.DefaultInertia,
			Gravity:          erosion.DefaultGravity,
			MaxLifetime:      erosion.DefaultMaxLifetime,
			DepositionFactor: erosion.DepositionFactor,
			ErosionFactor:    erosion.ErosionFactor,
			Parallel:         opts.Parallel,
			ThreadCount:      opts.ThreadCount,
			Progress:         opts.Progress,
		}
		h, err = erosion.Simulate(h, p, opts.Seed, erosionOpts)
		if err != nil {
			return nil, err
		}
		mark("erosion", t)
	}

	// Named normalization point 1 of 2: end of the erosion stage, whether
	// or not erosion actually ran this call.
	h.Normalize()
	repaired += h.RepairNonFinite()

	t = time.Now()
	hydro, err := hydrology.Analyze(h, hydrology.DefaultOptions(opts.CellMeters))
	if err != nil {
		return nil, err
	}
	mark("hydrology", t)

	if opts.ApplyDetail {
		t = time.Now()
		preSlope := field.SlopeField(h, opts.CellMeters)
		var eligible int
		for _, v := range preSlope.Values {
			if v > field.BuildableGrade {
				eligible++
			}
		}
		stats.DetailAppliedFraction = float32(eligible) / float32(len(preSlope.Values))

		h, err = detail.Apply(h, opts.Seed, detail.DefaultOptions(opts.CellMeters))
		if err != nil {
			return nil, err
		}
		mark("detail", t)
	}

	status := StatusOK
	finalBeta := field.BuildableFraction(h, opts.CellMeters)

	if opts.ApplyVerification {
		t = time.Now()
		vr := detail.Verify(h, opts.CellMeters, opts.TargetBuildable)
		h = vr.H
		finalBeta = vr.BuildableFraction
		stats.MeanSlope = vr.MeanSlope
		stats.P50Slope = vr.P50Slope
		stats.P90Slope = vr.P90Slope
		stats.P99Slope = vr.P99Slope
		stats.VerificationIterations = vr.PassesUsed
		stats.Classification = vr.Classification
		if vr.TargetMissed {
			status = StatusBuildabilityMissed
		}
		mark("verify", t)
	} else {
		s := field.SlopeField(h, opts.CellMeters)
		stats.MeanSlope = s.Mean()
		stats.P50Slope = field.Percentile(s, 50)
		stats.P90Slope = field.Percentile(s, 90)
		stats.P99Slope = field.Percentile(s, 99)
	}

	// Named normalization point 2 of 2: end of the pipeline. No stage
	// between here and the erosion-stage Normalize above is permitted to
	// renormalize; detail and verification only ever clamp to [0,1].
	h.Normalize()
	repaired += h.RepairNonFinite()

	if repaired > 0 {
		status = StatusClamped
	}

	stats.FinalBuildableFraction = finalBeta
	stats.RepairedCellCount = repaired

	stats.Status = status

	return &Result{H: h, Hydrology: hydro, Stats: stats}, nil
}
