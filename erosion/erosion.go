// Package erosion implements a particle-based hydraulic erosion simulator.
// It carves valleys and deposits sediment with zone-aware parameter
// modulation, using per-thread delta accumulators rather than atomic
// per-cell writes so large grids stay race-free without lock contention.
package erosion

import (
	"math/rand"
	"runtime"

	"github.com/duskfield/heightmap/field"
	"github.com/duskfield/heightmap/perror"
	"github.com/duskfield/heightmap/rng"

	"github.com/chewxy/math32"
)

const (
	DefaultParticles        = 100000
	DefaultErosionRate      = 0.2
	DefaultDepositionRate   = 0.08
	DefaultEvaporationRate  = 0.015
	DefaultSedimentCapacity = 3.0
	DefaultInertia          = 0.3
	DefaultGravity          = 4.0
	DefaultMaxLifetime      = 30

	// minSlopeFloor prevents zero sediment capacity on flats. It is
	// expressed directly in the [0,1] height domain: applying a literature
	// min-slope floor tuned for 0-255 heightmaps straight to a [0,1] field
	// would make every cell look like a cliff, so the floor here is three
	// orders of magnitude smaller than the typical 0-255-domain value
	// (~0.01). See TestCalibration_GentleSlopeStaysGentle.
	minSlopeFloor = 1e-5

	waterEpsilon = 1e-3
)

// DepositionFactor and ErosionFactor are the default zone-modulation
// functions: deposition is amplified and erosion damped in buildable
// (high-P) zones, and vice versa in scenic zones.
// They are ordinary functions rather than a fixed formula so an
// alternative monotone modulation can be substituted without touching the
// simulation loop.
func DepositionFactor(p float32) float32 { return 1 + p }
func ErosionFactor(p float32) float32    { return 2 - p }

// Options configures HydraulicErosion.
type Options struct {
	Particles        int
	ErosionRate      float32
	DepositionRate   float32
	EvaporationRate  float32
	SedimentCapacity float32
	Inertia          float32
	Gravity          float32
	MaxLifetime      int

	DepositionFactor func(p float32) float32
	ErosionFactor    func(p float32) float32

	Parallel    bool
	ThreadCount int

	// Progress is an optional one-way notification sink: stage index and
	// fraction complete. It must not block and is never used for
	// cancellation.
	Progress func(stage int, fraction float32)
}

// DefaultOptions returns the default erosion parameters.
func DefaultOptions() Options {
	return Options{
		Particles:        DefaultParticles,
		ErosionRate:      DefaultErosionRate,
		DepositionRate:   DefaultDepositionRate,
		EvaporationRate:  DefaultEvaporationRate,
		SedimentCapacity: DefaultSedimentCapacity,
		Inertia:          DefaultInertia,
		Gravity:          DefaultGravity,
		MaxLifetime:      DefaultMaxLifetime,
		DepositionFactor: DepositionFactor,
		ErosionFactor:    ErosionFactor,
		Parallel:         true,
	}
}

func (o Options) validate() error {
	if o.Particles < 0 {
		return perror.New(perror.InvalidParameter, "erosion_particles must be >= 0")
	}
	if o.ErosionRate < 0 || o.DepositionRate < 0 {
		return perror.New(perror.InvalidParameter, "erosion_rate/deposition_rate must be >= 0")
	}
	if o.EvaporationRate <= 0 || o.EvaporationRate >= 1 {
		return perror.New(perror.InvalidParameter, "evaporation_rate must be in (0,1)")
	}
	if o.SedimentCapacity <= 0 {
		return perror.New(perror.InvalidParameter, "sediment_capacity must be positive")
	}
	if o.MaxLifetime <= 0 {
		return perror.New(perror.InvalidParameter, "max_lifetime must be positive")
	}
	return nil
}

// Simulate runs the erosion pass and returns H2, un-normalized: the
// pipeline driver normalizes exactly once, immediately after this call.
// h1 and p are not mutated; the returned grid is a new allocation.
func Simulate(h1, p *field.Grid, seed int64, opts Options) (*field.Grid, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.DepositionFactor == nil {
		opts.DepositionFactor = DepositionFactor
	}
	if opts.ErosionFactor == nil {
		opts.ErosionFactor = ErosionFactor
	}

	h := h1.Clone()
	if opts.Particles == 0 {
		return h, nil
	}

	baseSeed := rng.Derive(seed, rng.StageErosion)

	if !opts.Parallel {
		// Serial mode: target and source are the same grid, so each
		// particle sees every earlier particle's deposits and erosion.
		r := rand.New(rand.NewSource(baseSeed))
		runBatch(h, h, p, r, opts, 0, opts.Particles, opts.Progress)
		return h, nil
	}

	threads := opts.ThreadCount
	if threads <= 0 {
		threads = defaultThreadCount()
	}
	if threads > opts.Particles {
		threads = opts.Particles
	}
	if threads <= 1 {
		r := rand.New(rand.NewSource(baseSeed))
		runBatch(h, h, p, r, opts, 0, opts.Particles, opts.Progress)
		return h, nil
	}

	return simulateParallel(h, h1, p, baseSeed, opts, threads)
}

func defaultThreadCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// runBatch advects `count` particles (numbered startIndex..startIndex+count)
// against the read source `source` and writes deposition/erosion deltas
// directly into `target`. When source == target this is the deterministic
// serial mode: each particle sees every earlier particle's changes.
// When source != target (a frozen snapshot read, a private zero-initialized
// accumulator written), this is one worker's share of the parallel mode.
func runBatch(target, source, p *field.Grid, r *rand.Rand, opts Options, startIndex, count int, progress func(int, float32)) {
	n := source.N
	maxCoord := float32(n - 1)

	for i := 0; i < count; i++ {
		x := r.Float32() * maxCoord
		y := r.Float32() * maxCoord
		simulateOne(target, source, p, x, y, opts)

		if progress != nil && count > 0 && i%256 == 0 {
			progress(4, float32(startIndex+i)/float32(startIndex+count))
		}
	}
}

func simulateOne(target, source, p *field.Grid, x, y float32, opts Options) {
	n := source.N
	maxCoord := float32(n - 1)
	part := spawn(x, y, source)

	depositFn := opts.DepositionFactor
	erodeFn := opts.ErosionFactor

	for step := 0; step < opts.MaxLifetime; step++ {
		gx, gy := gradientAt(source, part.pos.X, part.pos.Y)
		grad := field.Vec2f{X: gx, Y: gy}

		dir := part.vel.Mul(opts.Inertia).Sub(grad.Mul(1 - opts.Inertia)).Norm()
		if dir == (field.Vec2f{}) {
			// Flat: no preferred direction, nowhere useful to go.
			break
		}

		newPos := part.pos.Add(dir)
		if newPos.X < 0 || newPos.X > maxCoord || newPos.Y < 0 || newPos.Y > maxCoord {
			// Exiting the grid kills the particle; deposit whatever it
			// still carries at the last valid position so total elevation
			// mass is conserved.
			if part.sediment > 0 {
				deposit(target, part.pos.X, part.pos.Y, part.sediment)
			}
			return
		}

		newHeight := source.Sample(newPos.X, newPos.Y)
		deltaH := newHeight - part.lastH // negative: downhill

		speed := math32.Sqrt(field.Max(part.speed*part.speed+opts.Gravity*(-deltaH), 0))
		part.vel = dir.Mul(speed)
		part.speed = speed
		part.pos = newPos
		part.lastH = newHeight

		zone := p.Sample(newPos.X, newPos.Y)
		capacity := field.Max(-deltaH, minSlopeFloor) * speed * part.water * opts.SedimentCapacity

		uphill := deltaH > 0
		if part.sediment > capacity || uphill {
			var amount float32
			if uphill {
				amount = field.Clamp(field.Min(part.sediment-capacity, deltaH), 0, part.sediment)
			} else {
				amount = field.Clamp((part.sediment-capacity)*opts.DepositionRate, 0, part.sediment)
			}
			amount *= depositFn(zone)
			amount = field.Min(amount, part.sediment)
			if amount > 0 {
				deposit(target, newPos.X, newPos.Y, amount)
				part.sediment -= amount
			}
		} else {
			amount := field.Min((capacity-part.sediment)*opts.ErosionRate, -deltaH)
			amount = field.Max(amount, 0)
			amount *= erodeFn(zone)
			if amount > 0 {
				erode(target, newPos.X, newPos.Y, amount)
				part.sediment += amount
			}
		}

		part.water *= 1 - opts.EvaporationRate
		if part.water < waterEpsilon {
			break
		}
	}

	if part.sediment > 0 {
		deposit(target, part.pos.X, part.pos.Y, part.sediment)
	}
}

