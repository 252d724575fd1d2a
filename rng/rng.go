// Package rng derives per-stage pseudo-random sources from a single pipeline
// seed. Each stage owns its own *rand.Rand built from a distinct derived
// seed; none of them touch the global math/rand source, so stages run in
// any order or on any goroutine without one's random draws perturbing
// another's.
package rng

import "math/rand"

// Stage identifies which pipeline stage a derived seed belongs to, so the
// same base seed never produces the same stream twice.
type Stage uint32

const (
	StageZone Stage = iota
	StageSynth
	StageRidge
	StageErosion
	StageHydrology
	StageDetail
)

// Derive mixes the base seed with a stage tag through a full 64-bit
// avalanche so stages never alias, even for adjacent seed/stage pairs.
func Derive(seed int64, stage Stage) int64 {
	x := uint64(seed) ^ (uint64(stage) * 0x9E3779B97F4A7C15)
	// SplitMix64 finalizer: cheap, good avalanche, no external dependency
	// needed for a deterministic non-cryptographic per-stage seed.
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}

// New returns an explicit, non-global random source for the given stage.
// Two calls with the same (seed, stage) always produce the same stream.
func New(seed int64, stage Stage) *rand.Rand {
	return rand.New(rand.NewSource(Derive(seed, stage)))
}
