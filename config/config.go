// Package config loads pipeline Options from YAML, layered over embedded
// defaults. It deliberately has no global singleton: the generator core
// must stay a pure function of its parameters, so Load simply returns a
// value rather than mutating shared state.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Options mirrors the pipeline's full parameter table, plus cell_meters,
// the physical cell size used by slope, erosion, and hydrology.
type Options struct {
	Resolution int     `yaml:"resolution"`
	Seed       int64   `yaml:"seed"`
	CellMeters float32 `yaml:"cell_meters"`

	TargetBuildable float32 `yaml:"target_buildable"`
	TargetCoverage  float32 `yaml:"target_coverage"`

	BaseAmplitude        float32 `yaml:"base_amplitude"`
	MinAmplitudeFraction float32 `yaml:"min_amplitude_fraction"`
	Octaves              int     `yaml:"octaves"`

	ApplyRidges   bool    `yaml:"apply_ridges"`
	RidgeStrength float32 `yaml:"ridge_strength"`

	ApplyErosion     bool    `yaml:"apply_erosion"`
	ErosionParticles int     `yaml:"erosion_particles"`
	ErosionRate      float32 `yaml:"erosion_rate"`
	DepositionRate   float32 `yaml:"deposition_rate"`
	EvaporationRate  float32 `yaml:"evaporation_rate"`
	SedimentCapacity float32 `yaml:"sediment_capacity"`

	ApplyDetail       bool `yaml:"apply_detail"`
	ApplyVerification bool `yaml:"apply_verification"`

	Parallel    bool `yaml:"parallel"`
	ThreadCount int  `yaml:"thread_count"`
}

// Load reads embedded defaults and, if path is non-empty, overlays a user
// YAML file on top of them (only the fields present in the file change).
func Load(path string) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(defaultsYAML, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return opts, nil
}

// Defaults returns the embedded defaults with no overlay.
func Defaults() Options {
	opts, err := Load("")
	if err != nil {
		// The embedded file is part of the binary; a parse failure here is
		// a build-time defect, not a runtime condition callers can act on.
		panic(fmt.Sprintf("config: embedded defaults.yaml is invalid: %v", err))
	}
	return opts
}
