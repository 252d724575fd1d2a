package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/duskfield/heightmap"
	"github.com/duskfield/heightmap/config"
	"github.com/duskfield/heightmap/diagnostics"

	jsoniter "github.com/json-iterator/go"
)

func main() {
	var (
		configPath string
		seed       int64
		resolution int
		diagCSV    string
	)

	flag.StringVar(&configPath, "config", "", "path to a YAML config overlaying the embedded defaults")
	flag.Int64Var(&seed, "seed", 0, "override seed (0 keeps the config value)")
	flag.IntVar(&resolution, "resolution", 0, "override resolution (0 keeps the config value)")
	flag.StringVar(&diagCSV, "diagnostics", "", "optional path to write per-stage timing CSV")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	opts := heightmap.Options{
		Resolution:           cfg.Resolution,
		Seed:                 cfg.Seed,
		CellMeters:           cfg.CellMeters,
		TargetBuildable:      cfg.TargetBuildable,
		TargetCoverage:       cfg.TargetCoverage,
		BaseAmplitude:        cfg.BaseAmplitude,
		MinAmplitudeFraction: cfg.MinAmplitudeFraction,
		Octaves:              cfg.Octaves,
		ApplyRidges:          cfg.ApplyRidges,
		RidgeStrength:        cfg.RidgeStrength,
		ApplyErosion:         cfg.ApplyErosion,
		ErosionParticles:     cfg.ErosionParticles,
		ErosionRate:          cfg.ErosionRate,
		DepositionRate:       cfg.DepositionRate,
		EvaporationRate:      cfg.EvaporationRate,
		SedimentCapacity:     cfg.SedimentCapacity,
		ApplyDetail:          cfg.ApplyDetail,
		ApplyVerification:    cfg.ApplyVerification,
		Parallel:             cfg.Parallel,
		ThreadCount:          cfg.ThreadCount,
	}

	if seed != 0 {
		opts.Seed = seed
	}
	if resolution != 0 {
		opts.Resolution = resolution
	}

	opts.Progress = func(stage int, fraction float32) {
		log.Printf("stage %d: %.0f%%\n", stage, fraction*100)
	}

	result, err := heightmap.Generate(opts)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result.Stats, "", "  ")
	if err != nil {
		log.Fatalf("encoding stats: %v", err)
	}
	os.Stdout.Write(encoded)
	os.Stdout.Write([]byte("\n"))

	if diagCSV != "" {
		rec := diagnostics.NewRecorder()
		writeDiagnostics(rec, result.Stats.StageTimings)

		f, err := os.Create(diagCSV)
		if err != nil {
			log.Fatalf("creating diagnostics file: %v", err)
		}
		defer f.Close()

		if err := rec.WriteCSV(f); err != nil {
			log.Fatalf("writing diagnostics: %v", err)
		}
	}
}

// writeDiagnostics converts the pipeline's stage timing records into the
// diagnostics package's own row type; the two packages don't share a type
// so the CLI, the only place both are imported, does the conversion.
func writeDiagnostics(rec *diagnostics.Recorder, timings []heightmap.StageTiming) {
	epoch := time.Unix(0, 0)
	for _, st := range timings {
		rec.Start(st.Stage, epoch)
		rec.Stop(st.Stage, epoch.Add(time.Duration(st.DurationMS*float64(time.Millisecond))))
	}
}
