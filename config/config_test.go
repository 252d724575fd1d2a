package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults_MatchSpecTable(t *testing.T) {
	opts := Defaults()

	if opts.Resolution != 4096 {
		t.Errorf("resolution = %d, want 4096", opts.Resolution)
	}
	if opts.TargetBuildable != 0.60 {
		t.Errorf("target_buildable = %v, want 0.60", opts.TargetBuildable)
	}
	if opts.ApplyRidges {
		t.Error("apply_ridges should default to false")
	}
	if !opts.ApplyErosion {
		t.Error("apply_erosion should default to true")
	}
	if opts.ErosionParticles != 100000 {
		t.Errorf("erosion_particles = %d, want 100000", opts.ErosionParticles)
	}
}

func TestLoad_OverlayOnlyOverridesPresentFields(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(overlay, []byte("resolution: 1024\nseed: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(overlay)
	if err != nil {
		t.Fatal(err)
	}

	if opts.Resolution != 1024 {
		t.Errorf("resolution = %d, want overlay value 1024", opts.Resolution)
	}
	if opts.Seed != 42 {
		t.Errorf("seed = %d, want overlay value 42", opts.Seed)
	}
	// Untouched fields keep the embedded default.
	if opts.TargetBuildable != 0.60 {
		t.Errorf("target_buildable = %v, want untouched default 0.60", opts.TargetBuildable)
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
