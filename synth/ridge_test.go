package synth

import (
	"testing"

	"github.com/duskfield/heightmap/field"
)

func TestEnhanceRidges_PreservesBuildableZones(t *testing.T) {
	const n = 64
	p := field.NewGrid(n)
	h := field.NewGrid(n)
	for i := range p.Values {
		// Alternate so both branches of the threshold are exercised.
		if i%2 == 0 {
			p.Values[i] = 0.8 // buildable: must be preserved exactly
		} else {
			p.Values[i] = 0.1 // scenic: may change
		}
		h.Values[i] = 0.5
	}

	out, err := EnhanceRidges(h, p, 5, DefaultRidgeStrength)
	if err != nil {
		t.Fatal(err)
	}

	for i := range p.Values {
		if p.Values[i] >= RidgeBlendThreshold && out.Values[i] != h.Values[i] {
			t.Fatalf("cell %d: P=%v >= threshold but H changed: %v != %v", i, p.Values[i], out.Values[i], h.Values[i])
		}
	}
}

func TestEnhanceRidges_RejectsNegativeStrength(t *testing.T) {
	p := field.NewGrid(32)
	h := field.NewGrid(32)
	if _, err := EnhanceRidges(h, p, 1, -1); err == nil {
		t.Fatal("expected error for negative strength")
	}
}
