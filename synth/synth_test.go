package synth

import (
	"testing"

	"github.com/duskfield/heightmap/field"
)

func flatP(n int, v float32) *field.Grid {
	g := field.NewGrid(n)
	for i := range g.Values {
		g.Values[i] = v
	}
	return g
}

func TestGenerate_InBounds(t *testing.T) {
	p := flatP(128, 0.7)
	h, err := Generate(p, 1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	min, max := h.MinMax()
	if min < 0 || max > 1 {
		t.Fatalf("H0 out of [0,1]: min=%v max=%v", min, max)
	}
}

func TestGenerate_LowPotentialHasMoreRelief(t *testing.T) {
	const n = 128
	buildable := flatP(n, 1.0)
	scenic := flatP(n, 0.0)

	hb, _ := Generate(buildable, 99, DefaultOptions())
	hs, _ := Generate(scenic, 99, DefaultOptions())

	varOf := func(g *field.Grid) float64 {
		mean := float64(g.Mean())
		var sum float64
		for _, v := range g.Values {
			d := float64(v) - mean
			sum += d * d
		}
		return sum / float64(len(g.Values))
	}

	if varOf(hb) >= varOf(hs) {
		t.Errorf("expected buildable-zone terrain to have less variance than scenic: %v >= %v", varOf(hb), varOf(hs))
	}
}

func TestGenerate_RejectsInvalidOptions(t *testing.T) {
	p := flatP(64, 0.5)
	bad := DefaultOptions()
	bad.Octaves = 0
	if _, err := Generate(p, 1, bad); err == nil {
		t.Fatal("expected error for Octaves=0")
	}
}
