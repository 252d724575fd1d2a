package diagnostics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRecorder_StartStopRecordsDuration(t *testing.T) {
	r := NewRecorder()
	t0 := time.Unix(0, 0)
	r.Start("zone", t0)
	r.Stop("zone", t0.Add(15*time.Millisecond))

	rows := r.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Stage != "zone" {
		t.Errorf("stage = %q, want zone", rows[0].Stage)
	}
	if rows[0].DurationMS != 15 {
		t.Errorf("duration = %v, want 15", rows[0].DurationMS)
	}
}

func TestRecorder_StopWithoutStartIsNoOp(t *testing.T) {
	r := NewRecorder()
	r.Stop("ghost", time.Unix(0, 0))
	if len(r.Rows()) != 0 {
		t.Fatal("expected no rows for unmatched Stop")
	}
}

func TestRecorder_WriteCSVIncludesHeader(t *testing.T) {
	r := NewRecorder()
	t0 := time.Unix(0, 0)
	r.Start("erosion", t0)
	r.Stop("erosion", t0.Add(2*time.Second))

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "stage") {
		t.Fatalf("expected header row, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "erosion") {
		t.Fatalf("expected erosion row, got: %s", buf.String())
	}
}
