// Package diagnostics writes per-stage timing records to CSV.
package diagnostics

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// StageTiming is one row of the diagnostics CSV.
type StageTiming struct {
	Stage      string  `csv:"stage"`
	DurationMS float64 `csv:"duration_ms"`
}

// Recorder accumulates per-stage durations during one pipeline run.
type Recorder struct {
	rows    []StageTiming
	started map[string]time.Time
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{started: make(map[string]time.Time)}
}

// Start marks the beginning of a named stage. now is supplied by the
// caller rather than read from the clock here, keeping this package free
// of hidden wall-clock reads.
func (r *Recorder) Start(stage string, now time.Time) {
	r.started[stage] = now
}

// Stop records the elapsed duration for stage since its matching Start.
func (r *Recorder) Stop(stage string, now time.Time) {
	start, ok := r.started[stage]
	if !ok {
		return
	}
	r.rows = append(r.rows, StageTiming{
		Stage:      stage,
		DurationMS: float64(now.Sub(start).Microseconds()) / 1000.0,
	})
	delete(r.started, stage)
}

// Rows returns the recorded timings in the order stages were stopped.
func (r *Recorder) Rows() []StageTiming {
	return r.rows
}

// WriteCSV writes the recorded stage timings to w.
func (r *Recorder) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(r.rows, w); err != nil {
		return fmt.Errorf("writing diagnostics csv: %w", err)
	}
	return nil
}
