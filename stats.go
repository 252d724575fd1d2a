package heightmap

import "github.com/duskfield/heightmap/detail"

// Status summarizes how a generate call concluded.
type Status int

const (
	StatusOK Status = iota
	StatusBuildabilityMissed
	StatusClamped
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBuildabilityMissed:
		return "buildability_missed"
	case StatusClamped:
		return "clamped"
	default:
		return "unknown"
	}
}

// StageTiming records how long one named stage took, in milliseconds.
type StageTiming struct {
	Stage      string
	DurationMS float64
}

// Stats is the statistics record returned alongside H.
type Stats struct {
	StageTimings []StageTiming

	InitialBuildableFraction float32
	FinalBuildableFraction   float32

	MeanSlope float32
	P50Slope  float32
	P90Slope  float32
	P99Slope  float32

	DetailAppliedFraction  float32
	VerificationIterations int
	RepairedCellCount      int
	Status                 Status
	Classification         []detail.Classification
}
