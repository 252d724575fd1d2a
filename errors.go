package heightmap

import "github.com/duskfield/heightmap/perror"

// Re-exported so callers of this package never need to import perror
// directly. BuildabilityTargetMissed is intentionally NOT among these:
// it is a warning recorded in Stats.Status, never a returned error.
const (
	InvalidParameter   = perror.InvalidParameter
	NumericInstability = perror.NumericInstability
	OutOfMemory        = perror.OutOfMemory
)

// Error is the typed error every stage (and this driver) returns.
type Error = perror.Error
