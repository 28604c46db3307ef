// Package metrics holds the pluggable crash-pulse metric calculators.
// Each strategy consumes a processed CrashSignal and returns named numeric
// results; parameters are passed explicitly per call so a strategy instance
// carries no mutable state and can be shared across runs.
package metrics

import (
	"errors"

	"CrashPulse/internal/model"
)

// ErrNoData reports a signal with no usable samples for a metric.
var ErrNoData = errors.New("signal has no samples")

// StandardGravity converts between g and m/s².
const StandardGravity = 9.80665

// Params carries per-run inputs a metric may need. A zero or negative
// VehicleMassKG means the mass is unknown.
type Params struct {
	VehicleMassKG float64
}

// HasMass reports whether a usable vehicle mass was supplied.
func (p Params) HasMass() bool { return p.VehicleMassKG > 0 }

// Strategy is the metric capability: compute named values from a processed
// crash signal. Implementations must be side-effect free; a failure is
// returned, never panicked, and is isolated by the pipeline.
type Strategy interface {
	Name() string
	Calculate(sig *model.CrashSignal, p Params) (map[string]float64, error)
}
