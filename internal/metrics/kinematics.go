package metrics

import (
	"math"

	"CrashPulse/internal/model"
)

// BasicKinematics reports the peak deceleration magnitude, its timing, and
// the total velocity change absorbed by the structure.
type BasicKinematics struct{}

func (BasicKinematics) Name() string { return "BasicKinematics" }

func (BasicKinematics) Calculate(sig *model.CrashSignal, _ Params) (map[string]float64, error) {
	if sig.Len() == 0 {
		return nil, ErrNoData
	}

	peakIdx := 0
	for i, v := range sig.FilteredAccelG {
		if math.Abs(v) > math.Abs(sig.FilteredAccelG[peakIdx]) {
			peakIdx = i
		}
	}

	// Delta-V is the largest velocity magnitude reached before the clip
	// forced the trace to zero: the total speed change of the impact.
	deltaV := 0.0
	for _, v := range sig.VelocityKPH {
		if math.Abs(v) > deltaV {
			deltaV = math.Abs(v)
		}
	}

	return map[string]float64{
		model.KeyPeakG:        math.Abs(sig.FilteredAccelG[peakIdx]),
		model.KeyTimeAtPeakMS: sig.TimeMS[peakIdx],
		model.KeyDeltaVKPH:    deltaV,
	}, nil
}
