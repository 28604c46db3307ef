package metrics

import (
	"math"

	"CrashPulse/internal/model"
)

// MaxDisplacement reports the maximum dynamic crush and when it occurred.
type MaxDisplacement struct{}

func (MaxDisplacement) Name() string { return "MaxDisplacement" }

func (MaxDisplacement) Calculate(sig *model.CrashSignal, _ Params) (map[string]float64, error) {
	if sig.Len() == 0 {
		return nil, ErrNoData
	}

	crushIdx := 0
	for i, d := range sig.DisplacementM {
		if math.Abs(d) > math.Abs(sig.DisplacementM[crushIdx]) {
			crushIdx = i
		}
	}

	return map[string]float64{
		model.KeyMaxCrushMM:    math.Abs(sig.DisplacementM[crushIdx]) * 1000,
		model.KeyTimeAtCrushMS: sig.TimeMS[crushIdx],
	}, nil
}
