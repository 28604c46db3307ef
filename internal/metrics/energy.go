package metrics

import (
	"math"

	"CrashPulse/internal/model"
)

// EnergyAnalysis reports the kinetic energy absorbed by the structure,
// total (½·m·Δv²) and per kilogram of test mass. It needs the vehicle test
// mass injected through Params; without one it returns an empty result
// rather than failing, so the rest of the pipeline is unaffected.
type EnergyAnalysis struct{}

func (EnergyAnalysis) Name() string { return "EnergyAnalysis" }

func (EnergyAnalysis) Calculate(sig *model.CrashSignal, p Params) (map[string]float64, error) {
	if sig.Len() == 0 {
		return nil, ErrNoData
	}
	if !p.HasMass() {
		return map[string]float64{}, nil
	}

	deltaV := 0.0
	for _, v := range sig.VelocityKPH {
		if math.Abs(v) > deltaV {
			deltaV = math.Abs(v)
		}
	}
	dv := deltaV / 3.6 // m/s

	totalJ := 0.5 * p.VehicleMassKG * dv * dv
	return map[string]float64{
		model.KeyTotalEnergyKJ:  totalJ / 1000,
		model.KeySpecificEnergy: totalJ / p.VehicleMassKG,
	}, nil
}
