package metrics

import (
	"errors"
	"math"

	"CrashPulse/internal/model"
)

// Occupant excursion window for the Occupant Load Criterion. The published
// definition lets an unrestrained occupant free-fly 65 mm relative to the
// vehicle, then ride down at constant deceleration until the relative
// excursion reaches 300 mm. These window lengths are an assumption pending
// validation against reference datasets.
const (
	olcFreeFlightM = 0.065
	olcExcursionM  = 0.300
)

// OLCCalculator approximates the Occupant Load Criterion: the constant
// deceleration, in g, that stops an unrestrained occupant within the
// ride-down portion of the excursion window, derived from the vehicle
// velocity-vs-displacement history.
type OLCCalculator struct{}

func (OLCCalculator) Name() string { return "OLCCalculator" }

func (OLCCalculator) Calculate(sig *model.CrashSignal, _ Params) (map[string]float64, error) {
	if sig.Len() == 0 {
		return nil, ErrNoData
	}

	// Impact speed. The occupant travels at this speed until the free
	// flight ends.
	v0 := 0.0
	for _, v := range sig.VelocityKPH {
		if math.Abs(v) > v0 {
			v0 = math.Abs(v)
		}
	}
	v0 /= 3.6
	if v0 <= 0 {
		return nil, errors.New("zero delta-V, no impact to evaluate")
	}

	end := sig.Len()
	if sig.ClipIndex >= 0 {
		end = sig.ClipIndex
	}

	// Free flight ends when the occupant has closed 65 mm on the cabin.
	// Relative occupant excursion equals the magnitude of the dynamic
	// crush displacement.
	i1 := -1
	for i := 0; i < end; i++ {
		if math.Abs(sig.DisplacementM[i]) >= olcFreeFlightM {
			i1 = i
			break
		}
	}
	if i1 < 0 {
		return nil, errors.New("crush never reaches the free-flight excursion")
	}
	t1 := sig.TimeMS[i1] / 1000

	// Ride-down: scan for the instant where a constant occupant
	// deceleration both matches the vehicle velocity and completes the
	// 300 mm excursion.
	for j := i1 + 1; j < end; j++ {
		dt := sig.TimeMS[j]/1000 - t1
		if dt <= 0 {
			continue
		}
		a := -(sig.VelocityKPH[j] / 3.6) / dt
		if a <= 0 {
			continue
		}
		excursion := math.Abs(sig.DisplacementM[j]) - 0.5*a*dt*dt
		if excursion >= olcExcursionM {
			return map[string]float64{model.KeyOLCApproxG: a / StandardGravity}, nil
		}
	}

	// The vehicle stopped before the occupant used the full window: shed
	// the whole impact speed over the residual stroke.
	a := v0 * v0 / (2 * (olcExcursionM - olcFreeFlightM))
	return map[string]float64{model.KeyOLCApproxG: a / StandardGravity}, nil
}
