package dsp

import (
	"errors"
	"fmt"
	"math"

	"CrashPulse/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StandardGravity converts acceleration in g to m/s².
const StandardGravity = 9.80665

// ErrInsufficientData reports a trace too short to process.
var ErrInsufficientData = errors.New("insufficient data")

// clipSearchDelayS is how long after the start of the trace the velocity
// zero-crossing search begins. Skipping the first 20 ms keeps trigger-region
// noise from ending the integration early.
const clipSearchDelayS = 0.02

// Process derives filtered acceleration, velocity and displacement from a
// cleaned (time, acceleration) trace per the SAE J211 CFC convention and
// returns them as an immutable CrashSignal.
//
// Velocity comes from cumulative trapezoidal integration of the filtered
// trace. It is then drift-corrected: physically, relative velocity reaches
// zero at maximum dynamic crush, so from the first post-20 ms zero-crossing
// onward the velocity is forced to exactly zero. Without that clip, rebound
// and sensor noise would keep feeding the displacement integral.
func Process(timeS, rawG []float64, cfc int) (*model.CrashSignal, error) {
	if len(timeS) < 2 || len(rawG) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, min(len(timeS), len(rawG)))
	}

	dt := timeS[1] - timeS[0]
	if dt <= 0 {
		return nil, fmt.Errorf("%w: non-increasing time axis", ErrInsufficientData)
	}
	fs := 1 / dt

	filtered := applyCFC(rawG, fs, cfc)

	// Filtering can reintroduce a low-frequency offset; re-zero against the
	// pre-impact baseline when one exists. Time is strictly increasing, so
	// the t<0 samples form a prefix.
	nPre := 0
	for nPre < len(timeS) && timeS[nPre] < 0 {
		nPre++
	}
	if nPre > 0 {
		floats.AddConst(-stat.Mean(filtered[:nPre], nil), filtered)
	}

	accelMPS2 := make([]float64, len(filtered))
	copy(accelMPS2, filtered)
	floats.Scale(StandardGravity, accelMPS2)

	velocityMPS := cumTrapz(timeS, accelMPS2)
	clipIdx := clipVelocity(velocityMPS, fs)

	velocityKPH := make([]float64, len(velocityMPS))
	copy(velocityKPH, velocityMPS)
	floats.Scale(3.6, velocityKPH)

	displacementM := cumTrapz(timeS, velocityMPS)

	timeMS := make([]float64, len(timeS))
	copy(timeMS, timeS)
	floats.Scale(1000, timeMS)

	raw := make([]float64, len(rawG))
	copy(raw, rawG)

	return &model.CrashSignal{
		TimeMS:         timeMS,
		RawAccelG:      raw,
		FilteredAccelG: filtered,
		VelocityKPH:    velocityKPH,
		DisplacementM:  displacementM,
		SampleRate:     fs,
		ClipIndex:      clipIdx,
	}, nil
}

// cumTrapz is the cumulative trapezoidal integral of y over x, starting
// at zero.
func cumTrapz(x, y []float64) []float64 {
	out := make([]float64, len(y))
	for i := 1; i < len(y); i++ {
		out[i] = out[i-1] + 0.5*(y[i]+y[i-1])*(x[i]-x[i-1])
	}
	return out
}

// clipVelocity zeroes v from the first sign flip found at or after
// ⌊clipSearchDelayS·fs⌋ and returns the clip index, or -1 when the velocity
// never crosses zero. The clip starts at the last sample of the outgoing
// sign, i.e. the first sample of the sign-change pair, which keeps the
// stop index identical to earlier published outputs. A sample only counts
// toward a flip once it has left a noise floor of 0.1% of the peak
// velocity magnitude; the zero-phase filter leaves
// sub-millimetre-per-second precursors around the trigger region that must
// not end the integration.
func clipVelocity(v []float64, fs float64) int {
	floor := 0.0
	for _, x := range v {
		if math.Abs(x) > floor {
			floor = math.Abs(x)
		}
	}
	floor *= 1e-3

	start := int(clipSearchDelayS * fs)
	if start < 1 {
		start = 1
	}

	prev := 0
	prevIdx := -1
	for i := start; i < len(v); i++ {
		s := 0
		switch {
		case v[i] > floor:
			s = 1
		case v[i] < -floor:
			s = -1
		}
		if s == 0 {
			continue
		}
		if prev != 0 && s != prev {
			for j := prevIdx; j < len(v); j++ {
				v[j] = 0
			}
			return prevIdx
		}
		prev, prevIdx = s, i
	}
	return -1
}
