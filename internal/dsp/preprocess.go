package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TriggerThresholdG is the absolute acceleration that marks impact start
// for time-zero alignment.
const TriggerThresholdG = 0.5

// biasWindow is the number of leading samples averaged for bias removal.
const biasWindow = 50

// Preprocess normalizes a raw (time, acceleration) pair before filtering,
// in fixed order: bias removal, polarity correction, time-zero alignment.
// Inputs are not mutated.
//
// Bias is the mean of the first min(N,50) samples. Polarity: a correctly
// mounted front-impact sensor records its dominant peak as a deceleration,
// so when the sample of maximum magnitude is positive the whole trace is
// negated. Time zero is moved to the first sample whose magnitude exceeds
// the 0.5 g trigger; when nothing crosses, the time axis is left alone.
func Preprocess(timeS, rawG []float64) (shiftedTime, correctedG []float64) {
	n := len(rawG)
	correctedG = make([]float64, n)
	copy(correctedG, rawG)
	shiftedTime = make([]float64, len(timeS))
	copy(shiftedTime, timeS)
	if n == 0 {
		return shiftedTime, correctedG
	}

	w := biasWindow
	if n < w {
		w = n
	}
	bias := stat.Mean(correctedG[:w], nil)
	floats.AddConst(-bias, correctedG)

	peakIdx := 0
	for i, v := range correctedG {
		if math.Abs(v) > math.Abs(correctedG[peakIdx]) {
			peakIdx = i
		}
	}
	if correctedG[peakIdx] > 0 {
		floats.Scale(-1, correctedG)
	}

	for i, v := range correctedG {
		if math.Abs(v) > TriggerThresholdG {
			if i < len(shiftedTime) {
				floats.AddConst(-shiftedTime[i], shiftedTime)
			}
			break
		}
	}

	return shiftedTime, correctedG
}
