package dsp

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// DefaultCFC is the SAE J211 channel frequency class used for vehicle
// crash-pulse analysis.
const DefaultCFC = 60

// cfcCutoffHz maps an SAE J211 channel frequency class to its -3 dB
// low-pass cutoff. Classes outside the standard table scale linearly.
func cfcCutoffHz(cfc int) float64 {
	switch cfc {
	case 60:
		return 100
	case 180:
		return 300
	case 600:
		return 1000
	case 1000:
		return 1650
	default:
		return float64(cfc) * 1.667
	}
}

// applyCFC low-pass filters data with a 2nd-order Butterworth at the CFC
// cutoff, run forward and backward so the net phase response is zero.
// Zero phase matters: a causal filter would delay the trace and shift
// every peak-timing metric.
//
// The normalized cutoff is clamped to 0.99 Nyquist, which keeps the
// bilinear design stable at low sample rates instead of signalling an
// error.
func applyCFC(data []float64, fs float64, cfc int) []float64 {
	cutoff := cfcCutoffHz(cfc)
	nyq := fs / 2
	if cutoff > 0.99*nyq {
		cutoff = 0.99 * nyq
	}

	coeffs := design.Lowpass(cutoff, 1/math.Sqrt2, fs)

	out := make([]float64, len(data))
	copy(out, data)

	sec := biquad.NewSection(coeffs)
	for i, x := range out {
		out[i] = sec.ProcessSample(x)
	}
	reverse(out)

	sec = biquad.NewSection(coeffs)
	for i, x := range out {
		out[i] = sec.ProcessSample(x)
	}
	reverse(out)

	return out
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
