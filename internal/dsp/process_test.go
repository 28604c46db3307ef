package dsp

import (
	"errors"
	"math"
	"testing"
)

func TestProcess_SeriesLengthsMatch(t *testing.T) {
	timeS, accelG := halfSine(10000, 0.02, 0.1, 0.2, -40)

	sig, err := Process(timeS, accelG, DefaultCFC)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if err := sig.Validate(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
	if sig.Len() != len(timeS) {
		t.Fatalf("signal length %d, want %d", sig.Len(), len(timeS))
	}
	if math.Abs(sig.SampleRate-10000) > 1e-6 {
		t.Fatalf("sample rate %g, want 10000", sig.SampleRate)
	}
}

func TestProcess_InsufficientData(t *testing.T) {
	cases := [][]float64{nil, {0}, {0.0001}}
	for _, data := range cases {
		if _, err := Process(data, data, DefaultCFC); !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("len %d: got %v, want ErrInsufficientData", len(data), err)
		}
	}
}

func TestApplyCFC_ZeroPhase(t *testing.T) {
	// A 5 Hz sinusoid sits far below the CFC 60 cutoff (100 Hz): the
	// forward-backward filter must keep its peak where it was.
	const fs = 10000.0
	n := 2000
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 5 * float64(i) / fs)
	}

	out := applyCFC(data, fs, 60)

	wantPeak := 500 // t = 50 ms
	gotPeak := 0
	for i, v := range out {
		if v > out[gotPeak] {
			gotPeak = i
		}
	}
	if d := gotPeak - wantPeak; d < -2 || d > 2 {
		t.Fatalf("peak moved from %d to %d", wantPeak, gotPeak)
	}
	if math.Abs(out[gotPeak]-1) > 0.01 {
		t.Fatalf("passband amplitude %g, want ~1", out[gotPeak])
	}
}

func TestApplyCFC_AttenuatesAboveCutoff(t *testing.T) {
	const fs = 10000.0
	n := 2000
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 2000 * float64(i) / fs)
	}

	out := applyCFC(data, fs, 60)

	// Inspect the middle of the trace, away from edge transients.
	maxMid := 0.0
	for i := n / 4; i < 3*n/4; i++ {
		if math.Abs(out[i]) > maxMid {
			maxMid = math.Abs(out[i])
		}
	}
	if maxMid > 0.01 {
		t.Fatalf("2 kHz residual %g, want < 0.01", maxMid)
	}
}

func TestCFCCutoff(t *testing.T) {
	tests := []struct {
		cfc  int
		want float64
	}{
		{60, 100},
		{180, 300},
		{600, 1000},
		{1000, 1650},
		{300, 300 * 1.667},
	}
	for _, tt := range tests {
		if got := cfcCutoffHz(tt.cfc); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("cfcCutoffHz(%d) = %g, want %g", tt.cfc, got, tt.want)
		}
	}
}

// reboundPulse is a crush half-sine followed by a stronger restitution
// half-sine, so the integrated velocity dips and then crosses back through
// zero well after the 20 ms search delay.
func reboundPulse(fs float64) (timeS, accelG []float64) {
	n := int(0.2 * fs)
	timeS = make([]float64, n)
	accelG = make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / fs
		timeS[i] = t
		if t < 0.1 {
			accelG[i] = -40 * math.Sin(math.Pi*t/0.1)
		} else {
			accelG[i] = 60 * math.Sin(math.Pi*(t-0.1)/0.1)
		}
	}
	return timeS, accelG
}

func TestProcess_ClipsVelocityAtZeroCrossing(t *testing.T) {
	timeS, accelG := reboundPulse(10000)

	sig, err := Process(timeS, accelG, DefaultCFC)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if sig.ClipIndex <= 200 || sig.ClipIndex >= sig.Len() {
		t.Fatalf("clip index %d out of expected range", sig.ClipIndex)
	}
	if sig.VelocityKPH[sig.ClipIndex-1] == 0 {
		t.Fatal("velocity before the clip should be nonzero")
	}
	for i := sig.ClipIndex; i < sig.Len(); i++ {
		if sig.VelocityKPH[i] != 0 {
			t.Fatalf("velocity[%d] = %g after clip, want exactly 0", i, sig.VelocityKPH[i])
		}
	}
	for i := sig.ClipIndex + 1; i < sig.Len(); i++ {
		if sig.DisplacementM[i] != sig.DisplacementM[sig.ClipIndex] {
			t.Fatalf("displacement drifted after clip at %d", i)
		}
	}
}

func TestClipVelocity_ZeroesFromFirstSampleOfCrossingPair(t *testing.T) {
	// The crossing happens between samples 25 and 26; the clip must start
	// at 25, the last sample of the outgoing sign.
	const fs = 1000.0
	v := make([]float64, 30)
	for i := range v {
		v[i] = -1
	}
	v[25] = -0.2
	for i := 26; i < 30; i++ {
		v[i] = 0.5
	}

	idx := clipVelocity(v, fs)
	if idx != 25 {
		t.Fatalf("clip index %d, want 25", idx)
	}
	for i := 25; i < 30; i++ {
		if v[i] != 0 {
			t.Fatalf("v[%d] = %g, want 0 from the clip index", i, v[i])
		}
	}
	if v[24] != -1 {
		t.Fatalf("v[24] = %g, samples before the clip must be untouched", v[24])
	}
}

func TestProcess_NoCrossingLeavesVelocityUnclipped(t *testing.T) {
	timeS, accelG := halfSine(10000, 0.02, 0.1, 0.2, -40)

	sig, err := Process(timeS, accelG, DefaultCFC)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if sig.ClipIndex != -1 {
		t.Fatalf("clip index %d for a monotone pulse, want -1", sig.ClipIndex)
	}
}

func TestProcess_PreImpactRezero(t *testing.T) {
	// Baseline at negative time carrying a DC offset the filter passes
	// straight through.
	const fs = 1000.0
	n := 300
	timeS := make([]float64, n)
	accelG := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i)/fs - 0.1
		timeS[i] = t
		accelG[i] = 0.5
		if t >= 0 && t < 0.1 {
			accelG[i] += -40 * math.Sin(math.Pi*t/0.1)
		}
	}

	sig, err := Process(timeS, accelG, DefaultCFC)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// After re-zeroing, the pre-impact mean is gone.
	sum := 0.0
	count := 0
	for i, tv := range timeS {
		if tv < 0 {
			sum += sig.FilteredAccelG[i]
			count++
		}
	}
	if mean := sum / float64(count); math.Abs(mean) > 1e-9 {
		t.Fatalf("pre-impact mean %g after re-zero, want ~0", mean)
	}
}
