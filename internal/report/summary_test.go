package report

import (
	"strings"
	"testing"

	"CrashPulse/internal/model"
)

func TestSummary(t *testing.T) {
	res := &model.Result{
		Signal: &model.CrashSignal{
			TimeMS:         []float64{0, 1},
			RawAccelG:      []float64{0, 0},
			FilteredAccelG: []float64{0, 0},
			VelocityKPH:    []float64{0, 0},
			DisplacementM:  []float64{0, 0},
			SampleRate:     1000,
			ClipIndex:      -1,
		},
		Entries: map[string]model.Value{
			model.KeyPeakG:     model.Num(39.75),
			model.KeyDeltaVKPH: model.Num(56.4),
		},
	}
	res.Entries["Error_OLCCalculator"] = model.Err("crush never reaches the free-flight excursion")

	out := Summary("v09001", res)

	if !strings.HasPrefix(out, "=== v09001 ===\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "samples: 2 @ 1000 Hz") {
		t.Errorf("missing signal line:\n%s", out)
	}
	if !strings.Contains(out, "Peak_G") || !strings.Contains(out, "39.750") {
		t.Errorf("missing numeric entry:\n%s", out)
	}
	if !strings.Contains(out, "FAILED  OLCCalculator: crush never reaches the free-flight excursion") {
		t.Errorf("missing failure line:\n%s", out)
	}

	// Failures render after every numeric entry.
	if strings.Index(out, "FAILED") < strings.Index(out, "Peak_G") {
		t.Errorf("failure listed before metrics:\n%s", out)
	}
}

func TestSummary_NoSignal(t *testing.T) {
	res := &model.Result{Entries: map[string]model.Value{
		model.KeyPeakG: model.Num(1),
	}}

	out := Summary("empty", res)
	if strings.Contains(out, "samples:") {
		t.Errorf("signal line rendered without a signal:\n%s", out)
	}
}
