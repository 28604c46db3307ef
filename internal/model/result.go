package model

import "fmt"

// Historical metric keys. Downstream consumers key the pulse_metrics table
// off these names, so they must not change.
const (
	KeyPeakG          = "Peak_G"
	KeyTimeAtPeakMS   = "Time_at_Peak_ms"
	KeyDeltaVKPH      = "Delta_V_kph"
	KeyMaxCrushMM     = "Max_Dynamic_Crush_mm"
	KeyTimeAtCrushMS  = "Time_at_Max_Crush_ms"
	KeyOLCApproxG     = "OLC_Approx_G"
	KeyTotalEnergyKJ  = "Total_Energy_Absorbed_kJ"
	KeySpecificEnergy = "Specific_Energy_Absorbed_J_kg"
)

// ValueKind tags a result entry.
type ValueKind int

const (
	// Number is a computed metric value.
	Number ValueKind = iota
	// ErrorText is the message of a metric that failed to compute.
	ErrorText
)

// Value is one entry in a pipeline result: either a numeric metric or the
// recorded error of a failed metric, never both.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Num wraps a numeric metric value.
func Num(v float64) Value { return Value{Kind: Number, Num: v} }

// Err wraps a metric failure message.
func Err(msg string) Value { return Value{Kind: ErrorText, Str: msg} }

func (v Value) String() string {
	if v.Kind == ErrorText {
		return v.Str
	}
	return fmt.Sprintf("%g", v.Num)
}

// Result aggregates the processed signal and all metric outputs of one run.
type Result struct {
	Signal  *CrashSignal
	Entries map[string]Value
}

// Number returns the numeric entry for key, if present and numeric.
func (r *Result) Number(key string) (float64, bool) {
	v, ok := r.Entries[key]
	if !ok || v.Kind != Number {
		return 0, false
	}
	return v.Num, true
}
