package model

import "fmt"

// CrashSignal is the fully processed crash pulse for one analysis run.
// All five series share the same length; SampleRate is derived from the
// first two time samples and is never set independently. The struct is
// built once by dsp.Process and treated as read-only afterwards.
type CrashSignal struct {
	TimeMS         []float64 // strictly increasing, milliseconds
	RawAccelG      []float64
	FilteredAccelG []float64
	VelocityKPH    []float64
	DisplacementM  []float64
	SampleRate     float64 // Hz

	// ClipIndex is the first velocity sample forced to zero by drift
	// correction, or -1 when no zero-crossing was found.
	ClipIndex int
}

// Len returns the number of samples in the signal.
func (s *CrashSignal) Len() int { return len(s.TimeMS) }

// Validate checks the equal-length invariant across all series.
func (s *CrashSignal) Validate() error {
	n := len(s.TimeMS)
	for name, series := range map[string][]float64{
		"raw_accel_g":      s.RawAccelG,
		"filtered_accel_g": s.FilteredAccelG,
		"velocity_kph":     s.VelocityKPH,
		"displacement_m":   s.DisplacementM,
	} {
		if len(series) != n {
			return fmt.Errorf("series %s has length %d, want %d", name, len(series), n)
		}
	}
	return nil
}
