package waveform

import "errors"

// Property keys declared by crash-test data acquisition channels.
const (
	PropSensorType     = "SENTYPD"
	PropSensorLocation = "SENLOCD"
	PropAxis           = "AXISD"
)

// ErrNoChannel reports that no qualifying vehicle-body accelerometer was
// found in a source. Batch callers treat it as skip-and-continue.
var ErrNoChannel = errors.New("no suitable X-axis accelerometer found")

// Channel is one recorded sensor trace inside a waveform container.
type Channel interface {
	// Name returns the raw channel name, e.g. an ISO-MME code such as
	// "10VEHCCG0000AC1P".
	Name() string
	// Property returns a declared channel property, or "" when the
	// container carries no metadata for the key.
	Property(key string) string
	// Samples returns the raw sample array.
	Samples() ([]float64, error)
	// TimeTrack returns the time axis in seconds, same length as Samples.
	TimeTrack() ([]float64, error)
}

// Group is a named collection of channels.
type Group interface {
	Name() string
	Channels() []Channel
}

// Source is an opened multi-channel waveform container.
type Source interface {
	Groups() ([]Group, error)
}

// Opener opens a waveform container by path. Readers for binary DAQ
// containers plug in here; the CLI and tests use the in-memory and CSV
// implementations in this package.
type Opener func(path string) (Source, error)
