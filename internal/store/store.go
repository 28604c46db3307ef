package store

import (
	"database/sql"
	"time"
)

// TestCase is one crash test queued for pulse analysis.
type TestCase struct {
	TestNo       int
	Make         string
	Model        string
	Year         int
	CrashType    string
	WeightKG     float64
	WaveformPath string
}

// MetricRecord holds the persisted subset of one analysis result. A metric
// that was omitted or failed stays invalid and is stored as NULL, so it can
// never be mistaken for a computed zero.
type MetricRecord struct {
	TestNo           int
	PeakG            sql.NullFloat64
	TimeAtPeakMS     sql.NullFloat64
	DeltaVKPH        sql.NullFloat64
	MaxCrushMM       sql.NullFloat64
	TimeAtMaxCrushMS sql.NullFloat64
	OLCApproxG       sql.NullFloat64
	SpecificEnergy   sql.NullFloat64
	TotalEnergyKJ    sql.NullFloat64
}

// RunRecord summarizes one batch sweep.
type RunRecord struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Skipped    int
}

// Store persists test metadata and computed pulse metrics.
type Store interface {
	UpsertTest(tc *TestCase) error
	PendingTests() ([]TestCase, error)
	SaveMetrics(records []MetricRecord) error
	RecordRun(run *RunRecord) error
	Close() error
}
