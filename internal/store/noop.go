package store

// NoopStore is used when no database is configured, e.g. single-file CLI
// runs that only print results.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) UpsertTest(_ *TestCase) error       { return nil }
func (n *NoopStore) PendingTests() ([]TestCase, error)  { return nil, nil }
func (n *NoopStore) SaveMetrics(_ []MetricRecord) error { return nil }
func (n *NoopStore) RecordRun(_ *RunRecord) error       { return nil }
func (n *NoopStore) Close() error                       { return nil }
