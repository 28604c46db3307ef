package scheduler

import (
	"context"
	"testing"

	"CrashPulse/internal/batch"
	"CrashPulse/internal/pipeline"
	"CrashPulse/internal/store"
	"CrashPulse/internal/waveform"
)

func newScheduler() *Scheduler {
	r := batch.NewRunner(store.NewNoopStore(), func(string) (waveform.Source, error) {
		return &waveform.MemorySource{}, nil
	}, pipeline.New())
	return NewScheduler(context.Background(), r)
}

func TestRegister(t *testing.T) {
	s := newScheduler()
	if err := s.Register("0 0 3 * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 1 {
		t.Fatalf("registered %d entries, want 1", got)
	}
}

func TestRegister_BadExpression(t *testing.T) {
	if err := newScheduler().Register("not a cron expression"); err == nil {
		t.Fatal("expected error for a malformed cron expression")
	}
}

func TestRunNow(t *testing.T) {
	// Sweep against an empty noop store must complete without panicking.
	newScheduler().RunNow()
}
