package scheduler

import (
	"context"
	"fmt"
	"log"

	"CrashPulse/internal/batch"

	"github.com/robfig/cron/v3"
)

// Scheduler runs batch analysis sweeps on a cron cadence, picking up tests
// whose waveforms have finished downloading since the last sweep.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *batch.Runner
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *batch.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
	}
}

// Register registers the periodic sweep.
func (s *Scheduler) Register(sweepCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, s.sweep); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a sweep immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.sweep()
}

func (s *Scheduler) sweep() {
	if err := s.Runner.SweepOnce(s.Ctx); err != nil {
		log.Printf("[ERROR] batch sweep: %v", err)
	}
}
