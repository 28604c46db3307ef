// Package batch drives pulse analysis across every pending crash test.
// Individual tests that cannot be analyzed are skipped; a sweep never
// aborts because of one bad waveform.
package batch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"CrashPulse/internal/dsp"
	"CrashPulse/internal/model"
	"CrashPulse/internal/pipeline"
	"CrashPulse/internal/report"
	"CrashPulse/internal/store"
	"CrashPulse/internal/waveform"

	"github.com/google/uuid"
)

// flushEvery bounds how many results are buffered before they are written
// to the store.
const flushEvery = 50

// Runner sweeps pending tests through the analysis pipeline.
type Runner struct {
	Store    store.Store
	Open     waveform.Opener
	Pipeline *pipeline.Pipeline

	// ChartDir, when set, receives one pulse chart HTML file per analyzed
	// test.
	ChartDir string
}

// NewRunner wires a batch runner.
func NewRunner(st store.Store, open waveform.Opener, p *pipeline.Pipeline) *Runner {
	return &Runner{Store: st, Open: open, Pipeline: p}
}

// SweepOnce analyzes every pending test and persists the computed metrics.
// Per-test failures are logged and skipped. The sweep stops early only when
// ctx is cancelled.
func (r *Runner) SweepOnce(ctx context.Context) error {
	runID := uuid.NewString()
	started := time.Now()

	tests, err := r.Store.PendingTests()
	if err != nil {
		return fmt.Errorf("load pending tests: %w", err)
	}
	log.Printf("[INFO] sweep %s: %d pending tests", runID, len(tests))

	var (
		buffer    []store.MetricRecord
		processed int
		skipped   int
	)
	for _, tc := range tests {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := r.analyzeOne(&tc)
		if err != nil {
			skipped++
			log.Printf("[WARN] test %d skipped: %v", tc.TestNo, err)
			continue
		}
		processed++
		buffer = append(buffer, *rec)

		if len(buffer) >= flushEvery {
			if err := r.Store.SaveMetrics(buffer); err != nil {
				return fmt.Errorf("save metrics: %w", err)
			}
			buffer = buffer[:0]
		}
	}
	if err := r.Store.SaveMetrics(buffer); err != nil {
		return fmt.Errorf("save metrics: %w", err)
	}

	run := &store.RunRecord{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Processed:  processed,
		Skipped:    skipped,
	}
	if err := r.Store.RecordRun(run); err != nil {
		log.Printf("[ERROR] record run %s: %v", runID, err)
	}
	log.Printf("[INFO] sweep %s done: processed=%d skipped=%d in %s",
		runID, processed, skipped, time.Since(started).Round(time.Millisecond))
	return nil
}

// analyzeOne runs locate → preprocess → pipeline for a single test.
func (r *Runner) analyzeOne(tc *store.TestCase) (*store.MetricRecord, error) {
	src, err := r.Open(tc.WaveformPath)
	if err != nil {
		return nil, fmt.Errorf("open waveform: %w", err)
	}

	cand, err := waveform.Locate(src)
	if err != nil {
		return nil, err
	}

	rawG, err := cand.Channel.Samples()
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	timeS, err := cand.Channel.TimeTrack()
	if err != nil {
		return nil, fmt.Errorf("read time track: %w", err)
	}

	cleanTime, cleanG := dsp.Preprocess(timeS, rawG)
	res, err := r.Pipeline.Run(cleanTime, cleanG, tc.WeightKG)
	if err != nil {
		if errors.Is(err, dsp.ErrInsufficientData) {
			return nil, err
		}
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	if r.ChartDir != "" {
		r.writeChart(tc, res)
	}

	rec := &store.MetricRecord{TestNo: tc.TestNo}
	assign := func(key string, dst *sql.NullFloat64) {
		if v, ok := res.Number(key); ok {
			*dst = sql.NullFloat64{Float64: v, Valid: true}
		}
	}
	assign(model.KeyPeakG, &rec.PeakG)
	assign(model.KeyTimeAtPeakMS, &rec.TimeAtPeakMS)
	assign(model.KeyDeltaVKPH, &rec.DeltaVKPH)
	assign(model.KeyMaxCrushMM, &rec.MaxCrushMM)
	assign(model.KeyTimeAtCrushMS, &rec.TimeAtMaxCrushMS)
	assign(model.KeyOLCApproxG, &rec.OLCApproxG)
	assign(model.KeySpecificEnergy, &rec.SpecificEnergy)
	assign(model.KeyTotalEnergyKJ, &rec.TotalEnergyKJ)
	return rec, nil
}

func (r *Runner) writeChart(tc *store.TestCase, res *model.Result) {
	name := fmt.Sprintf("v%05d_pulse.html", tc.TestNo)
	f, err := os.Create(filepath.Join(r.ChartDir, name))
	if err != nil {
		log.Printf("[WARN] create chart for test %d: %v", tc.TestNo, err)
		return
	}
	defer f.Close()

	title := fmt.Sprintf("Test %d: %d %s %s", tc.TestNo, tc.Year, tc.Make, tc.Model)
	if err := report.PulseChart(res.Signal, title, f); err != nil {
		log.Printf("[WARN] render chart for test %d: %v", tc.TestNo, err)
	}
}
